package db

import "gorm.io/gorm"

type Repositories struct {
	Users     *UserRepository
	Snapshots *SnapshotRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(database),
		Snapshots: NewSnapshotRepository(database),
	}
}
