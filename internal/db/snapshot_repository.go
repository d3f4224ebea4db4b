package db

import (
	"time"

	"gorm.io/gorm"
)

// Snapshot is one slice's full JSON document. Every slice owns exactly one
// row per user, keyed by its storage key.
type Snapshot struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_snapshots_user_key"`
	Key       string    `gorm:"not null;uniqueIndex:uidx_snapshots_user_key"`
	Body      string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SnapshotRepository struct {
	database *gorm.DB
}

func NewSnapshotRepository(database *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{database: database}
}

// Load returns the snapshot body for a user and key, reporting whether one
// exists.
func (repo *SnapshotRepository) Load(userID uint, key string) ([]byte, bool, error) {
	snapshot := Snapshot{}
	result := repo.database.
		Where("user_id = ? AND key = ?", userID, key).
		Limit(1).
		Find(&snapshot)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, false, nil
	}
	return []byte(snapshot.Body), true, nil
}

// Save replaces the full snapshot document for a user and key.
func (repo *SnapshotRepository) Save(userID uint, key string, body []byte) error {
	snapshot := Snapshot{}
	result := repo.database.
		Where("user_id = ? AND key = ?", userID, key).
		Limit(1).
		Find(&snapshot)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		snapshot = Snapshot{
			UserID: userID,
			Key:    key,
			Body:   string(body),
		}
		return repo.database.Create(&snapshot).Error
	}

	snapshot.Body = string(body)
	return repo.database.Save(&snapshot).Error
}

func (repo *SnapshotRepository) DeleteAllForUser(userID uint) error {
	return repo.database.Where("user_id = ?", userID).Delete(&Snapshot{}).Error
}
