package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/gravida/internal/db"
	"github.com/terraincognita07/gravida/internal/services"
	"github.com/terraincognita07/gravida/internal/state"
	"github.com/terraincognita07/gravida/pkg/logger"
	"gorm.io/gorm"
)

const (
	authCookieName = "gravida_auth"
	contextUserKey = "current_user"

	authTokenTTL = 30 * 24 * time.Hour
)

type Handler struct {
	repos        *db.Repositories
	gateway      *state.Gateway
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	clock        services.Clock
	celebrate    func(services.Celebration)
}

func NewHandler(database *gorm.DB, secretKey string, location *time.Location, cookieSecure bool, clock services.Clock) *Handler {
	if location == nil {
		location = time.UTC
	}
	if clock == nil {
		clock = services.SystemClock{}
	}
	repos := db.NewRepositories(database)
	return &Handler{
		repos:        repos,
		gateway:      state.NewGateway(repos.Snapshots, logger.Log),
		secretKey:    []byte(secretKey),
		location:     location,
		cookieSecure: cookieSecure,
		clock:        clock,
		celebrate:    logCelebration,
	}
}

// SetCelebrationListener replaces the fire-and-forget celebration hook. The
// handlers never wait on it.
func (handler *Handler) SetCelebrationListener(listener func(services.Celebration)) {
	if listener != nil {
		handler.celebrate = listener
	}
}

func logCelebration(celebration services.Celebration) {
	logger.Log.WithField("milestone", celebration.Definition.ID).Info("milestone achieved")
}

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}
