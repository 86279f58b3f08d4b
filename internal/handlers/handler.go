package handlers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fitlog-app/fitlog-backend/internal/models"
	"github.com/fitlog-app/fitlog-backend/internal/services"
)

// requestTimeout bounds every store round-trip made on behalf of a request.
const requestTimeout = 5 * time.Second

// IdentityService creates and looks up users.
type IdentityService interface {
	CreateUser(ctx context.Context, username string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// ExerciseRecorder appends exercise entries for an existing user.
type ExerciseRecorder interface {
	RecordExercise(ctx context.Context, userID, description string, duration int, date string) (services.ExerciseResult, error)
}

// LogQuerier returns a user's filtered, limited, formatted exercise log.
type LogQuerier interface {
	GetLogs(ctx context.Context, userID, from, to, limit string) (services.LogResult, error)
}

// Handler holds the HTTP endpoints and their injected dependencies.
type Handler struct {
	logger    *logrus.Logger
	users     IdentityService
	exercises ExerciseRecorder
	logs      LogQuerier
}

func New(logger *logrus.Logger, users IdentityService, exercises ExerciseRecorder, logs LogQuerier) *Handler {
	return &Handler{
		logger:    logger,
		users:     users,
		exercises: exercises,
		logs:      logs,
	}
}
