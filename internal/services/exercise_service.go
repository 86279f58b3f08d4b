package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fitlog-app/fitlog-backend/internal/apperrors"
	"github.com/fitlog-app/fitlog-backend/internal/models"
)

const exercisesCollection = "exercises"

// userResolver is the slice of the identity service the recorder and the log
// engine depend on.
type userResolver interface {
	GetUserByID(ctx context.Context, id string) (models.User, error)
}

// entryStore is the subset of collection operations performed on exercise
// entries. *mongo.Collection satisfies it.
type entryStore interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

// ExerciseResult is the public shape returned after recording an exercise.
// UserID echoes the identifier exactly as supplied in the request.
type ExerciseResult struct {
	Username    string
	Description string
	Duration    int
	Date        string
	UserID      string
}

// ExerciseService appends exercise entries tied to an existing user.
type ExerciseService struct {
	users     userResolver
	exercises entryStore
}

func NewExerciseService(db *mongo.Database, users *UserService) *ExerciseService {
	return &ExerciseService{users: users, exercises: db.Collection(exercisesCollection)}
}

// RecordExercise persists one entry for the given user. The entry's date
// defaults to the current time when none is supplied; a supplied but
// unparseable date is rejected rather than silently replaced.
//
// The user-exists check and the insert are two independent store round-trips;
// a user removed out-of-band in between leaves an orphaned entry.
func (s *ExerciseService) RecordExercise(ctx context.Context, userID, description string, duration int, date string) (ExerciseResult, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return ExerciseResult{}, err
	}

	when := time.Now().UTC()
	if date != "" {
		when, err = parseDate(date)
		if err != nil {
			return ExerciseResult{}, apperrors.NewValidationError("date", "date must be a valid calendar date, e.g. 2023-01-15")
		}
	}

	entry := models.Exercise{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Username:    user.Username,
		Description: description,
		Duration:    duration,
		Date:        when,
	}

	if _, err := s.exercises.InsertOne(ctx, entry); err != nil {
		return ExerciseResult{}, apperrors.NewStorageError("insert exercise", err)
	}

	return ExerciseResult{
		Username:    user.Username,
		Description: entry.Description,
		Duration:    entry.Duration,
		Date:        formatDate(entry.Date),
		UserID:      userID,
	}, nil
}
