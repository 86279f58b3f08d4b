package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fitlog-app/fitlog-backend/internal/apperrors"
	"github.com/fitlog-app/fitlog-backend/internal/models"
)

// LogEntry is one formatted row of a user's exercise log.
type LogEntry struct {
	Description string
	Duration    int
	Date        string
}

// LogResult is the public shape of a filtered, limited exercise log.
type LogResult struct {
	UserID   string
	Username string
	Count    int
	Entries  []LogEntry
}

// LogService translates optional from/to/limit parameters into a store query
// and shapes the results for the logs endpoint.
type LogService struct {
	users     userResolver
	exercises entryStore
}

func NewLogService(db *mongo.Database, users *UserService) *LogService {
	return &LogService{users: users, exercises: db.Collection(exercisesCollection)}
}

// GetLogs returns the user's entries whose dates fall within the closed
// interval described by from/to (either side optional), capped at limit when
// limit parses to a positive integer. Results are sorted by date ascending.
func (s *LogService) GetLogs(ctx context.Context, userID, from, to, limit string) (LogResult, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return LogResult{}, err
	}

	var fromTime, toTime *time.Time
	if from != "" {
		t, err := parseDate(from)
		if err != nil {
			return LogResult{}, apperrors.NewValidationError("from", "from must be a valid calendar date, e.g. 2023-01-15")
		}
		fromTime = &t
	}
	if to != "" {
		t, err := parseDate(to)
		if err != nil {
			return LogResult{}, apperrors.NewValidationError("to", "to must be a valid calendar date, e.g. 2023-01-15")
		}
		toTime = &t
	}

	filter := buildLogFilter(userID, fromTime, toTime)
	maxResults, capped := parseLimit(limit)

	cursor, err := s.exercises.Find(ctx, filter, buildLogFindOptions(maxResults, capped))
	if err != nil {
		return LogResult{}, apperrors.NewStorageError("find exercises", err)
	}
	defer cursor.Close(ctx)

	var exercises []models.Exercise
	if err := cursor.All(ctx, &exercises); err != nil {
		return LogResult{}, apperrors.NewStorageError("decode exercises", err)
	}

	entries := make([]LogEntry, 0, len(exercises))
	for _, e := range exercises {
		entries = append(entries, LogEntry{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        formatDate(e.Date),
		})
	}

	return LogResult{
		UserID:   userID,
		Username: user.Username,
		Count:    len(entries),
		Entries:  entries,
	}, nil
}
