package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fitlog-app/fitlog-backend/internal/apperrors"
	"github.com/fitlog-app/fitlog-backend/internal/models"
)

const usersCollection = "users"

// UserService creates and looks up users in the document store.
type UserService struct {
	users *mongo.Collection
}

func NewUserService(db *mongo.Database) *UserService {
	return &UserService{users: db.Collection(usersCollection)}
}

// CreateUser inserts a new user and returns the stored record including its
// assigned identifier. Duplicate usernames are permitted.
func (s *UserService) CreateUser(ctx context.Context, username string) (models.User, error) {
	user := models.User{
		ID:        primitive.NewObjectID(),
		CreatedAt: time.Now().UTC(),
		Username:  username,
	}

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return models.User{}, apperrors.NewStorageError("insert user", err)
	}

	return user, nil
}

// ListUsers returns all stored users in storage order.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := s.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperrors.NewStorageError("find users", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, apperrors.NewStorageError("decode users", err)
	}

	return users, nil
}

// GetUserByID looks up a single user. An identifier that is not valid ObjectID
// hex cannot reference any stored user, so it maps to ErrUserNotFound as well.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, apperrors.ErrUserNotFound
	}

	var user models.User
	err = s.users.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, apperrors.NewStorageError("find user", err)
	}

	return user, nil
}
