package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a tracked account. Usernames are not unique; duplicates are allowed.
// Storage shape only; the wire shape is defined by the handler response types.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`

	Username string `bson:"username"`
}
