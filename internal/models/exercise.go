package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a single recorded workout entry belonging to a user.
// Username is a denormalized copy of the owning user's name at creation time.
// UserID is stored as the hex form of the owner's ObjectID so entries survive
// a user being removed out-of-band.
// Storage shape only; the wire shape is defined by the handler response types.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"userId"`
	Username    string             `bson:"username"`
	Description string             `bson:"description"`
	Duration    int                `bson:"duration"`
	Date        time.Time          `bson:"date"`
}
