package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session maps an opaque cookie token to a user id. Records carry an
// absolute expiry enforced both by the TTL index and at resolve time,
// since Mongo's TTL sweep runs on a coarse interval.
type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Token     string             `bson:"token"`
	UserID    primitive.ObjectID `bson:"user_id"`
	CreatedAt time.Time          `bson:"created_at"`
	ExpiresAt time.Time          `bson:"expires_at"`
}
