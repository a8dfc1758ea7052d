package repositories

import (
	"context"
	"time"

	"github.com/alexanderik79/home-work-63/config"
	"github.com/alexanderik79/home-work-63/database"
	"github.com/alexanderik79/home-work-63/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SessionRepository stores opaque-token sessions in Mongo. The TTL index on
// expires_at reaps stale records eventually; Resolve re-checks the expiry so
// a session never outlives its window between sweeps.
type SessionRepository struct{}

func (SessionRepository) Create(ctx context.Context, userID primitive.ObjectID, ttl time.Duration) (string, error) {
	collection := database.GetCollection(config.DB_Collection.Sessions)

	now := time.Now()
	session := models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	if _, err := collection.InsertOne(ctx, session); err != nil {
		return "", err
	}
	return session.Token, nil
}

// Resolve returns nil, nil for an unknown or expired token. Callers cannot
// tell the two apart, which is the intended contract.
func (SessionRepository) Resolve(ctx context.Context, token string) (*models.Session, error) {
	collection := database.GetCollection(config.DB_Collection.Sessions)

	var session models.Session
	err := collection.FindOne(ctx, bson.M{"token": token}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, nil
	}
	return &session, nil
}

// Destroy removes the session. Deleting an already-absent token is not an
// error; only a store failure is.
func (SessionRepository) Destroy(ctx context.Context, token string) error {
	collection := database.GetCollection(config.DB_Collection.Sessions)

	_, err := collection.DeleteOne(ctx, bson.M{"token": token})
	return err
}
