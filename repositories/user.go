package repositories

import (
	"context"

	"github.com/alexanderik79/home-work-63/config"
	"github.com/alexanderik79/home-work-63/database"
	"github.com/alexanderik79/home-work-63/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository is the Mongo-backed credential store. It is injected into
// the user service rather than reached through package globals so tests can
// substitute an in-memory implementation.
type UserRepository struct{}

func (UserRepository) Create(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	collection := database.GetCollection(config.DB_Collection.Users)

	res, err := collection.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// FindByEmail returns nil, nil when no user carries the email.
func (UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	collection := database.GetCollection(config.DB_Collection.Users)

	var user models.User
	err := collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	collection := database.GetCollection(config.DB_Collection.Users)

	var user models.User
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
