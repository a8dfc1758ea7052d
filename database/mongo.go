package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/alexanderik79/home-work-63/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var MongoClient *mongo.Client
var MongoCtx = context.Background()

func Connect() (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(MongoCtx, 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.MongoURI)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("MongoDB connection failed: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("MongoDB ping failed: %v", err)
	}

	log.Println("[MongoDB] Connected")

	MongoClient = client
	return client, nil
}

func GetCollection(collectionName config.CollectionName) *mongo.Collection {
	return MongoClient.Database(config.AppConfig.MongoDB).Collection(string(collectionName))
}

// EnsureIndexes creates the indexes the auth invariants depend on:
// a unique index on users.email and a TTL index on sessions.expires_at.
func EnsureIndexes(ctx context.Context) error {
	users := GetCollection(config.DB_Collection.Users)
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users email index: %v", err)
	}

	sessions := GetCollection(config.DB_Collection.Sessions)
	_, err = sessions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("sessions TTL index: %v", err)
	}

	return nil
}

func Disconnect() {
	if MongoClient != nil {
		if err := MongoClient.Disconnect(MongoCtx); err != nil {
			log.Fatalf("[MongoDB] Disconnection error: %v", err)
		}
		log.Println("[MongoDB] Disconnected")
	}
}
