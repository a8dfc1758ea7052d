package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Assignment is the demonstration collection for the query exercises.
// It carries no owner reference and its endpoints are not session-gated.
type Assignment struct {
	ID      primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name    string             `json:"name" bson:"name"`
	Subject string             `json:"subject" bson:"subject"`
	Score   int                `json:"score" bson:"score"`
}
