package controllers

import (
	"log"
	"net/http"

	"github.com/alexanderik79/home-work-63/config"
	"github.com/alexanderik79/home-work-63/database"
	"github.com/alexanderik79/home-work-63/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AssignmentController serves the ungated demonstration queries over the
// assignments collection. It talks to the collection directly and shares
// nothing with the session-gated task path.
type AssignmentController struct{}

var seedAssignments = []interface{}{
	models.Assignment{Name: "Alice", Subject: "Math", Score: 91},
	models.Assignment{Name: "Bob", Subject: "Physics", Score: 78},
	models.Assignment{Name: "Carol", Subject: "Chemistry", Score: 84},
	models.Assignment{Name: "Dan", Subject: "Biology", Score: 69},
	models.Assignment{Name: "Eve", Subject: "History", Score: 88},
}

// Seed replaces the whole collection with the five fixed records.
func (ac *AssignmentController) Seed(c *gin.Context) {
	collection := database.GetCollection(config.DB_Collection.Assignments)
	ctx := c.Request.Context()

	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		log.Println("[ASSIGNMENTS] Seed error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	res, err := collection.InsertMany(ctx, seedAssignments)
	if err != nil {
		log.Println("[ASSIGNMENTS] Seed error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"inserted": len(res.InsertedIDs)})
}

// HighScores returns the assignments with score > 80.
func (ac *AssignmentController) HighScores(c *gin.Context) {
	collection := database.GetCollection(config.DB_Collection.Assignments)
	ctx := c.Request.Context()

	cursor, err := collection.Find(ctx, bson.M{"score": bson.M{"$gt": 80}})
	if err != nil {
		log.Println("[ASSIGNMENTS] HighScores error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	defer cursor.Close(ctx)

	assignments := []models.Assignment{}
	if err := cursor.All(ctx, &assignments); err != nil {
		log.Println("[ASSIGNMENTS] HighScores error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// Boost bumps the score of at most one assignment below 85 by 5 points,
// per UpdateOne semantics. Matched and modified counts are returned
// verbatim.
func (ac *AssignmentController) Boost(c *gin.Context) {
	collection := database.GetCollection(config.DB_Collection.Assignments)

	res, err := collection.UpdateOne(c.Request.Context(),
		bson.M{"score": bson.M{"$lt": 85}},
		bson.M{"$inc": bson.M{"score": 5}},
	)
	if err != nil {
		log.Println("[ASSIGNMENTS] Boost error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"matched": res.MatchedCount, "modified": res.ModifiedCount})
}

// DeleteLowest finds the minimum-score assignment and deletes exactly that
// record, returning it.
func (ac *AssignmentController) DeleteLowest(c *gin.Context) {
	collection := database.GetCollection(config.DB_Collection.Assignments)

	opts := options.FindOneAndDelete().SetSort(bson.D{{Key: "score", Value: 1}})

	var deleted models.Assignment
	err := collection.FindOneAndDelete(c.Request.Context(), bson.M{}, opts).Decode(&deleted)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "No assignments"})
		return
	}
	if err != nil {
		log.Println("[ASSIGNMENTS] DeleteLowest error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// Summary projects only name and score for every assignment.
func (ac *AssignmentController) Summary(c *gin.Context) {
	collection := database.GetCollection(config.DB_Collection.Assignments)
	ctx := c.Request.Context()

	opts := options.Find().SetProjection(bson.M{"name": 1, "score": 1, "_id": 0})
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Println("[ASSIGNMENTS] Summary error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	defer cursor.Close(ctx)

	summary := []bson.M{}
	if err := cursor.All(ctx, &summary); err != nil {
		log.Println("[ASSIGNMENTS] Summary error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
