package routes

import (
	"github.com/alexanderik79/home-work-63/controllers"

	"github.com/gin-gonic/gin"
)

// SetupAssignmentRoutes registers the public demonstration queries.
// These are intentionally not session-gated.
func SetupAssignmentRoutes(r *gin.Engine, ac *controllers.AssignmentController) {
	assignments := r.Group("/assignments")
	assignments.POST("/seed", ac.Seed)
	assignments.GET("/high-scores", ac.HighScores)
	assignments.PATCH("/boost", ac.Boost)
	assignments.DELETE("/lowest", ac.DeleteLowest)
	assignments.GET("/summary", ac.Summary)
}
