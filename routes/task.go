package routes

import (
	"github.com/alexanderik79/home-work-63/controllers"
	"github.com/alexanderik79/home-work-63/middleware"
	"github.com/alexanderik79/home-work-63/services"

	"github.com/gin-gonic/gin"
)

// SetupTaskRoutes registers the session-gated task routes.
func SetupTaskRoutes(r *gin.Engine, tc *controllers.TaskController, auth *services.UserService) {
	private := r.Group("/")
	private.Use(middleware.SessionAuth(auth))

	private.GET("/protected", tc.Protected)

	tasks := private.Group("/tasks")
	tasks.POST("/add", tc.Add)
	tasks.POST("/delete/:id", tc.Delete)
	tasks.POST("/update/:id", tc.Update)
	tasks.POST("/replace/:id", tc.Replace)
	tasks.POST("/insert-many", tc.InsertMany)
	tasks.POST("/update-many", tc.UpdateMany)
	tasks.POST("/delete-many", tc.DeleteMany)
	tasks.GET("/stream", tc.Stream)
	tasks.GET("/stats", tc.Stats)
}
