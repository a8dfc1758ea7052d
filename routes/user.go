package routes

import (
	"github.com/alexanderik79/home-work-63/controllers"
	"github.com/alexanderik79/home-work-63/middleware"

	"github.com/gin-gonic/gin"
)

// SetupUserRoutes defines the routes for registration, login and logout.
func SetupUserRoutes(r *gin.Engine, uc *controllers.UserController) {
	r.POST("/register", uc.Register)
	r.POST("/login", uc.Login)
	r.GET("/login-failed", uc.LoginFailed)

	private := r.Group("/")
	private.Use(middleware.SessionAuth(uc.Service))
	private.GET("/logout", uc.Logout)
}
