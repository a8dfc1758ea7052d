package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderik79/home-work-63/config"
	"github.com/alexanderik79/home-work-63/controllers"
	"github.com/alexanderik79/home-work-63/database"
	"github.com/alexanderik79/home-work-63/repositories"
	"github.com/alexanderik79/home-work-63/routes"
	"github.com/alexanderik79/home-work-63/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()

	_, err := database.Connect()
	if err != nil {
		log.Fatalf("[MongoDB] Connection error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(ctx); err != nil {
		cancel()
		log.Fatalf("[MongoDB] Index error: %v", err)
	}
	cancel()

	userService := &services.UserService{
		Users:      repositories.UserRepository{},
		Sessions:   repositories.SessionRepository{},
		SessionTTL: config.AppConfig.SessionTTL,
	}

	userController := &controllers.UserController{Service: userService}
	taskController := &controllers.TaskController{Tasks: repositories.TaskRepository{}}
	assignmentController := &controllers.AssignmentController{}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Static login/registration pages
	r.StaticFile("/login.html", "./public/login.html")
	r.StaticFile("/register.html", "./public/register.html")

	routes.SetupUserRoutes(r, userController)
	routes.SetupTaskRoutes(r, taskController, userService)
	routes.SetupAssignmentRoutes(r, assignmentController)

	// Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := r.Run(":" + config.AppConfig.PORT); err != nil {
			log.Fatalf("Server startup error: %v", err)
		}
	}()
	log.Printf("Server running at http://localhost:%s", config.AppConfig.PORT)

	<-quit
	log.Println("Shutting down server...")

	database.Disconnect()
}
