package main

import (
	"fmt"
	"log"
	"os"

	"photostudio-backend/config"
	"photostudio-backend/models"
	"photostudio-backend/routes"
	"photostudio-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Booking{},
		&models.Order{},
		&models.Photo{},
		&models.Payment{},
		&models.Gallery{},
		&models.ReminderLog{},
	)
}

func main() {
	services.NewReminderService(config.DB).StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
