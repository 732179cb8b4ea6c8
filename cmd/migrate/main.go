package main

import (
	"log"

	"github.com/joho/godotenv"

	"floor-manager-backend/internal/database"
)

func main() {
	// 1. Load env
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	// 2. Connect database
	database.Connect()

	// 3. Run migrations and seeding
	database.Migrate()
}
