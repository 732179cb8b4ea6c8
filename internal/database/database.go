package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"floor-manager-backend/internal/models"
)

var DB *gorm.DB

// Connect opens the Postgres connection from environment settings.
func Connect() {
	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	port := os.Getenv("DB_PORT")
	sslmode := os.Getenv("DB_SSLMODE")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database. \nError: ", err)
	}

	log.Println("Database connection successful")
	DB = db
}

// Migrate runs schema migrations and seeds the base data.
func Migrate() {
	if DB == nil {
		Connect()
	}

	log.Println("Running schema migrations (Gorm AutoMigrate)...")
	err := DB.AutoMigrate(
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.FloorTable{},
		&models.Reservation{},
		&models.StaffMember{},
		&models.Transaction{},
		&models.User{},
		&models.UserRole{},
	)
	if err != nil {
		log.Fatal("Schema migration failed: ", err)
	}
	log.Println("Schema migrations completed")

	// Seed data lives in a plain SQL file so it can be reviewed and
	// re-run; the INSERTs are written to be idempotent.
	seedPath := filepath.Join("migrations", "000001_seed_data.up.sql")
	seedSQL, err := os.ReadFile(seedPath)
	if err != nil {
		log.Printf("No seed file at %s, skipping seeding: %v", seedPath, err)
		return
	}

	log.Println("Running data seeding...")
	result := DB.Exec(string(seedSQL))
	if result.Error != nil {
		log.Fatalf("Data seeding failed: %v", result.Error)
	}
	log.Printf("Seeding completed. Rows affected: %d", result.RowsAffected)
}
