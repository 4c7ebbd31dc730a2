package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/nocall/nocall-server/cmd/api"
	"github.com/nocall/nocall-server/cmd/models"
	"github.com/nocall/nocall-server/db"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			runMigrations()
			return
		case "prune-nonces":
			runNoncePrune()
			return
		default:
			log.Fatalf("Unknown command: %s", os.Args[1])
		}
	}

	startServer()
}

func runMigrations() {
	DB, err := db.NewPSQLStorage()
	if err != nil {
		log.Fatalf("Database initialization error: %v", err)
	}
	defer closeDB(DB)
	log.Println("Connected to the database for migrations")

	if err := performMigrations(DB); err != nil {
		log.Fatalf("Migration error: %v", err)
	}
	log.Println("Migrations completed successfully")
}

func performMigrations(DB *gorm.DB) error {
	migrations := map[interface{}]string{
		&models.User{}:               "User",
		&models.WalletAddress{}:      "WalletAddress",
		&models.LoginNonce{}:         "LoginNonce",
		&models.MentorProfile{}:      "MentorProfile",
		&models.BookingSession{}:     "BookingSession",
		&models.MentorAvailability{}: "MentorAvailability",
		&models.Booking{}:            "Booking",
	}

	log.Println("Starting database migrations...")
	for model, name := range migrations {
		log.Printf("Migrating %s table...", name)
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("error migrating %s table: %w", name, err)
		}
		log.Printf("%s migration successful", name)
	}

	return nil
}

// runNoncePrune clears expired login nonces left behind by abandoned login
// attempts.
func runNoncePrune() {
	DB, err := db.NewPSQLStorage()
	if err != nil {
		log.Fatalf("Database initialization error: %v", err)
	}
	defer closeDB(DB)

	result := DB.Where("expires_at < ?", time.Now()).Delete(&models.LoginNonce{})
	if result.Error != nil {
		log.Fatalf("Error pruning nonces: %v", result.Error)
	}
	log.Printf("Pruned %d expired nonces", result.RowsAffected)
}

func startServer() {
	DB, err := db.NewPSQLStorage()
	if err != nil {
		log.Fatalf("Database initialization error: %v", err)
	}
	defer closeDB(DB)
	log.Println("Connected to the database")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}
	server := api.NewApiServer(":"+port, DB)

	go func() {
		if err := server.Run(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()
	log.Printf("Server running on port %s", port)

	<-quit
	log.Println("Shutting down server...")
}

func closeDB(DB *gorm.DB) {
	sqlDB, err := DB.DB()
	if err != nil {
		return
	}
	sqlDB.Close()
	log.Println("Database connection closed")
}
