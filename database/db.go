package database

import (
	"fmt"
	"os"

	"pod-tracker/logger"
	"pod-tracker/models/foresponse"
	"pod-tracker/models/log"
	"pod-tracker/models/podaudit"
	"pod-tracker/models/trip"
	"pod-tracker/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	// Get database configuration from environment variables
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	dbUser := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	// Set default sslmode if not provided
	if sslmode == "" {
		sslmode = "disable"
	}

	// Build PostgreSQL DSN string
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, dbUser, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	// Create indexes for better performance
	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models in dependency order
func autoMigrate() error {
	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&user.User{},
		&trip.Trip{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Models hanging off trips
	stage2Models := []interface{}{
		&trip.TripStatusEvent{},
		&trip.Issue{},
		&trip.IssueUpdate{},
		&trip.RunnerRemark{},
		&trip.OwnerRemark{},
		&foresponse.FOResponse{},
		&podaudit.PODAudit{},
		&podaudit.AuditDocument{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Remaining models
	remainingModels := []interface{}{
		// Logging
		&log.Log{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// User indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_uuid ON users(uuid)").Error; err != nil {
		return fmt.Errorf("failed to create user uuid index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)").Error; err != nil {
		return fmt.Errorf("failed to create user email index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)").Error; err != nil {
		return fmt.Errorf("failed to create user role index: %w", err)
	}

	// Trip indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_trips_status ON trips(status)").Error; err != nil {
		return fmt.Errorf("failed to create trip status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_trips_slot_status ON trips(slot_status)").Error; err != nil {
		return fmt.Errorf("failed to create trip slot_status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_trips_vehicle_no ON trips(vehicle_no)").Error; err != nil {
		return fmt.Errorf("failed to create trip vehicle_no index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_trips_runner ON trips(runner)").Error; err != nil {
		return fmt.Errorf("failed to create trip runner index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_trips_owner ON trips(owner)").Error; err != nil {
		return fmt.Errorf("failed to create trip owner index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_trips_created_at ON trips(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create trip created_at index: %w", err)
	}

	// Status event indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_trip_status_events_trip_id ON trip_status_events(trip_id)").Error; err != nil {
		return fmt.Errorf("failed to create trip_status_events trip_id index: %w", err)
	}

	// FO response indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_fo_responses_status ON fo_responses(status)").Error; err != nil {
		return fmt.Errorf("failed to create fo_responses status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_fo_responses_trip_id ON fo_responses(trip_id)").Error; err != nil {
		return fmt.Errorf("failed to create fo_responses trip_id index: %w", err)
	}

	// Audit indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_pod_audits_status ON pod_audits(status)").Error; err != nil {
		return fmt.Errorf("failed to create pod_audits status index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_method ON logs(method)").Error; err != nil {
		return fmt.Errorf("failed to create log method index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
