package service

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/database"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// VersionInfo describes the running application and database versions,
// enabled features, and whether the schema has pending migrations.
type VersionInfo struct {
	AppVersion       string
	DBVersion        string
	Features         map[string]bool
	MigrationNeeded  bool
	MigrationMessage *string
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion reports the application version alongside the database
// schema version and migration status.
func (s *SystemService) CheckVersion() (*VersionInfo, error) {
	current, err := database.SchemaVersion(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema version: %w", err)
	}
	latest, err := database.LatestMigration()
	if err != nil {
		return nil, fmt.Errorf("failed to read latest migration: %w", err)
	}

	info := &VersionInfo{
		AppVersion: version.Version,
		DBVersion:  strconv.FormatInt(current, 10),
		Features:   version.Features,
	}
	if current < latest {
		info.MigrationNeeded = true
		msg := fmt.Sprintf("database schema is at version %d; version %d is available", current, latest)
		info.MigrationMessage = &msg
	}
	return info, nil
}
