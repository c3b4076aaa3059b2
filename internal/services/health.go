package services

import (
	"fmt"
	"log"

	"github.com/crossbox/wodtracker/internal/config"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Storage      string            `json:"storage"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck reports service health. db is nil when the memory backend is
// configured, which is always healthy.
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: map[string]string{"backend": cfg.StorageBackend},
	}

	if db == nil {
		result.Storage = "ok"
		return result
	}

	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Storage = "error"
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
		return result
	}

	if err := sqlDB.Ping(); err != nil {
		result.Status = "unhealthy"
		result.Storage = "unreachable"
		result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
		log.Printf("Health check failed - database ping: %v", err)
		return result
	}

	result.Storage = "ok"
	result.Details["database_name"] = cfg.DBDatabase
	return result
}
