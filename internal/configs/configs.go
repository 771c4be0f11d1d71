/*
Package configs is responsible for loading and parsing the application's configuration settings.

It configures server parameters by reading operating system environment variables
(with optional .env support for local development), including the running environment,
port, CORS allowed origins, the administrator allow-list, and DynamoDB connection settings.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig contains all configuration parameters required for the application to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Security Settings
	AllowedOrigins []string

	// AdminUsers is the administrator allow-list. It is loaded once at startup
	// and never mutated afterwards.
	AdminUsers []string

	// DynamoDB Settings
	TableName          string
	AWSRegion          string
	DynamoDBEndpoint   string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// splitList parses a comma-separated environment value into a slice,
// trimming whitespace and dropping empty entries.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// LoadConfig reads and parses the application configuration from environment variables.
// A .env file in the working directory is loaded first when present, so local
// development does not need exported variables. It provides default values for each
// configuration item and performs necessary type conversions and validation.
// It returns a pointer to the AppConfig struct and any error encountered.
func LoadConfig() (*AppConfig, error) {
	// Ignore the error: a missing .env file simply means the process environment is used as-is.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	// --- General Server Settings ---
	// Environment
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// Port
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	cfg.Port = port

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	// --- Security Settings ---
	// AllowedOrigins
	originsStr := os.Getenv("ALLOWED_ORIGINS")
	if originsStr != "" {
		cfg.AllowedOrigins = splitList(originsStr)
	} else {
		cfg.AllowedOrigins = []string{}
	}

	// AdminUsers
	adminsStr := os.Getenv("ADMIN_USERS")
	if adminsStr != "" {
		cfg.AdminUsers = splitList(adminsStr)
	}
	if len(cfg.AdminUsers) == 0 {
		if cfg.Environment == "development" {
			cfg.AdminUsers = []string{"danielisgr8"}
		} else {
			return nil, fmt.Errorf("ADMIN_USERS environment variable is required in %s environment", cfg.Environment)
		}
	}

	// --- DynamoDB Settings ---
	cfg.TableName = os.Getenv("DDB_TABLE_NAME")
	if cfg.TableName == "" {
		cfg.TableName = "ConfidentialClausUserTable"
	}

	cfg.AWSRegion = os.Getenv("AWS_REGION")
	if cfg.AWSRegion == "" {
		cfg.AWSRegion = "us-west-2"
	}

	// Optional: point the client at a local DynamoDB instance.
	cfg.DynamoDBEndpoint = os.Getenv("DDB_ENDPOINT")

	// Optional: static credentials. When unset, the SDK's default credential chain is used.
	cfg.AWSAccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.AWSSecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	if (cfg.AWSAccessKeyID == "") != (cfg.AWSSecretAccessKey == "") {
		return nil, fmt.Errorf("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set together")
	}

	return cfg, nil
}
