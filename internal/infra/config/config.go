// internal/infra/config/config.go
package config

import "os"

// Config holds environment-resolved settings for the whole application.
// It carries values only; clients are constructed in platform/di.
type Config struct {
	Port string

	// Firestore / Firebase
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	GCPCreds                 string

	// Optional relational catalog/inventory store
	PostgresDSN string

	// Optional catalog read cache
	RedisAddr     string
	RedisPassword string

	// Transactional mail
	SendGridAPIKey string
	SendGridFrom   string
}

// Load reads the environment and returns a Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "")

	cfg := &Config{
		Port:                     getenvDefault("PORT", "8080"),
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		PostgresDSN: os.Getenv("PG_DSN"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		SendGridFrom:   os.Getenv("SENDGRID_FROM"),
	}

	return cfg
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
