// internal/infra/config/config.go
package config

import "os"

// Config holds the process-wide environment configuration.
type Config struct {
	Port string

	// GCP project used for Firestore / Firebase Auth / Secret Manager.
	ProjectID       string
	CredentialsFile string

	// CartStoreDriver selects the remote cart store implementation:
	// "remote" (REST client, default), "firestore", "postgres".
	CartStoreDriver string

	// Base URL of the external cart API (driver=remote).
	CartRemoteBaseURL string

	// Postgres DSN (driver=postgres). When CartDBDSNSecret is set, the DSN
	// is resolved from Secret Manager instead and CartDBDSN is ignored.
	CartDBDSN       string
	CartDBDSNSecret string

	// CartMergePolicy: "accumulate" (default) or "replace".
	// Repeated adds of the same product either grow quantity or overwrite it.
	CartMergePolicy string

	// AllowedOrigin is the storefront origin allowed by CORS.
	AllowedOrigin string
}

// Load reads the environment and returns the config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "")

	return &Config{
		Port:            getenvDefault("PORT", "8080"),
		ProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		CartStoreDriver:   getenvDefault("CART_STORE_DRIVER", "remote"),
		CartRemoteBaseURL: os.Getenv("CART_REMOTE_BASE_URL"),
		CartDBDSN:         os.Getenv("CART_DB_DSN"),
		CartDBDSNSecret:   os.Getenv("CART_DB_DSN_SECRET"),

		CartMergePolicy: getenvDefault("CART_MERGE_POLICY", "accumulate"),

		AllowedOrigin: os.Getenv("STOREFRONT_ORIGIN"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
