package cmd

import "fmt"

// Config carries everything the application wires at startup. Values come
// from the environment; empty strings mean the caller skipped the setting.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// JWTSecret signs and verifies the API and tracking tokens.
	JWTSecret string

	// RedisAddr enables the Redis tracking bus. Empty keeps broadcasts
	// in-process, which is only correct for a single replica.
	RedisAddr string

	CatalogBaseURL      string
	IdentityBaseURL     string
	SettlementBaseURL   string
	NotificationBaseURL string
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
