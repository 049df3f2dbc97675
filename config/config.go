// Package config provides configuration management for the application.
// It handles loading and validation of configuration values from environment
// variables, with support for required variables, default values, and
// collective error reporting: every problem found while loading is gathered
// and returned as a single error so that a misconfigured deployment fails
// fast with the full picture.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// MongoConfig holds the document database connection settings.
type MongoConfig struct {
	URI    string // connection string, e.g. mongodb://localhost:27017
	DBName string // database holding the users/profiles/posts collections
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret     string        // secret key for signing JWTs
	TokenDuration time.Duration // lifetime of issued tokens
}

// GithubConfig holds the credentials used for outbound GitHub API calls.
// Both fields may be empty; the repo lookup then runs unauthenticated
// against the public rate limit.
type GithubConfig struct {
	ClientID     string
	ClientSecret string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	Mongo  *MongoConfig
	Auth   *AuthConfig
	Github *GithubConfig
	Server *ServerConfig
}

// getRequiredEnv reads a mandatory environment variable, collecting an error
// when it is absent instead of failing immediately.
func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// getOptionalEnv reads an environment variable, falling back to defaultValue.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvDuration reads an environment variable as a time.Duration
// ("1h", "15m", ...). Parsing failures are collected and the default is kept.
func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// LoadConfig creates and returns an AppConfig by reading and validating
// environment variables. It collects all errors encountered during loading
// and returns a single aggregated error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	mongoConfig := &MongoConfig{
		URI:    getRequiredEnv("MONGO_URI", &errs),
		DBName: getOptionalEnv("MONGO_DB_NAME", "devconnector"),
	}

	authConfig := &AuthConfig{
		JWTSecret:     getRequiredEnv("JWT_SECRET", &errs),
		TokenDuration: getOptionalEnvDuration("JWT_TOKEN_DURATION", time.Hour, &errs),
	}

	githubConfig := &GithubConfig{
		ClientID:     getOptionalEnv("GITHUB_CLIENT_ID", ""),
		ClientSecret: getOptionalEnv("GITHUB_CLIENT_SECRET", ""),
	}

	serverConfig := &ServerConfig{
		Port: getOptionalEnv("PORT", "5000"),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		Mongo:  mongoConfig,
		Auth:   authConfig,
		Github: githubConfig,
		Server: serverConfig,
	}, nil
}
