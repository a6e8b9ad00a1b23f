package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
)

// Default endpoints; tests and self-hosted installs override them.
const (
	DefaultGitHubAPIURL  = "https://api.github.com"
	DefaultGitLabBaseURL = "https://gitlab.com"
)

// valid log formats and levels
var (
	validLogFormats = []string{"text", "json"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
)

// Config carries everything the resolver needs from its environment.
// Credentials are sensitive and must never be written to logs.
type Config struct {
	GitHubClientID      string
	GitHubClientSecret  string
	GitHubAccessToken   string
	GitHubAPIURL        string
	GitHubUseGraphQL    bool
	GitLabAccessToken   string
	GitLabBaseURL       string
	GitLabSkipSSLVerify bool
	HTTPTimeoutSeconds  int
	LogFormat           string
	LogLevel            string
}

// Load creates a new Config instance from environment variables and validates
// it. The environment is read exactly once here; everything downstream
// receives the Config by injection.
func Load() (*Config, error) {
	cfg, err := loadEnv()
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadEnv reads the raw configuration from the environment without validating
// it, so file overlays can be applied before validation.
func loadEnv() (*Config, error) {

	// GitHub credentials: each independently optional. An empty set means
	// requests go out unauthenticated, subject to public rate limits.
	gitHubClientID := os.Getenv("GITHUB_CLIENT_ID")
	gitHubClientSecret := os.Getenv("GITHUB_CLIENT_SECRET")
	gitHubAccessToken := os.Getenv("GITHUB_ACCESS_TOKEN")

	gitHubAPIURL := getEnvOrDefault("RESOLVER_GITHUB_API_URL", DefaultGitHubAPIURL)

	gitHubUseGraphQL, err := parseBoolEnvOrDefault("RESOLVER_GITHUB_USE_GRAPHQL", false)
	if err != nil {
		return nil, err
	}

	// GitLab configuration
	gitLabAccessToken := os.Getenv("GITLAB_ACCESS_TOKEN")
	gitLabBaseURL := getEnvOrDefault("GITLAB_BASE_URL", DefaultGitLabBaseURL)

	gitLabSkipSSL, err := parseBoolEnvOrDefault("RESOLVER_GITLAB_SKIP_SSL_VERIFY", false)
	if err != nil {
		return nil, err
	}

	// HTTP client configuration; 0 delegates timeouts entirely to the
	// caller's environment.
	httpTimeoutSeconds, err := parseIntEnvOrDefault("RESOLVER_HTTP_TIMEOUT_SECONDS", 0, 0, 3600)
	if err != nil {
		return nil, err
	}

	// Logging configuration
	logFormat := os.Getenv("RESOLVER_LOG_FORMAT")
	logLevel := os.Getenv("RESOLVER_LOG_LEVEL")

	cfg := &Config{
		GitHubClientID:      gitHubClientID,
		GitHubClientSecret:  gitHubClientSecret,
		GitHubAccessToken:   gitHubAccessToken,
		GitHubAPIURL:        gitHubAPIURL,
		GitHubUseGraphQL:    gitHubUseGraphQL,
		GitLabAccessToken:   gitLabAccessToken,
		GitLabBaseURL:       gitLabBaseURL,
		GitLabSkipSSLVerify: gitLabSkipSSL,
		HTTPTimeoutSeconds:  httpTimeoutSeconds,
		LogFormat:           logFormat,
		LogLevel:            logLevel,
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default if not set
func getEnvOrDefault(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// parseIntEnvOrDefault parses an integer environment variable with range validation or returns a default value if not set
func parseIntEnvOrDefault(key string, defaultVal, min, max int) (int, error) {
	str, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal, nil
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer, got: %s", key, str)
	}

	if val < min || val > max {
		return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, val)
	}

	return val, nil
}

// parseBoolEnvOrDefault parses a boolean environment variable or returns a default value if not set
func parseBoolEnvOrDefault(key string, defaultVal bool) (bool, error) {
	str, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal, nil
	}

	val, err := strconv.ParseBool(str)
	if err != nil {
		return false, fmt.Errorf("%s must be a valid boolean, got: %s", key, str)
	}

	return val, nil
}

// validateConfig performs all validation on the loaded configuration
func validateConfig(cfg *Config) error {

	if cfg.GitHubAPIURL == "" {
		return fmt.Errorf("RESOLVER_GITHUB_API_URL must not be empty")
	}
	if cfg.GitLabBaseURL == "" {
		return fmt.Errorf("GITLAB_BASE_URL must not be empty")
	}

	// The GraphQL API rejects unauthenticated requests outright.
	if cfg.GitHubUseGraphQL && cfg.GitHubAccessToken == "" {
		return fmt.Errorf("GITHUB_ACCESS_TOKEN is required when RESOLVER_GITHUB_USE_GRAPHQL is enabled")
	}

	// Validate logging configuration
	if cfg.LogFormat != "" {
		if !slices.Contains(validLogFormats, strings.ToLower(cfg.LogFormat)) {
			return fmt.Errorf("RESOLVER_LOG_FORMAT must be one of: %v; got: %s", validLogFormats, cfg.LogFormat)
		}
	}
	if cfg.LogLevel != "" {
		if !slices.Contains(validLogLevels, strings.ToLower(cfg.LogLevel)) {
			return fmt.Errorf("RESOLVER_LOG_LEVEL must be one of: %v; got: %s", validLogLevels, cfg.LogLevel)
		}
	}

	return nil
}
