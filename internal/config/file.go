package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors the optional TOML configuration file. Every field is
// optional; set fields override what the environment provided.
type fileConfig struct {
	GitHub struct {
		ClientID     string `toml:"client_id"`
		ClientSecret string `toml:"client_secret"`
		AccessToken  string `toml:"access_token"`
		APIURL       string `toml:"api_url"`
		UseGraphQL   *bool  `toml:"use_graphql"`
	} `toml:"github"`
	GitLab struct {
		AccessToken   string `toml:"access_token"`
		BaseURL       string `toml:"base_url"`
		SkipSSLVerify *bool  `toml:"skip_ssl_verify"`
	} `toml:"gitlab"`
	HTTP struct {
		TimeoutSeconds *int `toml:"timeout_seconds"`
	} `toml:"http"`
	Log struct {
		Format string `toml:"format"`
		Level  string `toml:"level"`
	} `toml:"log"`
}

// LoadWithFile loads configuration from the environment and overlays the TOML
// file at path on top of it. Explicit file settings beat ambient environment
// variables. The merged result is validated as a whole.
func LoadWithFile(path string) (*Config, error) {
	cfg, err := loadEnv()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if fc.GitHub.ClientID != "" {
		cfg.GitHubClientID = fc.GitHub.ClientID
	}
	if fc.GitHub.ClientSecret != "" {
		cfg.GitHubClientSecret = fc.GitHub.ClientSecret
	}
	if fc.GitHub.AccessToken != "" {
		cfg.GitHubAccessToken = fc.GitHub.AccessToken
	}
	if fc.GitHub.APIURL != "" {
		cfg.GitHubAPIURL = fc.GitHub.APIURL
	}
	if fc.GitHub.UseGraphQL != nil {
		cfg.GitHubUseGraphQL = *fc.GitHub.UseGraphQL
	}
	if fc.GitLab.AccessToken != "" {
		cfg.GitLabAccessToken = fc.GitLab.AccessToken
	}
	if fc.GitLab.BaseURL != "" {
		cfg.GitLabBaseURL = fc.GitLab.BaseURL
	}
	if fc.GitLab.SkipSSLVerify != nil {
		cfg.GitLabSkipSSLVerify = *fc.GitLab.SkipSSLVerify
	}
	if fc.HTTP.TimeoutSeconds != nil {
		cfg.HTTPTimeoutSeconds = *fc.HTTP.TimeoutSeconds
	}
	if fc.Log.Format != "" {
		cfg.LogFormat = fc.Log.Format
	}
	if fc.Log.Level != "" {
		cfg.LogLevel = fc.Log.Level
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
