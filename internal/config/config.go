package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

var (
	ErrMissingAPIKey = errors.New("YouTube API key is not configured")
)

// Environment variable names
const (
	EnvAPIKey         = "YOUTUBE_API_KEY"
	EnvPort           = "PORT"
	EnvAllowedOrigins = "ALLOWED_ORIGINS"
	EnvAPIEndpoint    = "YOUTUBE_API_ENDPOINT"
	EnvLogLevel       = "LOG_LEVEL"
)

var defaultOrigins = []string{"http://localhost:3000", "http://localhost:3001", "http://localhost:5173"}

// Config holds the application configuration
type Config struct {
	YouTubeAPIKey  string
	Port           string
	AllowedOrigins []string
	APIEndpoint    string
	LogLevel       string
}

// Load reads the configuration from environment variables and any flags
// already bound to v. A missing API key is not an error here; it surfaces
// on the first request through the credential provider.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	v.SetDefault(EnvPort, "8080")
	v.SetDefault(EnvAllowedOrigins, strings.Join(defaultOrigins, ","))
	v.SetDefault(EnvLogLevel, "info")
	v.AutomaticEnv()

	for _, key := range []string{EnvAPIKey, EnvPort, EnvAllowedOrigins, EnvAPIEndpoint, EnvLogLevel} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	port := strings.TrimSpace(v.GetString(EnvPort))
	if port == "" {
		return nil, fmt.Errorf("%s must not be empty", EnvPort)
	}

	return &Config{
		YouTubeAPIKey:  strings.TrimSpace(v.GetString(EnvAPIKey)),
		Port:           port,
		AllowedOrigins: splitList(v.GetString(EnvAllowedOrigins)),
		APIEndpoint:    strings.TrimSpace(v.GetString(EnvAPIEndpoint)),
		LogLevel:       v.GetString(EnvLogLevel),
	}, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.YouTubeAPIKey == "" {
		return fmt.Errorf("%w: %s environment variable is not set", ErrMissingAPIKey, EnvAPIKey)
	}
	return nil
}

// Credentials returns the provider the YouTube client should read its key from.
func (c *Config) Credentials() CredentialProvider {
	if c.YouTubeAPIKey != "" {
		return StaticCredentials(c.YouTubeAPIKey)
	}
	return EnvCredentials(EnvAPIKey)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CredentialProvider supplies the Data API key. ok is false when no key is
// configured.
type CredentialProvider interface {
	APIKey() (key string, ok bool)
}

// StaticCredentials is a key fixed at startup.
type StaticCredentials string

func (s StaticCredentials) APIKey() (string, bool) {
	key := strings.TrimSpace(string(s))
	return key, key != ""
}

// EnvCredentials looks the key up in the named environment variable on every call.
type EnvCredentials string

func (e EnvCredentials) APIKey() (string, bool) {
	key, ok := os.LookupEnv(string(e))
	key = strings.TrimSpace(key)
	return key, ok && key != ""
}
