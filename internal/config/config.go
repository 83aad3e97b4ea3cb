// Package config resolves the roster front-ends' settings once at startup.
//
// Values come from the environment, optionally seeded from a .env file, and
// fall back to local-development defaults. The resolved Config is passed
// explicitly to the components that need it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultAPIBaseURL is used when no base URL is configured.
const DefaultAPIBaseURL = "http://localhost:8000"

// AdminPath is the backend's admin interface route.
const AdminPath = "/admin"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds resolved settings.
type Config struct {
	Env          string `validate:"required,oneof=dev test prod"`
	APIBaseURL   string `validate:"required,url"`
	ListenAddr   string `validate:"required,hostname_port"`
	LogFile      string
	RollbarToken string
	OTLPEndpoint string
	ServiceName  string `validate:"required"`
}

// AdminURL returns the link to the backend's admin interface.
func (c *Config) AdminURL() string {
	return c.APIBaseURL + AdminPath
}

var validate = validator.New()

// New returns a viper instance with defaults and environment bindings.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("env", "dev")
	v.SetDefault("api_url", DefaultAPIBaseURL)
	v.SetDefault("listen_addr", ":3000")
	v.SetDefault("log_file", "roster.log")
	v.SetDefault("service_name", "studentroster")

	v.SetEnvPrefix("roster")
	v.AutomaticEnv()
	// REACT_APP_API_URL is honoured for deployments configured for the
	// JavaScript front-end.
	_ = v.BindEnv("api_url", "ROSTER_API_URL", "REACT_APP_API_URL")
	_ = v.BindEnv("rollbar_token", "ROLLBAR_TOKEN")
	_ = v.BindEnv("otlp_endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
	_ = v.BindEnv("service_name", "OTEL_SERVICE_NAME")
	return v
}

// LoadDotEnv loads path into the process environment if it exists.
// Variables already set are not overridden.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// Load reads the optional .env file (ROSTER_DOTENV, default ".env") and
// resolves the configuration from the environment.
func Load() (*Config, error) {
	path := os.Getenv("ROSTER_DOTENV")
	if path == "" {
		path = ".env"
	}
	if err := LoadDotEnv(path); err != nil {
		return nil, err
	}
	return FromViper(New())
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env:          strings.ToLower(strings.TrimSpace(v.GetString("env"))),
		APIBaseURL:   strings.TrimRight(strings.TrimSpace(v.GetString("api_url")), "/"),
		ListenAddr:   strings.TrimSpace(v.GetString("listen_addr")),
		LogFile:      v.GetString("log_file"),
		RollbarToken: v.GetString("rollbar_token"),
		OTLPEndpoint: v.GetString("otlp_endpoint"),
		ServiceName:  v.GetString("service_name"),
	}
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, len(verrs))
			for i, fe := range verrs {
				fields[i] = fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag())
			}
			return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(fields, ", "))
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}
