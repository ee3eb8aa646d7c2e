package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Config holds all configuration for the application.
type Config struct {
	Port      string `mapstructure:"PORT" validate:"required,numeric"`
	GinMode   string `mapstructure:"GIN_MODE" validate:"oneof=debug release test"`
	ClientURL string `mapstructure:"CLIENT_URL" validate:"required,url"`

	StoreDriver   string `mapstructure:"STORE_DRIVER" validate:"oneof=mongo memory"`
	MongoURI      string `mapstructure:"MONGO_URI"`
	DBUser        string `mapstructure:"DB_USER"`
	DBPassword    string `mapstructure:"DB_PASSWORD"`
	DBHost        string `mapstructure:"DB_HOST" validate:"required"`
	DBName        string `mapstructure:"DB_NAME" validate:"required"`
	DBAppName     string `mapstructure:"DB_APP_NAME"`
	EnsureIndexes bool   `mapstructure:"ENSURE_INDEXES"`

	// Base64 encoded service account JSON.
	FirebaseServiceKey string `mapstructure:"FIREBASE_SERVICE_KEY" validate:"required,base64"`
	FirebaseProjectID  string `mapstructure:"FIREBASE_PROJECT_ID"`

	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

// LoadConfig loads configuration from environment variables using Viper.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "3000")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("CLIENT_URL", "http://localhost:5173")
	v.SetDefault("STORE_DRIVER", StoreMongo)
	v.SetDefault("DB_HOST", "cluster0.onxzedt.mongodb.net")
	v.SetDefault("DB_NAME", "wanderlustDA")
	v.SetDefault("DB_APP_NAME", "Cluster0")
	v.SetDefault("ENSURE_INDEXES", false)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	for _, key := range []string{"MONGO_URI", "DB_USER", "DB_PASSWORD", "FIREBASE_PROJECT_ID"} {
		_ = v.BindEnv(key)
	}
	// The frontend build shares its env file with the backend, hence the VITE_ alias.
	_ = v.BindEnv("FIREBASE_SERVICE_KEY", "FIREBASE_SERVICE_KEY", "VITE_FB_SERVICE_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.GinMode = strings.ToLower(cfg.GinMode)
	cfg.StoreDriver = strings.ToLower(cfg.StoreDriver)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct tags and the store credentials.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.StoreDriver == StoreMongo && c.MongoURI == "" && (c.DBUser == "" || c.DBPassword == "") {
		return errors.New("either MONGO_URI or DB_USER and DB_PASSWORD are required for the mongo store")
	}
	return nil
}

// MongoConnectionURI returns MONGO_URI when set, otherwise the Atlas SRV URI
// built from the DB_* settings.
func (c *Config) MongoConnectionURI() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	q := url.Values{}
	q.Set("retryWrites", "true")
	q.Set("w", "majority")
	if c.DBAppName != "" {
		q.Set("appName", c.DBAppName)
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost,
		Path:     "/",
		RawQuery: q.Encode(),
	}
	return u.String()
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}
