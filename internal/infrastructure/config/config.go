package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string       `mapstructure:"environment"`
	LogLevel    string       `mapstructure:"log_level"`
	Server      ServerConfig `mapstructure:"server"`
	Striga      StrigaConfig `mapstructure:"striga"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	Host           string   `mapstructure:"host"`
	ReadTimeout    int      `mapstructure:"read_timeout"`
	WriteTimeout   int      `mapstructure:"write_timeout"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StrigaConfig contains the provider credentials and environment
// binding. The HMAC secret signs every outbound request; the card
// application id scopes the card endpoints.
type StrigaConfig struct {
	Environment string `mapstructure:"environment"` // sandbox or production
	APIKeyID    string `mapstructure:"api_key_id"`
	HMACSecret  string `mapstructure:"hmac_secret"`
	CardAppID   string `mapstructure:"card_app_id"`
	APIBase     string `mapstructure:"api_base"` // override, tests and staging only
	Timeout     int    `mapstructure:"timeout"`  // request timeout in seconds
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	overrideFromEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("server.allowed_origins", []string{"*"})

	viper.SetDefault("striga.environment", "sandbox")
	viper.SetDefault("striga.timeout", 30)
}

func overrideFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			viper.Set("server.port", p)
		}
	}

	if env := os.Getenv("STRIGA_ENVIRONMENT"); env != "" {
		viper.Set("striga.environment", env)
	}
	if keyID := os.Getenv("STRIGA_API_KEY_ID"); keyID != "" {
		viper.Set("striga.api_key_id", keyID)
	}
	if secret := os.Getenv("STRIGA_HMAC_SECRET"); secret != "" {
		viper.Set("striga.hmac_secret", secret)
	}
	if cardAppID := os.Getenv("STRIGA_CARD_APP_ID"); cardAppID != "" {
		viper.Set("striga.card_app_id", cardAppID)
	}
	if apiBase := os.Getenv("STRIGA_API_BASE"); apiBase != "" {
		viper.Set("striga.api_base", apiBase)
	}
	if timeout := os.Getenv("STRIGA_TIMEOUT"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			viper.Set("striga.timeout", t)
		}
	}
}

func validate(config *Config) error {
	if config.Striga.APIKeyID == "" {
		return fmt.Errorf("striga API key id is required")
	}

	if config.Striga.HMACSecret == "" {
		return fmt.Errorf("striga HMAC secret is required")
	}

	if config.Striga.Environment != "sandbox" && config.Striga.Environment != "production" {
		return fmt.Errorf("striga environment must be sandbox or production, got %q", config.Striga.Environment)
	}

	// The card endpoints build paths from this id, so an empty value
	// would produce malformed provider requests at runtime.
	if config.Striga.CardAppID == "" {
		return fmt.Errorf("striga card application id is required")
	}

	return nil
}
