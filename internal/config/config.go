/**
 * @description
 * This package handles the configuration management for the service. It uses the
 * Viper library to read configuration from environment variables, providing a
 * centralized and straightforward way to manage application settings.
 *
 * @dependencies
 * - github.com/spf13/viper: A popular library for Go application configuration.
 */

package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all the configuration variables for the payout dashboard.
// These values are loaded from environment variables.
type Config struct {
	ServerPort             string `mapstructure:"SERVER_PORT"`
	MuralAPIBaseURL        string `mapstructure:"MURAL_API_BASE_URL"`
	MuralAPIKey            string `mapstructure:"MURAL_API_KEY"`
	MuralAccountAPIKey     string `mapstructure:"MURAL_ACCOUNT_API_KEY"`
	PageSize               int    `mapstructure:"PAGE_SIZE"`
	AccountsCacheTTLSec    int    `mapstructure:"ACCOUNTS_CACHE_TTL_SECONDS"`
	BanksCacheTTLHours     int    `mapstructure:"BANKS_CACHE_TTL_HOURS"`
	RefreshSchedule        string `mapstructure:"REFRESH_SCHEDULE"`
	CORSAllowedOrigins     string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeoutSeconds  int    `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	ShutdownTimeoutSeconds int    `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS"`
}

// LoadConfig reads configuration from environment variables from the given path.
// It uses Viper to automatically bind environment variables to the Config struct.
func LoadConfig(path string) (config Config, err error) {
	// Tell viper the path to look for the optional .env file.
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	// Enable automatic binding of environment variables.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("MURAL_API_BASE_URL", "https://api-staging.muralpay.com/api")
	viper.SetDefault("PAGE_SIZE", 20)
	viper.SetDefault("ACCOUNTS_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("BANKS_CACHE_TTL_HOURS", 24)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 60)
	viper.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("PORT")
	_ = viper.BindEnv("MURAL_API_BASE_URL")
	_ = viper.BindEnv("MURAL_API_KEY", "MURAL_API_KEY", "MURAL_PAY_API_KEY")
	_ = viper.BindEnv("MURAL_ACCOUNT_API_KEY")
	_ = viper.BindEnv("PAGE_SIZE")
	_ = viper.BindEnv("ACCOUNTS_CACHE_TTL_SECONDS")
	_ = viper.BindEnv("BANKS_CACHE_TTL_HOURS")
	_ = viper.BindEnv("REFRESH_SCHEDULE")
	_ = viper.BindEnv("CORS_ALLOWED_ORIGINS")
	_ = viper.BindEnv("REQUEST_TIMEOUT_SECONDS")
	_ = viper.BindEnv("SHUTDOWN_TIMEOUT_SECONDS")

	// Attempt to read the config file. It's okay if it doesn't exist.
	if err = viper.ReadInConfig(); err != nil {
		// If the config file is not found, we can ignore the error.
		// For other errors, we should return them.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("level=warn component=config msg=\"failed to read config file; using environment values\" err=%v", err)
		}
	}

	// Unmarshal the configuration into the Config struct.
	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	// Platform-injected PORT (Heroku, Railway, Render) wins over SERVER_PORT.
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		config.ServerPort = port
	}
	config.MuralAPIBaseURL = strings.TrimRight(strings.TrimSpace(config.MuralAPIBaseURL), "/")
	config.MuralAPIKey = strings.TrimSpace(config.MuralAPIKey)
	if config.MuralAPIKey == "" {
		config.MuralAPIKey = strings.TrimSpace(os.Getenv("MURAL_PAY_API_KEY"))
	}
	config.MuralAccountAPIKey = strings.TrimSpace(config.MuralAccountAPIKey)
	config.RefreshSchedule = strings.TrimSpace(config.RefreshSchedule)

	if config.PageSize <= 0 {
		config.PageSize = 20
	}
	if config.AccountsCacheTTLSec <= 0 {
		config.AccountsCacheTTLSec = 60
	}
	if config.BanksCacheTTLHours <= 0 {
		config.BanksCacheTTLHours = 24
	}
	if config.RequestTimeoutSeconds <= 0 {
		config.RequestTimeoutSeconds = 60
	}
	if config.ShutdownTimeoutSeconds <= 0 {
		config.ShutdownTimeoutSeconds = 10
	}

	return
}
