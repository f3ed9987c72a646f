package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppName names the config directory and the binary
const AppName = "dsearch"

var v *viper.Viper

func init() {
	// Variables from .env never override the real environment
	_ = godotenv.Load()

	v = viper.New()

	// Set default values
	v.SetDefault("tenant.url", "")
	v.SetDefault("server.port", 28081)
	v.SetDefault("server.url", "http://localhost:28081")
	v.SetDefault("http.timeout", 10*time.Second)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.prune", "@every 10m")
	v.SetDefault("log.level", "info")

	// Environment variables
	v.AutomaticEnv()
	v.BindEnv("tenant.url", "TENANT_URL")
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.url", "SERVER_URL")
	v.BindEnv("http.timeout", "HTTP_TIMEOUT")
	v.BindEnv("cache.ttl", "CACHE_TTL")
	v.BindEnv("cache.prune", "CACHE_PRUNE_SCHEDULE")
	v.BindEnv("log.level", "LOG_LEVEL")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Look for config in the following paths
	configPaths := []string{
		".",
		filepath.Join(xdg.ConfigHome, AppName),
		"/etc/" + AppName,
	}
	for _, path := range configPaths {
		v.AddConfigPath(path)
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			panic(fmt.Sprintf("Fatal error reading config file: %s", err))
		}
		// Config file not found; ignore error and use defaults
	}
}

// GetTenantURL returns the default tenant API URL
func GetTenantURL() string {
	return v.GetString("tenant.url")
}

// GetServerPort returns the port the API server listens on
func GetServerPort() int {
	return v.GetInt("server.port")
}

// GetServerURL returns the URL of a running API server
func GetServerURL() string {
	return v.GetString("server.url")
}

// GetHTTPTimeout returns the timeout of requests to the tenant
func GetHTTPTimeout() time.Duration {
	return v.GetDuration("http.timeout")
}

// GetCacheTTL returns how long fetched dropdown options stay fresh
func GetCacheTTL() time.Duration {
	return v.GetDuration("cache.ttl")
}

// GetCachePruneSchedule returns the cron spec of the option cache pruning
func GetCachePruneSchedule() string {
	return v.GetString("cache.prune")
}

// GetLogLevel returns the configured log level name
func GetLogLevel() string {
	return v.GetString("log.level")
}

// ConfigFileUsed returns the path of the loaded config file, if any
func ConfigFileUsed() string {
	return v.ConfigFileUsed()
}
