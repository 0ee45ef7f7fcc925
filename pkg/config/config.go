// pkg/config/config.go - configuration settings for vendorwatch.

package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const appDirName = "vendorwatch"

// Configuration holds the configurable options for vendorwatch in YAML
// format.
type Configuration struct {
	CatalogBaseURL      string `yaml:"CatalogBaseURL"`
	Season              int    `yaml:"Season"`
	WorkspacePath       string `yaml:"WorkspacePath"`
	LogLevel            string `yaml:"LogLevel"`
	LogPath             string `yaml:"LogPath"`
	FetchTimeoutSeconds int    `yaml:"FetchTimeoutSeconds"`
	Debug               bool   `yaml:"Debug"`
	Verbose             bool   `yaml:"Verbose"`
}

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, appDirName, "config.yaml")
}

// GetDefaultConfig provides default configuration values.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		CatalogBaseURL:      "https://vendorwatch.example.com",
		Season:              time.Now().Year(),
		LogLevel:            "WARN",
		FetchTimeoutSeconds: 10,
	}
}

// LoadConfig loads the configuration from a YAML file, then applies
// overrides from an optional .env file and the process environment. A
// missing file is not an error: defaults plus environment apply. An empty
// path means the default location.
func LoadConfig(path string) (*Configuration, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	config := GetDefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, config); err != nil {
			log.Printf("Failed to parse configuration file: %v", err)
			return nil, err
		}
	case os.IsNotExist(err):
		log.Printf("Configuration file does not exist: %s, using defaults", path)
	default:
		log.Printf("Failed to read configuration file: %v", err)
		return nil, err
	}

	// .env in the working directory, if present, feeds the same override
	// path as real environment variables. Real environment wins.
	_ = godotenv.Load()
	applyEnvOverrides(config)

	return config, nil
}

// SaveConfig saves the current configuration to a YAML file.
func SaveConfig(config *Configuration, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		log.Printf("Failed to serialize configuration: %v", err)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating configuration directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("Failed to write configuration file: %v", err)
		return err
	}
	return nil
}

// applyEnvOverrides layers VENDORWATCH_* environment variables over the
// loaded configuration.
func applyEnvOverrides(config *Configuration) {
	loadStringFromEnv("VENDORWATCH_CATALOG_BASE_URL", &config.CatalogBaseURL)
	loadStringFromEnv("VENDORWATCH_WORKSPACE", &config.WorkspacePath)
	loadStringFromEnv("VENDORWATCH_LOG_LEVEL", &config.LogLevel)
	loadStringFromEnv("VENDORWATCH_LOG_PATH", &config.LogPath)

	loadIntFromEnv("VENDORWATCH_SEASON", &config.Season)
	loadIntFromEnv("VENDORWATCH_FETCH_TIMEOUT_SECONDS", &config.FetchTimeoutSeconds)

	loadBoolFromEnv("VENDORWATCH_DEBUG", &config.Debug)
	loadBoolFromEnv("VENDORWATCH_VERBOSE", &config.Verbose)
}

// loadStringFromEnv loads a string value from the environment if set.
func loadStringFromEnv(name string, target *string) {
	if val := os.Getenv(name); val != "" {
		*target = val
	}
}

// loadIntFromEnv loads an integer value from the environment if set.
func loadIntFromEnv(name string, target *int) {
	if val := os.Getenv(name); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			*target = parsed
		}
	}
}

// loadBoolFromEnv loads a boolean value from the environment if set.
// Accepts the usual forms: "true"/"false", "1"/"0".
func loadBoolFromEnv(name string, target *bool) {
	if val := os.Getenv(name); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			*target = parsed
		}
	}
}
