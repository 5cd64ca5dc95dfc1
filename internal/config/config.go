// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/job-tracker/internal/filter"
)

// Store backends
const (
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// SQLiteFile is the database file name the sqlite store uses under DataDir
const SQLiteFile = "jobtracker.db"

// Environment variables read by FromEnv
const (
	EnvStore       = "JOBTRACKER_STORE"
	EnvDataDir     = "JOBTRACKER_DATA_DIR"
	EnvDatabaseURL = "DATABASE_URL"
)

// Config represents the CLI configuration that can be loaded from a JSON or
// YAML file. All fields are optional; missing values come from the environment
// or Defaults.
type Config struct {
	// Storage
	Store       string `json:"store,omitempty" yaml:"store,omitempty"`               // file, sqlite or postgres
	DataDir     string `json:"data_dir,omitempty" yaml:"data_dir,omitempty"`         // Directory for the file and sqlite stores
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL

	// Listing
	DefaultSort  string `json:"default_sort,omitempty" yaml:"default_sort,omitempty"`   // Sort field for list
	DefaultOrder string `json:"default_order,omitempty" yaml:"default_order,omitempty"` // asc or desc
	ShowArchived bool   `json:"show_archived,omitempty" yaml:"show_archived,omitempty"` // Include archived applications by default

	// Behavior
	Verbose             bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	FetchTimeoutSeconds int  `json:"fetch_timeout_seconds,omitempty" yaml:"fetch_timeout_seconds,omitempty"` // Timeout for posting imports
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Store:               StoreFile,
		DataDir:             defaultDataDir(),
		DefaultSort:         string(filter.DefaultSort.Field),
		DefaultOrder:        string(filter.DefaultSort.Order),
		FetchTimeoutSeconds: 30,
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "jobtracker")
	}
	return ".jobtracker"
}

// FromEnv returns the settings found in the environment. Unset variables leave
// their fields empty.
func FromEnv() Config {
	return Config{
		Store:       os.Getenv(EnvStore),
		DataDir:     os.Getenv(EnvDataDir),
		DatabaseURL: os.Getenv(EnvDatabaseURL),
	}
}

// LoadConfig loads configuration from a JSON file, or a YAML file when the
// extension is .yaml or .yml.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.Store {
	case "", StoreFile, StoreSQLite:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required when store is postgres")
		}
	default:
		return fmt.Errorf("config error: unknown store %q (want file, sqlite or postgres)", c.Store)
	}

	if _, err := c.SortSpec(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.FetchTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'fetch_timeout_seconds' must be non-negative")
	}

	return nil
}

// SortSpec returns the configured default sort
func (c *Config) SortSpec() (filter.SortSpec, error) {
	return filter.ParseSortSpec(c.DefaultSort, c.DefaultOrder)
}

// FetchTimeout returns the posting import timeout, zero meaning the fetch default
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Layering is done by chaining: flags over file over env over Defaults().
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Store == "" {
		result.Store = defaults.Store
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.DefaultSort == "" {
		result.DefaultSort = defaults.DefaultSort
	}
	if result.DefaultOrder == "" {
		result.DefaultOrder = defaults.DefaultOrder
	}
	if result.FetchTimeoutSeconds == 0 {
		result.FetchTimeoutSeconds = defaults.FetchTimeoutSeconds
	}

	// Bools cannot distinguish unset from false, so either side enables them
	result.ShowArchived = result.ShowArchived || defaults.ShowArchived
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}
