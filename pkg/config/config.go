// Package config provides configuration management for kurodb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - GBIF: base_url, page_limit, network_key, courtesy_delay_ms
//   - OBIS: base_url, page_size, courtesy_delay_ms
//   - WoRMS: base_url, timeout_sec
//   - Ingest: max_records
//   - Dedup: prefer
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Ingest.Year, Strategy, Geometry, TaxonKey, TaxonID, StartDate, EndDate
//     (per-command)
//   - Dedup.DryRun (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use KURODB_ prefix with underscores for nesting:
//
//	KURODB_DATABASE_HOST=localhost
//	KURODB_DATABASE_PORT=5432
//	KURODB_GBIF_NETWORK_KEY=...
//	KURODB_LOG_LEVEL=info
package config

import (
	"runtime"
)

// Config represents the complete kurodb configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// GBIF contains settings for the GBIF occurrence API client.
	GBIF GBIFConfig `mapstructure:"gbif" yaml:"gbif"`

	// OBIS contains settings for the OBIS occurrence API client.
	OBIS OBISConfig `mapstructure:"obis" yaml:"obis"`

	// WoRMS contains settings for the WoRMS taxonomy API client.
	WoRMS WoRMSConfig `mapstructure:"worms" yaml:"worms"`

	// Ingest contains settings shared by the sync commands.
	Ingest IngestConfig `mapstructure:"ingest" yaml:"ingest"`

	// Dedup contains settings for the merge engine.
	Dedup DedupConfig `mapstructure:"dedup" yaml:"dedup"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize defines the number of records per batch for bulk inserts.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// GBIFConfig contains settings for the GBIF occurrence search API.
type GBIFConfig struct {
	// BaseURL of the GBIF API, without a trailing slash.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// PageLimit is the page size for occurrence searches. The API caps
	// pages at 300 records; larger values are clamped by the client.
	PageLimit int `mapstructure:"page_limit" yaml:"page_limit"`

	// NetworkKey is the GBIF network used by the "network" sweep
	// strategy. The default is the OBIS network on GBIF.
	NetworkKey string `mapstructure:"network_key" yaml:"network_key"`

	// CourtesyDelayMs is the pause between consecutive API requests.
	CourtesyDelayMs int `mapstructure:"courtesy_delay_ms" yaml:"courtesy_delay_ms"`
}

// OBISConfig contains settings for the OBIS occurrence API.
type OBISConfig struct {
	// BaseURL of the OBIS v3 API, without a trailing slash.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// PageSize is the page size for occurrence fetches.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`

	// CourtesyDelayMs is the pause between consecutive API requests.
	CourtesyDelayMs int `mapstructure:"courtesy_delay_ms" yaml:"courtesy_delay_ms"`
}

// WoRMSConfig contains settings for the WoRMS REST API.
type WoRMSConfig struct {
	// BaseURL of the WoRMS REST API, without a trailing slash.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec is the per-request timeout in seconds.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// IngestConfig contains settings shared by the sync commands. Only
// MaxRecords is persistent; the rest are per-run CLI flags.
type IngestConfig struct {
	// MaxRecords stops a run after this many saved records.
	MaxRecords int `mapstructure:"max_records" yaml:"max_records"`

	// Strategy selects the geographic partitioning of a run:
	// "network", "geometry" or "oceans". Runtime-only.
	Strategy string

	// Year filters GBIF runs: "2024" or a "2015,2024" range. Runtime-only.
	Year string

	// Geometry is the WKT polygon for the "geometry" strategy. Runtime-only.
	Geometry string

	// TaxonKey filters GBIF runs by taxon key. Runtime-only.
	TaxonKey int

	// TaxonID filters OBIS runs by AphiaID. Runtime-only.
	TaxonID int

	// StartDate and EndDate bound OBIS runs (YYYY-MM-DD). Runtime-only.
	StartDate string
	EndDate   string
}

// DedupConfig contains settings for the merge engine.
type DedupConfig struct {
	// Prefer selects which source provides the primary record during a
	// merge: "OBIS" or "GBIF".
	Prefer string `mapstructure:"prefer" yaml:"prefer"`

	// DryRun reports what a merge would do without touching the store.
	// Runtime-only.
	DryRun bool
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "kurodb",
			SSLMode:   "disable",
			BatchSize: 5_000,
		},
		GBIF: GBIFConfig{
			BaseURL:   "https://api.gbif.org/v1",
			PageLimit: 300,
			// OBIS network on GBIF
			NetworkKey:      "2b7c7b4f-4d4f-40d3-94de-c28b6fa054a6",
			CourtesyDelayMs: 500,
		},
		OBIS: OBISConfig{
			BaseURL:         "https://api.obis.org/v3",
			PageSize:        500,
			CourtesyDelayMs: 1000,
		},
		WoRMS: WoRMSConfig{
			BaseURL:    "https://www.marinespecies.org/rest",
			TimeoutSec: 10,
		},
		Ingest: IngestConfig{
			MaxRecords: 10_000,
			Strategy:   "network",
		},
		Dedup: DedupConfig{
			Prefer: "OBIS",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
