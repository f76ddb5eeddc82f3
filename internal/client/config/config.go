package config

import (
	"fmt"
	"os"
	"time"
)

// Storage drivers understood by storage.Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DefaultNamespace prefixes every persisted key.
const DefaultNamespace = "@smart-desk"

// Config holds runtime settings for the Smart-Desk client.
//
// Fields:
//   - StorageDriver: sqlite, postgres or memory.
//   - StorageDSN: driver DSN; for sqlite an empty DSN means <DataDir>/smartdesk.db.
//   - DataDir: directory (relative to the working dir) holding local files.
//   - StorageBusyTimeout: how long SQLite waits on a locked database file.
//   - Namespace: key prefix, e.g. "@smart-desk" gives "@smart-desk:auth-token".
//   - LogLevel / LogFormat: see logging.New.
type Config struct {
	StorageDriver      string
	StorageDSN         string
	DataDir            string
	StorageBusyTimeout time.Duration
	Namespace          string
	LogLevel           string
	LogFormat          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageDriver = DriverSQLite
	c.StorageDSN = ""
	c.DataDir = ".smartdesk"
	c.StorageBusyTimeout = 5 * time.Second
	c.Namespace = DefaultNamespace
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate reports settings no component can work with.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.StorageDSN == "" {
			return fmt.Errorf("storage driver %q requires a DSN", c.StorageDriver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	if c.Namespace == "" {
		return fmt.Errorf("namespace must not be empty")
	}
	if c.StorageBusyTimeout < 0 {
		return fmt.Errorf("storage busy timeout must not be negative")
	}
	return nil
}

// LoadConfig constructs a Config from os.Args; see Load.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load applies defaults, then overlays values from JSON (if a path was
// given) and command-line flags. Later sources take precedence over earlier
// ones. The result is validated.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
