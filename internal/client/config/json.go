package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/flagx"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/timex"
)

// JSONConfig is the on-disk shape of the config file. Durations go through
// timex.Duration so "5s" and integer nanoseconds are both accepted.
type JSONConfig struct {
	StorageDriver      string          `json:"storage_driver"`
	StorageDSN         string          `json:"storage_dsn"`
	DataDir            string          `json:"data_dir"`
	StorageBusyTimeout *timex.Duration `json:"storage_busy_timeout"`
	Namespace          string          `json:"namespace"`
	LogLevel           string          `json:"log_level"`
	LogFormat          string          `json:"log_format"`
}

// parseJSON overlays cfg with the JSON file named by -c/-config or
// $SMARTDESK_CONFIG. Fields missing from the file keep their current value.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.JSONConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	overlay(&cfg.StorageDriver, jc.StorageDriver)
	overlay(&cfg.StorageDSN, jc.StorageDSN)
	overlay(&cfg.DataDir, jc.DataDir)
	overlay(&cfg.Namespace, jc.Namespace)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.LogFormat, jc.LogFormat)
	if jc.StorageBusyTimeout != nil {
		cfg.StorageBusyTimeout = jc.StorageBusyTimeout.Duration
	}
	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
