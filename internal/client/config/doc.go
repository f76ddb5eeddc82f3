// Package config loads runtime configuration for the Smart-Desk client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c/-config or $SMARTDESK_CONFIG.
//  3. Command-line flags, which override earlier values.
//
// # JSON schema
//
//	{
//	  "storage_driver": "sqlite",
//	  "storage_dsn": "",
//	  "data_dir": ".smartdesk",
//	  "storage_busy_timeout": "5s",
//	  "namespace": "@smart-desk",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
