package config

import (
	"flag"
	"io"

	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   storage driver (sqlite, postgres, memory)
//	-s string   storage DSN
//	-n string   key namespace
//	-l string   log level
//	-f string   log format (text, json)
//
// Only these flags are looked at (see flagx.FilterArgs).
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-s", "-n", "-l", "-f"})

	fs := flag.NewFlagSet("smartdesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StorageDriver, "d", cfg.StorageDriver, "storage driver (sqlite, postgres, memory)")
	fs.StringVar(&cfg.StorageDSN, "s", cfg.StorageDSN, "storage DSN")
	fs.StringVar(&cfg.Namespace, "n", cfg.Namespace, "key namespace")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text, json)")

	return fs.Parse(args)
}
