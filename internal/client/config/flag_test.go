package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected func() *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"-d", "postgres", "-s", "postgres://u:p@db/sd", "-n", "@test", "-l", "debug", "-f", "json"},
			expected: func() *Config {
				c := &Config{}
				c.LoadDefaults()
				c.StorageDriver = DriverPostgres
				c.StorageDSN = "postgres://u:p@db/sd"
				c.Namespace = "@test"
				c.LogLevel = "debug"
				c.LogFormat = "json"
				return c
			},
		},
		{
			name: "unrelated flags are ignored",
			args: []string{"-c", "cfg.json", "-x", "1", "-d", "memory"},
			expected: func() *Config {
				c := &Config{}
				c.LoadDefaults()
				c.StorageDriver = DriverMemory
				return c
			},
		},
		{
			name: "equals form",
			args: []string{"-n=@other"},
			expected: func() *Config {
				c := &Config{}
				c.LoadDefaults()
				c.Namespace = "@other"
				return c
			},
		},
		{
			name:    "flag missing value",
			args:    []string{"-d"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.LoadDefaults()

			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected(), cfg))
		})
	}
}
