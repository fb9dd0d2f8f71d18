package cmd

import (
	"fmt"
	"strings"

	"erd-builder/internal/dialect"

	"github.com/spf13/viper"
)

type DBConfig struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Schema string `mapstructure:"schema"`
	Active bool   `mapstructure:"active"`
}

// GetActiveDBConfig returns the currently active database configuration.
func GetActiveDBConfig() (*DBConfig, error) {
	var configs []DBConfig

	if err := viper.UnmarshalKey("databases", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse databases config: %w", err)
	}

	var activeConfig *DBConfig
	count := 0

	for i := range configs {
		if configs[i].Active {
			activeConfig = &configs[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no active database found in config (set active: true)")
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active databases found (only one can be active)")
	}

	return activeConfig, nil
}

// ResolveDBConfig picks the connection to introspect: database.dsn (flag,
// env or config) first, then the active entry of the databases list.
func ResolveDBConfig() (*DBConfig, error) {
	if dsn := viper.GetString("database.dsn"); dsn != "" {
		driver := viper.GetString("database.driver")
		if driver == "" {
			driver = dialect.DetectDriver(dsn)
		}
		return &DBConfig{
			Name:   "CLI Wrapper",
			Driver: driver,
			DSN:    dsn,
			Schema: viper.GetString("database.schema"),
			Active: true,
		}, nil
	}

	cfg, err := GetActiveDBConfig()
	if err != nil {
		return nil, fmt.Errorf("database.dsn is required (via flag, env or config): %w", err)
	}
	if cfg.Driver == "" {
		cfg.Driver = dialect.DetectDriver(cfg.DSN)
	}
	return cfg, nil
}

// maskDSN hides the password part of user:pass@host style DSNs for log output.
func maskDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	if at < 0 {
		return dsn
	}
	userInfo := dsn[:at]
	start := strings.LastIndex(userInfo, "//") + 2
	if start < 2 {
		start = 0
	}
	colon := strings.Index(userInfo[start:], ":")
	if colon < 0 {
		return dsn
	}
	return userInfo[:start+colon+1] + "****" + dsn[at:]
}
