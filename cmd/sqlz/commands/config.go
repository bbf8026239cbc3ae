package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/ido50/sqlz/v2"
)

// AppFs is the filesystem .env files are looked up in
var AppFs = afero.NewOsFs()

// Config holds the CLI configuration, merged from flags, SQLZ_*
// environment variables (.env files included) and an optional .sqlz.yaml
// file, looked up in the working directory and then ~/.config/sqlz.
type Config struct {
	Driver  string
	DSN     string
	Quote   string
	Verbose bool
}

// loadConfig reads the configuration file and environment into v.
// Flags must already be bound to v.
func loadConfig(v *viper.Viper) (*Config, error) {
	// .env.local takes precedence over .env
	if _, err := AppFs.Stat(".env.local"); err == nil {
		if err := godotenv.Overload(".env.local"); err != nil {
			return nil, fmt.Errorf("failed loading .env.local: %w", err)
		}
	}
	if _, err := AppFs.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed loading .env: %w", err)
		}
	}

	v.SetEnvPrefix("SQLZ")
	v.AutomaticEnv()
	v.SetDefault("quote", "auto")

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed reading %s: %w", path, err)
		}
	} else {
		v.SetConfigName(".sqlz")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "sqlz"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed reading config: %w", err)
			}
		}
	}

	return &Config{
		Driver:  v.GetString("driver"),
		DSN:     v.GetString("dsn"),
		Quote:   v.GetString("quote"),
		Verbose: v.GetBool("verbose"),
	}, nil
}

// Quoter resolves the configured quoting strategy
func (cfg *Config) Quoter() (sqlz.Quoter, error) {
	switch cfg.Quote {
	case "none", "":
		return sqlz.Identity, nil
	case "lower":
		return sqlz.Lower, nil
	case "backtick":
		return sqlz.Backticks, nil
	case "double":
		return sqlz.DoubleQuotes, nil
	case "bracket":
		return sqlz.Brackets, nil
	case "auto":
		return sqlz.QuoterFor(cfg.Driver), nil
	default:
		return nil, fmt.Errorf("unknown quoting strategy %q", cfg.Quote)
	}
}
