package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when read from the environment,
// eg. reference_year is read from DATECHECK_REFERENCE_YEAR.
const EnvPrefix = "DATECHECK"

// Configuration keys.
const (
	KeyEnv           = "env"
	KeyLogLevel      = "log_level"
	KeyReferenceYear = "reference_year"
	KeyStrictTime    = "strict_time"
	KeyOutput        = "output"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

type Config struct {
	Env      string // "development", "production"
	LogLevel string // "debug", "info", "warn", "error"

	// Validation
	ReferenceYear int  // Latest valid year for dates, 0 = current year
	StrictTime    bool // Reject negative hours and minutes

	// Output format for results, "text" or "json"
	Output string
}

// NewViper returns a viper instance with defaults set and environment
// variables bound.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyEnv, "development")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyReferenceYear, 0)
	v.SetDefault(KeyStrictTime, false)
	v.SetDefault(KeyOutput, OutputText)
	return v
}

// ReadFile reads the config file at path into v. The format is taken from
// the extension (toml, yaml, json). Flags and environment variables take
// precedence over the file.
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}

// FromViper builds a Config from the values held by v.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Env:           v.GetString(KeyEnv),
		LogLevel:      strings.ToLower(v.GetString(KeyLogLevel)),
		ReferenceYear: v.GetInt(KeyReferenceYear),
		StrictTime:    v.GetBool(KeyStrictTime),
		Output:        strings.ToLower(v.GetString(KeyOutput)),
	}
}

// Validate checks for settings that cannot be used.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("%s: unsupported output format %q", KeyOutput, c.Output)
	}
	if c.ReferenceYear < 0 {
		return fmt.Errorf("%s: must not be negative: %d", KeyReferenceYear, c.ReferenceYear)
	}
	return nil
}

// ReferenceYearOr returns the configured reference year, or the year of
// now if none is configured.
func (c *Config) ReferenceYearOr(now time.Time) int {
	if c.ReferenceYear > 0 {
		return c.ReferenceYear
	}
	return now.Year()
}

// IsProduction reports whether logs should be written as JSON.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
