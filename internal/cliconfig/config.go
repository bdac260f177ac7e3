package cliconfig

import (
	"errors"
	"fmt"

	"github.com/henderiw/rangeset/pkg/rangeset"
	"github.com/henderiw/rangeset/pkg/variant"
	"github.com/rs/zerolog"
)

// Config holds CLI configuration for rangeset.
type Config struct {
	Type      string
	Separator string
	Pattern   string
	LogLevel  string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Type:      "integer",
		Separator: rangeset.DefaultItemSeparator,
		LogLevel:  zerolog.LevelInfoValue,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errm error
	if err := c.SetConfig().Validate(); err != nil {
		errm = errors.Join(errm, err)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errm = errors.Join(errm, fmt.Errorf("log-level: %w", err))
	}
	return errm
}

// SetConfig returns the range set configuration holding values.
func (c *Config) SetConfig(values ...any) rangeset.Config {
	return rangeset.Config{
		Type:          c.Type,
		Values:        values,
		ItemSeparator: c.Separator,
		Pattern:       c.Pattern,
	}
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setType sets a registered range type if not empty and flag not changed.
func (s *configSetter) setType(flag, value string, dst *string) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	if _, err := variant.Lookup(value); err != nil {
		return fmt.Errorf("%s: %w", flag, err)
	}
	*dst = value
	return nil
}

// setLevel sets a log level if not empty and flag not changed.
func (s *configSetter) setLevel(flag, value string, dst *string) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	if _, err := zerolog.ParseLevel(value); err != nil {
		return fmt.Errorf("%s: %w", flag, err)
	}
	*dst = value
	return nil
}
