package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (RANGESET_*). It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("type", os.Getenv("RANGESET_TYPE"), &cfg.Type)
	s.setString("separator", os.Getenv("RANGESET_SEPARATOR"), &cfg.Separator)
	s.setString("pattern", os.Getenv("RANGESET_PATTERN"), &cfg.Pattern)
	s.setString("log-level", os.Getenv("RANGESET_LOG_LEVEL"), &cfg.LogLevel)
}
