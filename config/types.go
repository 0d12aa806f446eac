package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	SMS     SMSConfig     `mapstructure:"sms"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds the bulk SMS API connection details
type APIConfig struct {
	Key        string        `mapstructure:"key"`
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"` // "10s", or a bare number of milliseconds
	MaxRetries int           `mapstructure:"max_retries"`
}

// SMSConfig contains messaging defaults
type SMSConfig struct {
	DefaultSender string `mapstructure:"default_sender"`
}

// FilterConfig contains named filter expressions usable with --preset
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// Preset returns the named filter expression.
func (f FilterConfig) Preset(name string) (string, bool) {
	expr, ok := f.Presets[name]
	return expr, ok
}
