// Package config handles tool configuration loading and management.
package config

// Config holds all tmxtool settings.
type Config struct {
	Assets  AssetsConfig  `yaml:"assets"`
	Logging LoggingConfig `yaml:"logging"`
}

// AssetsConfig holds asset lookup settings.
type AssetsConfig struct {
	// SearchDirs are the directories map references are resolved
	// against, highest priority last.
	SearchDirs []string `yaml:"search_dirs"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Assets: AssetsConfig{
			SearchDirs: []string{"."},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
