// Package config loads racefeed configuration from
// ~/.racefeed/config.yaml with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FileConfig is the structure of ~/.racefeed/config.yaml.
type FileConfig struct {
	Storage struct {
		// Path to the SQLite record store.
		DSN string `yaml:"dsn"`
		// Directory CSV exports land in.
		OutputDir string `yaml:"output_dir"`
		// Optional bulk field-size lookup file.
		FieldSizeFile string `yaml:"field_size_file"`
	} `yaml:"storage"`
	Fetch struct {
		BaseURL      string `yaml:"base_url"`
		PauseSeconds int    `yaml:"pause_seconds"`
		MaxAttempts  int    `yaml:"max_attempts"`
	} `yaml:"fetch"`
	// Racecourse codes to scrape per date; races per meeting.
	Courses        []string `yaml:"courses"`
	RacesPerCourse int      `yaml:"races_per_course"`
}

// Settings is the fully resolved configuration: defaults, overridden by
// the config file, overridden by environment variables.
type Settings struct {
	DSN            string
	OutputDir      string
	FieldSizeFile  string
	BaseURL        string
	PauseSeconds   int
	MaxAttempts    int
	Courses        []string
	RacesPerCourse int
}

// ConfigFilePath returns the path of the user config file.
func ConfigFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".racefeed", "config.yaml"), nil
}

// LoadConfigFile loads the user config file. Returns nil if the file
// doesn't exist (not an error); returns an error only if the file exists
// but cannot be parsed.
func LoadConfigFile() (*FileConfig, error) {
	configPath, err := ConfigFilePath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, nil // File doesn't exist -- not an error.
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// Load resolves configuration with precedence:
// 1. Environment variables (highest priority)
// 2. Configuration file (~/.racefeed/config.yaml)
// 3. Default values (lowest priority)
func Load() (Settings, error) {
	settings := Settings{
		DSN:            "races.db",
		OutputDir:      "data/races",
		PauseSeconds:   2,
		MaxAttempts:    3,
		Courses:        []string{"ST", "HV"},
		RacesPerCourse: 11,
	}

	cfg, err := LoadConfigFile()
	if err != nil {
		return settings, err
	}
	if cfg != nil {
		if cfg.Storage.DSN != "" {
			settings.DSN = cfg.Storage.DSN
		}
		if cfg.Storage.OutputDir != "" {
			settings.OutputDir = cfg.Storage.OutputDir
		}
		if cfg.Storage.FieldSizeFile != "" {
			settings.FieldSizeFile = cfg.Storage.FieldSizeFile
		}
		if cfg.Fetch.BaseURL != "" {
			settings.BaseURL = cfg.Fetch.BaseURL
		}
		if cfg.Fetch.PauseSeconds > 0 {
			settings.PauseSeconds = cfg.Fetch.PauseSeconds
		}
		if cfg.Fetch.MaxAttempts > 0 {
			settings.MaxAttempts = cfg.Fetch.MaxAttempts
		}
		if len(cfg.Courses) > 0 {
			settings.Courses = cfg.Courses
		}
		if cfg.RacesPerCourse > 0 {
			settings.RacesPerCourse = cfg.RacesPerCourse
		}
	}

	if val := os.Getenv("RACEFEED_DSN"); val != "" {
		settings.DSN = val
	}
	if val := os.Getenv("RACEFEED_OUTPUT_DIR"); val != "" {
		settings.OutputDir = val
	}
	if val := os.Getenv("RACEFEED_FIELD_SIZE_FILE"); val != "" {
		settings.FieldSizeFile = val
	}
	if val := os.Getenv("RACEFEED_BASE_URL"); val != "" {
		settings.BaseURL = val
	}
	if val := os.Getenv("RACEFEED_MAX_ATTEMPTS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			settings.MaxAttempts = n
		}
	}

	return settings, nil
}

// WriteDefaultConfigFile creates the user config file with defaults.
// Returns true if the file was created, false if it already existed and
// force was not set.
func WriteDefaultConfigFile(force bool) (bool, error) {
	configPath, err := ConfigFilePath()
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(configPath); err == nil && !force {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	content := `storage:
  dsn: "races.db"
  output_dir: "data/races"
  field_size_file: ""
fetch:
  pause_seconds: 2
  max_attempts: 3
courses:
  - ST
  - HV
races_per_course: 11
`
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}
