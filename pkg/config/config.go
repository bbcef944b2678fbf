package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	xdgAppName = "taskdump"
	configFile = "config.json"

	// EnvTaskListID names the environment variable selecting the exported list.
	EnvTaskListID = "TASKLIST_ID"
	// EnvLimit overrides the number of tasks requested.
	EnvLimit = "TASKDUMP_LIMIT"
)

// Config holds the settings of a taskdump run.
type Config struct {
	TaskListID      string `json:"tasklist_id,omitempty"`
	CredentialsFile string `json:"credentials_file,omitempty"`
	TokenFile       string `json:"token_file,omitempty"`
	OutputDir       string `json:"output_dir,omitempty"`
	Limit           int64  `json:"limit,omitempty"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		CredentialsFile: "credentials.json",
		TokenFile:       "token.json",
		OutputDir:       "data",
		Limit:           100,
	}
}

// GetXdgHome returns the directory holding taskdump's own state files.
func GetXdgHome() (string, error) {
	xdgHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgHome, ".config", xdgAppName), nil
}

func GetConfigPath() (string, error) {
	dir, err := GetXdgHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load resolves the configuration. Later sources win:
// defaults, the config file, .env in the working directory, the process environment.
func Load() (*Config, error) {
	cfg := Default()

	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	if err := readFile(path, cfg); err != nil {
		return nil, err
	}

	// A missing .env is normal; variables already set in the environment are kept.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if v := os.Getenv(EnvTaskListID); v != "" {
		cfg.TaskListID = v
	}
	if v := os.Getenv(EnvLimit); v != "" {
		limit, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvLimit, v, err)
		}
		cfg.Limit = limit
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	var fileCfg Config
	if err := json.NewDecoder(f).Decode(&fileCfg); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	if fileCfg.TaskListID != "" {
		cfg.TaskListID = fileCfg.TaskListID
	}
	if fileCfg.CredentialsFile != "" {
		cfg.CredentialsFile = fileCfg.CredentialsFile
	}
	if fileCfg.TokenFile != "" {
		cfg.TokenFile = fileCfg.TokenFile
	}
	if fileCfg.OutputDir != "" {
		cfg.OutputDir = fileCfg.OutputDir
	}
	if fileCfg.Limit > 0 {
		cfg.Limit = fileCfg.Limit
	}
	return nil
}

// SetTaskListID stores id as the default task list in the config file,
// keeping the other saved settings.
func SetTaskListID(id string) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	var cfg Config
	if err := readFile(path, &cfg); err != nil {
		return err
	}
	cfg.TaskListID = id
	return Save(&cfg)
}

func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}
