package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	SaveDirectory string `yaml:"save_directory"`
	Confirmations bool   `yaml:"confirmations"`
	LogFile       string `yaml:"log_file"`
	LogLevel      string `yaml:"log_level"`
}

const (
	envLogLevel = "MOCKUP_LOG_LEVEL"
	envLogFile  = "MOCKUP_LOG_FILE"
	envSaveDir  = "MOCKUP_SAVE_DIR"
)

func defaultConfig() *Config {
	return &Config{
		SaveDirectory: "",
		Confirmations: true,
		LogFile:       filepath.Join(os.TempDir(), "mockup.log"),
		LogLevel:      "info",
	}
}

// loadConfig reads ~/.mockuprc. A missing or unreadable file yields the defaults.
func loadConfig() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		config := defaultConfig()
		config.applyEnv("")
		return config, nil
	}
	return loadConfigFrom(filepath.Join(homeDir, ".mockuprc"), homeDir)
}

func loadConfigFrom(path, homeDir string) (*Config, error) {
	config := defaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		config.applyEnv(homeDir)
		return config, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			fallback := defaultConfig()
			fallback.applyEnv(homeDir)
			return fallback, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	config.applyEnv(homeDir)
	return config, nil
}

func (c *Config) applyEnv(homeDir string) {
	if v := os.Getenv(envLogLevel); v != "" {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(envLogFile); ok {
		c.LogFile = v
	}
	if v := os.Getenv(envSaveDir); v != "" {
		c.SaveDirectory = v
	}
	c.SaveDirectory = expandPath(c.SaveDirectory, homeDir)
	c.LogFile = expandPath(c.LogFile, homeDir)
}

func expandPath(value, homeDir string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// GetSavePath places filename in the save directory, creating the directory if needed.
func (c *Config) GetSavePath(filename string) (string, error) {
	if c.SaveDirectory == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.SaveDirectory, 0755); err != nil {
		return "", fmt.Errorf("create save directory %s: %w", c.SaveDirectory, err)
	}
	return filepath.Join(c.SaveDirectory, filename), nil
}
