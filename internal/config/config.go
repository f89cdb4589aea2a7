package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rhystmorgan/assistant/internal/storage"
)

// Config is assembled from command line flags; nothing is read from the environment.
type Config struct {
	DataFile   string
	Passphrase string
	AuditDir   string
	Plain      bool
	Debug      bool
}

func GetDefaultConfig() (*Config, error) {
	dataFile, err := storage.DefaultPath()
	if err != nil {
		return nil, err
	}
	return &Config{DataFile: dataFile}, nil
}

// Resolve expands a leading ~ in file paths and cleans them.
func (c *Config) Resolve() error {
	var err error
	if c.DataFile, err = expandHome(c.DataFile); err != nil {
		return err
	}
	if c.AuditDir != "" {
		if c.AuditDir, err = expandHome(c.AuditDir); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return fmt.Errorf("data file must not be empty")
	}

	if info, err := os.Stat(c.DataFile); err == nil && info.IsDir() {
		return fmt.Errorf("data file %s is a directory", c.DataFile)
	}

	if c.Passphrase != "" && storage.IsSQLitePath(c.DataFile) {
		return fmt.Errorf("passphrase is only supported for JSON data files, got: %s", c.DataFile)
	}

	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return filepath.Clean(path), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}
