package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateSites(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug/info/warn/error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateSites() error {
	if len(c.Sites) == 0 {
		return errors.New("at least one [[sites]] entry must be configured")
	}
	seen := make(map[string]bool, len(c.Sites))
	for i, site := range c.Sites {
		if site.Name == "" {
			return fmt.Errorf("sites[%d].name must be set", i)
		}
		if seen[site.Name] {
			return fmt.Errorf("duplicate site name %q", site.Name)
		}
		seen[site.Name] = true
		if site.ShowsFile == "" {
			return fmt.Errorf("sites[%d] (%s): shows_file must be set", i, site.Name)
		}
		if site.BackupDir == "" {
			return fmt.Errorf("sites[%d] (%s): backup_dir must be set", i, site.Name)
		}
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Enabled && c.History.Path == "" {
		return errors.New("history.path must be set when history.enabled is true and state_dir is empty")
	}
	return nil
}
