package config

import (
	"path/filepath"
	"strings"
)

// normalize trims and expands every path-like field and fills derived
// defaults. It runs after decode and before Validate.
func (c *Config) normalize() error {
	var err error

	c.StateDir = strings.TrimSpace(c.StateDir)
	if c.StateDir != "" {
		if c.StateDir, err = expandPath(c.StateDir); err != nil {
			return err
		}
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	c.History.Path = strings.TrimSpace(c.History.Path)
	if c.History.Path == "" && c.StateDir != "" {
		c.History.Path = filepath.Join(c.StateDir, "history.db")
	} else if c.History.Path != "" {
		if c.History.Path, err = expandPath(c.History.Path); err != nil {
			return err
		}
	}

	for i := range c.Sites {
		site := &c.Sites[i]
		site.Name = strings.TrimSpace(site.Name)
		site.ShowsFile = strings.TrimSpace(site.ShowsFile)
		site.BackupDir = strings.TrimSpace(site.BackupDir)
		if site.ShowsFile != "" {
			if site.ShowsFile, err = expandPath(site.ShowsFile); err != nil {
				return err
			}
		}
		if site.BackupDir != "" {
			if site.BackupDir, err = expandPath(site.BackupDir); err != nil {
				return err
			}
		}
	}

	return nil
}
