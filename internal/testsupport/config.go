package testsupport

import (
	"path/filepath"
	"testing"

	"stagehand/internal/config"
)

// NewSite creates one site target under a fresh temp directory and writes
// the given document as its shows file.
func NewSite(t testing.TB, name, document string) config.Site {
	t.Helper()
	base := t.TempDir()
	site := config.Site{
		Name:      name,
		ShowsFile: filepath.Join(base, "content", "shows.json"),
		BackupDir: filepath.Join(base, "backups"),
	}
	WriteDocument(t, site.ShowsFile, document)
	return site
}

// NewConfig produces a config holding the provided sites, with state kept
// in a temp directory and the history journal disabled. Tests that need
// the journal enable it explicitly.
func NewConfig(t testing.TB, sites ...config.Site) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.StateDir = t.TempDir()
	cfg.History = config.History{Enabled: false, Path: filepath.Join(cfg.StateDir, "history.db")}
	cfg.Sites = sites
	return &cfg
}
