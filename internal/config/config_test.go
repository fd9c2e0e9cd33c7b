package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stagehand/internal/config"
)

func TestLoadDefaultsWhenNoFileExists(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	origWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd returned error: %v", err)
	}
	if err := os.Chdir(tempHome); err != nil {
		t.Fatalf("Chdir returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origWD); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.StateDir != filepath.Join(tempHome, ".local", "share", "stagehand") {
		t.Fatalf("unexpected state dir: %q", cfg.StateDir)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}
	if cfg.History.Path != filepath.Join(cfg.StateDir, "history.db") {
		t.Fatalf("unexpected history path: %q", cfg.History.Path)
	}

	if len(cfg.Sites) != 2 {
		t.Fatalf("expected two default sites, got %d", len(cfg.Sites))
	}
	if cfg.Sites[0].Name != "main" || cfg.Sites[1].Name != "variant" {
		t.Fatalf("unexpected site names: %s, %s", cfg.Sites[0].Name, cfg.Sites[1].Name)
	}
	if !filepath.IsAbs(cfg.Sites[0].ShowsFile) {
		t.Fatalf("shows_file not expanded: %q", cfg.Sites[0].ShowsFile)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stagehand.toml")
	content := `
state_dir = "` + dir + `/state"

[logging]
format = "json"
level = "debug"

[[sites]]
name = "main"
shows_file = "` + dir + `/shows.json"
backup_dir = "` + dir + `/backups"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved=%q exists=%v", resolved, exists)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
	if len(cfg.Sites) != 1 {
		t.Fatalf("explicit sites must replace defaults, got %d", len(cfg.Sites))
	}
	if cfg.Sites[0].BackupDir != filepath.Join(dir, "backups") {
		t.Fatalf("backup dir: %q", cfg.Sites[0].BackupDir)
	}
}

func TestLoadRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			"bad format",
			"[logging]\nformat = \"xml\"\n",
			"logging.format",
		},
		{
			"bad level",
			"[logging]\nlevel = \"loud\"\n",
			"logging.level",
		},
		{
			"site missing name",
			"[[sites]]\nshows_file = \"/tmp/a.json\"\nbackup_dir = \"/tmp/b\"\n",
			"name must be set",
		},
		{
			"site missing shows file",
			"[[sites]]\nname = \"main\"\nbackup_dir = \"/tmp/b\"\n",
			"shows_file must be set",
		},
		{
			"duplicate site names",
			"[[sites]]\nname = \"main\"\nshows_file = \"/tmp/a.json\"\nbackup_dir = \"/tmp/b\"\n" +
				"[[sites]]\nname = \"main\"\nshows_file = \"/tmp/c.json\"\nbackup_dir = \"/tmp/d\"\n",
			"duplicate site name",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.toml")
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatal(err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("sample not found")
	}
	if len(cfg.Sites) != 2 {
		t.Fatalf("sample sites = %d, want 2", len(cfg.Sites))
	}
}

func TestSiteByName(t *testing.T) {
	cfg := config.Default()
	if _, ok := cfg.SiteByName("main"); !ok {
		t.Fatal("main site not found")
	}
	if _, ok := cfg.SiteByName("nope"); ok {
		t.Fatal("unexpected site")
	}
}
