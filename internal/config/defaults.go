package config

const (
	defaultStateDir  = "~/.local/share/stagehand"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults: the two
// deployed band sites, console logging, and the history journal enabled.
func Default() Config {
	return Config{
		StateDir: defaultStateDir,
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: true,
		},
		Sites: []Site{
			{
				Name:      "main",
				ShowsFile: "~/sites/main/content/shows.json",
				BackupDir: "~/sites/main/backups",
			},
			{
				Name:      "variant",
				ShowsFile: "~/sites/variant/content/shows.json",
				BackupDir: "~/sites/variant/backups",
			},
		},
	}
}
