package config

import (
	"log/slog"
	"os"
	"path/filepath"
)

// version of the application.
var version = "0.1.0"

const (
	appName        string = "bark"         // Default name of the application
	command        string = "bark"         // Default name of the executable
	MainDBName     string = "bookmarks.db" // Default name of the main database
	configFilename string = "config.yml"   // Default config filename
)

type (
	AppConfig struct {
		Name    string      `json:"name"`    // Name of the application
		Cmd     string      `json:"cmd"`     // Name of the executable
		Version string      `json:"version"` // Version of the application
		DBName  string      `json:"db"`      // Database name
		Info    information `json:"data"`    // Application information
		Env     environment `json:"env"`     // Application environment variables
		Path    path        `json:"path"`    // Application path
		Verbose int         `json:"-"`       // Logging level
	}

	path struct {
		Data       string `json:"data"`   // Path to store database
		ConfigFile string `json:"config"` // Path to config file
	}

	information struct {
		URL   string `json:"url"`   // URL of the application
		Title string `json:"title"` // Title of the application
		Desc  string `json:"desc"`  // Description of the application
	}

	environment struct {
		Home        string   `json:"home"`  // Environment variable for the data directory
		GitHubToken []string `json:"token"` // Environment variables for the GitHub token, in order
	}
)

// App is the default application configuration.
var App = &AppConfig{
	Name:    appName,
	Cmd:     command,
	Version: version,
	DBName:  MainDBName,
	Info: information{
		URL:   "https://github.com/mateconpizza/bark#readme",
		Title: "Bark: a bookmark manager",
		Desc:  "Keep your bookmarks and GitHub stars in a single SQLite file",
	},
	Env: environment{
		Home:        "BARK_HOME",
		GitHubToken: []string{"BARK_GITHUB_TOKEN", "GITHUB_TOKEN"},
	},
}

// SetAppPaths sets the app data path and the config file path.
func SetAppPaths(data, configDir string) {
	App.Path.Data = data
	App.Path.ConfigFile = filepath.Join(configDir, configFilename)
}

// DBPath returns the full path of the database.
func (a *AppConfig) DBPath() string {
	return filepath.Join(a.Path.Data, a.DBName)
}

// SetVerbosity installs the default logger. Each level of verbosity lowers the
// minimum level by one step, from error down to debug.
func SetVerbosity(verbose int) {
	levels := []slog.Level{
		slog.LevelError,
		slog.LevelWarn,
		slog.LevelInfo,
		slog.LevelDebug,
	}
	level := levels[min(max(verbose, 0), len(levels)-1)]

	logger := slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			AddSource: true,
			Level:     level,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == "source" {
					if source, ok := a.Value.Any().(*slog.Source); ok {
						dir, file := filepath.Split(source.File)
						source.File = filepath.Join(filepath.Base(filepath.Clean(dir)), file)

						return slog.Attr{Key: "source", Value: slog.AnyValue(source)}
					}
				}

				return a
			},
		}),
	)
	slog.SetDefault(logger)

	App.Verbose = verbose
	slog.Debug("logging", "level", level)
}
