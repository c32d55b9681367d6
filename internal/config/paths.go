package config

import (
	"fmt"
	"os"

	gap "github.com/muesli/go-app-paths"
)

// DataPath returns the data path for the application. The home environment
// variable takes precedence over the user data directory.
func DataPath() (string, error) {
	if p, ok := os.LookupEnv(App.Env.Home); ok && p != "" {
		return p, nil
	}

	scope := gap.NewScope(gap.User, appName)
	dataDir, err := scope.DataPath("")
	if err != nil {
		return "", fmt.Errorf("getting data path: %w", err)
	}

	return dataDir, nil
}

// ConfigPath returns the config path for the application.
func ConfigPath() (string, error) {
	scope := gap.NewScope(gap.User, appName)
	configDir, err := scope.ConfigPath("")
	if err != nil {
		return "", fmt.Errorf("getting config path: %w", err)
	}

	return configDir, nil
}
