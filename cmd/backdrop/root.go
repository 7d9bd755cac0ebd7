package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dixieflatline76/Backdrop/config"
	"github.com/dixieflatline76/Backdrop/util/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// configPath is bound to the persistent --config flag.
var configPath string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backdrop",
		Short: "Daily Bing image of the day as your desktop background",
		Long: `Backdrop downloads the Bing image of the day for one or more markets, picks the
resolution that matches your screen, optionally writes the image title onto it in a
color that stays readable, saves it under Pictures/Bing Backgrounds and sets it as the
desktop background.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "settings file (default ~/.backdrop/settings.yaml)")

	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newDaemonCmd())
	cmd.AddCommand(newMarketsCmd())
	cmd.AddCommand(newCheckUpdateCmd())
	cmd.AddCommand(newProxyPasswordCmd())

	return cmd
}

// settingsPath returns the --config value or the default settings file.
func settingsPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetFilename()
}

// loadConfig reads the settings file. A missing default file is not an error: the built-in
// defaults are used instead. A file named with --config must exist.
func loadConfig() (*config.Config, string, error) {
	path, err := settingsPath()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", config.ErrConfiguration, err)
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && configPath == "" {
		log.Printf("No settings at %s, using defaults.", path)
		cfg, err := config.Parse(nil)
		return cfg, path, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}
