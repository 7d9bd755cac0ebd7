package main

import (
	"context"
	"errors"

	"github.com/dixieflatline76/Backdrop/config"
	"github.com/dixieflatline76/Backdrop/pkg/wallpaper"
	"github.com/dixieflatline76/Backdrop/util"
	"github.com/dixieflatline76/Backdrop/util/log"
	"github.com/spf13/cobra"
)

func newDaemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run now and then on the configured schedule",
		Long: `Runs once immediately and then on the cron schedule from the settings file
(default "5 0 * * *", five past midnight). Changes to the settings file are picked up
without a restart. Only one daemon may run at a time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig()
			if err != nil {
				return err
			}

			acquired, err := acquireLock()
			if err != nil {
				return err
			}
			if !acquired {
				return errors.New("another " + config.AppName + " daemon is already running")
			}
			defer releaseLock()

			log.Printf("%s %s daemon starting", config.AppName, config.AppVersion)
			if cfg.CheckUpdates {
				go logUpdate(cmd.Context())
			}
			s := wallpaper.NewScheduler(path, cfg, config.Load, wallpaper.RunOnce)
			return s.Start(cmd.Context())
		},
	}
}

// logUpdate reports a newer release in the log; failures are only noted.
func logUpdate(ctx context.Context) {
	result, err := util.CheckForUpdates(ctx, nil)
	if err != nil {
		log.Printf("Update check failed: %v", err)
		return
	}
	if result.UpdateAvailable {
		log.Printf("Update available: %s -> %s (%s)", result.CurrentVersion, result.LatestVersion, result.ReleaseURL)
	}
}
