package main

import (
	"github.com/dixieflatline76/Backdrop/pkg/wallpaper"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Fetch today's image once and install it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			return wallpaper.RunOnce(cmd.Context(), cfg)
		},
	}
}
