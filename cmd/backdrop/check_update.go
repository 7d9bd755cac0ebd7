package main

import (
	"fmt"

	"github.com/dixieflatline76/Backdrop/util"
	"github.com/spf13/cobra"
)

func newCheckUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-update",
		Short: "Check GitHub for a newer release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := util.CheckForUpdates(cmd.Context(), nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !result.UpdateAvailable {
				fmt.Fprintf(out, "You are up to date (%s, latest %s).\n", result.CurrentVersion, result.LatestVersion)
				return nil
			}
			fmt.Fprintf(out, "Update available: %s -> %s\n%s\n", result.CurrentVersion, result.LatestVersion, result.ReleaseURL)
			return nil
		},
	}
}
