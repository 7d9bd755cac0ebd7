package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dixieflatline76/Backdrop/pkg/wallpaper"
	"github.com/spf13/cobra"
)

func newMarketsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "markets",
		Short: "List the configured markets in the order they are tried",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			opts, err := wallpaper.OptionsFromConfig(cfg)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tID\tNAME")
			for i, m := range opts.Catalog.Markets() {
				fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, m.ID, m.DisplayName)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if opts.FirstMarketOnly {
				fmt.Fprintln(cmd.OutOrStdout(), "Only the first market is used; its image is installed.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "All markets are archived; nothing is installed.")
			}
			return nil
		},
	}
}
