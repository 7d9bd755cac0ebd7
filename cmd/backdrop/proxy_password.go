package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/dixieflatline76/Backdrop/pkg/wallpaper"
	"github.com/spf13/cobra"
)

func newProxyPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "proxy-password <user>",
		Short: "Store the proxy password for <user> in the OS keyring",
		Long: `Reads the password from standard input and stores it in the OS keyring. It is
used whenever the settings name the same proxy_user.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("reading password: %w", err)
			}
			password := strings.TrimRight(line, "\r\n")
			if password == "" {
				return errors.New("empty password")
			}

			if err := wallpaper.SetProxyPassword(args[0], password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved proxy password for %s.\n", args[0])
			return nil
		},
	}
}
