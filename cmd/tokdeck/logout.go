package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tokdeck/tokdeck/internal/config"
	"github.com/tokdeck/tokdeck/internal/session"
)

func newLogoutCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.config
			if path == "" {
				path = config.DefaultConfigPath()
			}
			cfg, err := config.LoadConfig(path)
			if err != nil {
				return err
			}
			if err := session.Clear(cfg.SessionFile); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "Session cleared")
			return nil
		},
	}
}
