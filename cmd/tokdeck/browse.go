package main

import (
	"github.com/spf13/cobra"

	"github.com/tokdeck/tokdeck/internal/session"
	"github.com/tokdeck/tokdeck/internal/tui"
)

func newBrowseCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive catalog browser",
		Long: `Open the full-screen catalog browser.

Without a saved session the browser starts on a sign-in form; a successful
sign-in is persisted so later invocations go straight to the catalog.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildEnv(flags)
			if err != nil {
				return err
			}
			defer env.Close()

			env.logger.LogStartup(env.cfg.Server, env.hasSession())

			callbacks := tui.Callbacks{
				OnLogin: func(token string) error {
					env.client.SetToken(token)
					return session.Save(env.cfg.SessionFile, token)
				},
				OnLogout: func() error {
					env.client.SetToken("")
					return session.Clear(env.cfg.SessionFile)
				},
			}
			return tui.Run(env.store, env.client, env.hasSession(), callbacks, env.logger)
		},
	}
}
