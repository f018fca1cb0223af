package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tokdeck/tokdeck/internal/session"
)

type loginFlags struct {
	username string
	password string
}

func newLoginCmd(flags *rootFlags) *cobra.Command {
	creds := &loginFlags{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and save the session",
		Long: `Exchange credentials for a bearer token and save it to the session
file. Credentials not given as flags are prompted for interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildEnv(flags)
			if err != nil {
				return err
			}
			defer env.Close()

			if creds.username == "" || creds.password == "" {
				if err := promptCredentials(creds); err != nil {
					return err
				}
			}

			token, err := env.client.Login(cmd.Context(), creds.username, creds.password)
			if err != nil {
				return err
			}
			if err := session.Save(env.cfg.SessionFile, token); err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Signed in as %s; session saved to %s\n", creds.username, env.cfg.SessionFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&creds.username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&creds.password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func promptCredentials(creds *loginFlags) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&creds.username).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("username is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&creds.password).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("password is required")
					}
					return nil
				}),
		),
	)
	return form.Run()
}
