package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	config  string
	server  string
	logFile string
	verbose bool
	debug   bool
}

func main() {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "tokdeck",
		Short: "Terminal client for a design token service",
		Long: `Tokdeck is a terminal client for curating design tokens (colors,
spacing, fonts, shadows) held on a remote token service.

The browse command opens the interactive catalog; the rest are one-shot
commands for scripting.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "path to the config file")
	rootCmd.PersistentFlags().StringVar(&flags.server, "server", "", "token service URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "debug logging")

	// Add subcommands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newBrowseCmd(flags))
	rootCmd.AddCommand(newLoginCmd(flags))
	rootCmd.AddCommand(newLogoutCmd(flags))
	rootCmd.AddCommand(newListCmd(flags))
	rootCmd.AddCommand(newImportCmd(flags))

	// Custom help command
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "Usage:\n  %s <command> [arguments] [options]\n\n", cmd.Root().Name())
		fmt.Fprintf(os.Stdout, "Available Commands:\n")
		for _, subCmd := range cmd.Root().Commands() {
			if !subCmd.Hidden {
				fmt.Fprintf(os.Stdout, "  %-15s %s\n", subCmd.Name(), subCmd.Short)
			}
		}
		fmt.Fprintf(os.Stdout, "\nUse \"%s help <command>\" for more information about a command.\n", cmd.Root().Name())
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
