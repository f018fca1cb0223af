package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newImportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Bulk-import tokens from a JSON document",
		Long: `Parse a JSON document and submit it for bulk import. The service
answers with how many tokens were created and updated and which rows were
rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildEnv(flags)
			if err != nil {
				return err
			}
			defer env.Close()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			var payload any
			if err := json.Unmarshal(data, &payload); err != nil {
				return fmt.Errorf("parse import file: %w", err)
			}

			result, err := env.store.Import(cmd.Context(), payload)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Created: %d, Updated: %d, Errors: %d\n",
				result.Created, result.Updated, len(result.Errors))
			for _, e := range result.Errors {
				fmt.Fprintf(os.Stdout, "  - %s\n", e)
			}
			return nil
		},
	}
}
