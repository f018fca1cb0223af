package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tokdeck/tokdeck/internal/catalog"
)

type listFlags struct {
	categories []string
	query      string
	page       int
	all        bool
	jsonOut    bool
}

func newListCmd(root *rootFlags) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tokens without the TUI",
		Long: `Fetch the catalog and print one page of it, applying the same
category and name filters the browser offers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildEnv(root)
			if err != nil {
				return err
			}
			defer env.Close()

			env.store.Load(cmd.Context())
			if err := env.store.LastError(); err != nil {
				return fmt.Errorf("%s", catalog.FriendlyMessage(err))
			}

			selected := map[string]bool{}
			for _, c := range flags.categories {
				selected[c] = true
			}
			filtered := catalog.Filter(env.store.Tokens(), selected, flags.query)

			if flags.jsonOut {
				return json.NewEncoder(os.Stdout).Encode(filtered)
			}

			items := filtered
			pageInfo := ""
			if !flags.all {
				page := catalog.Paginate(filtered, catalog.PageSize, flags.page)
				items = page.Items
				pageInfo = fmt.Sprintf("page %d/%d, ", page.Number, page.Count)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tVALUE\tCATEGORY\tDESCRIPTION")
			for _, tok := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tok.Name, tok.Value, tok.Category, tok.Description)
			}
			w.Flush()

			fmt.Fprintf(os.Stdout, "\n%s%d of %d tokens\n", pageInfo, len(items), len(filtered))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&flags.categories, "category", "c", nil, "only show these categories (repeatable)")
	cmd.Flags().StringVarP(&flags.query, "query", "q", "", "case-insensitive name substring")
	cmd.Flags().IntVar(&flags.page, "page", 1, "page to print")
	cmd.Flags().BoolVar(&flags.all, "all", false, "print every match instead of one page")
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "emit JSON instead of a table")
	return cmd
}
