package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ledgerline/mfin/internal/screens"
	"github.com/ledgerline/mfin/internal/ui/styles"
	"github.com/ledgerline/mfin/internal/ui/table"
)

func newScreensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screens",
		Short: "List the available screens",
		Long: `List the back-office screens that can be viewed or exported.

Examples:
  mfin screens
  mfin screens --group report
  mfin screens --columns overdue`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if name, _ := cmd.Flags().GetString("columns"); name != "" {
				screen, err := screens.Lookup(name)
				if err != nil {
					return err
				}
				rows := make([][]string, len(screen.Columns))
				for i, c := range screen.Columns {
					sortable := ""
					if c.Sortable {
						sortable = "yes"
					}
					if c.Key == screen.DefaultSort {
						sortable += " (default)"
					}
					filter := ""
					if c.Key == screen.FilterSlot {
						filter = "yes"
					}
					rows[i] = []string{c.Key, c.Label, sortable, filter}
				}
				fmt.Fprintln(out, styles.SectionHeader(screen.Title+" ("+screen.Name+")"))
				table.PrintPlainTable(out, []string{"Key", "Label", "Sortable", "Filter"}, rows)
				return nil
			}

			group, _ := cmd.Flags().GetString("group")
			var rows [][]string
			for _, s := range screens.All() {
				if group != "" && string(s.Group) != group {
					continue
				}
				rows = append(rows, []string{s.Name, s.Title, string(s.Group), strconv.Itoa(len(s.Sample()))})
			}
			if len(rows) == 0 {
				return fmt.Errorf("no screens in group %q (want master, transaction or report)", group)
			}
			table.PrintPlainTable(out, []string{"Screen", "Title", "Group", "Sample"}, rows)
			return nil
		},
	}

	cmd.Flags().StringP("group", "g", "", "Only list screens of this group (master, transaction, report)")
	cmd.Flags().String("columns", "", "List the columns of a screen instead")
	_ = cmd.RegisterFlagCompletionFunc("columns", completeScreens)

	return cmd
}
