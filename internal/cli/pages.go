package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ledgerline/mfin/internal/datatable"
	"github.com/ledgerline/mfin/internal/pagination"
	"github.com/ledgerline/mfin/internal/ui/styles"
	"github.com/ledgerline/mfin/internal/util"
)

func newPagesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages <total-records>",
		Short: "Show the pagination footer for a record count",
		Long: `Print the pagination footer a table shows for a number of records:
the "Showing x to y of z entries" summary, the rows-per-page options and
the page buttons with ellipsis collapsing.

Examples:
  mfin pages 47
  mfin pages 1000 --page 50 --page-size 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := strconv.Atoi(args[0])
			if err != nil || total < 0 {
				return util.NewError("Invalid record count '" + args[0] + "'").
					WithMessage("The count must be a whole number of zero or more").
					WithSuggestion("mfin pages 47")
			}

			page, _ := cmd.Flags().GetInt("page")
			size, _ := cmd.Flags().GetInt("page-size")
			if size <= 0 {
				size = a.cfg.Table.PageSize
			}
			page = pagination.Clamp(page, pagination.TotalPages(total, size))

			info := pagination.New(page, size, total)
			out := cmd.OutOrStdout()
			if !info.Visible() {
				fmt.Fprintln(out, styles.MutedMsg(datatable.EmptyMessage))
				return nil
			}
			fmt.Fprintln(out, info.Render(pagination.DefaultPageSizes))
			return nil
		},
	}

	cmd.Flags().IntP("page", "p", 1, "Current page")
	cmd.Flags().IntP("page-size", "n", 0, "Rows per page (default: table.page_size)")

	return cmd
}
