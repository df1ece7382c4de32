package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/ledgerline/mfin/internal/config"
	"github.com/ledgerline/mfin/internal/datatable"
	"github.com/ledgerline/mfin/internal/logging"
	"github.com/ledgerline/mfin/internal/screens"
	"github.com/ledgerline/mfin/internal/source"
	"github.com/ledgerline/mfin/internal/ui/table"
	"github.com/ledgerline/mfin/internal/util"
)

func newViewCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <screen>",
		Short: "Show a screen as a searchable, sortable, paginated table",
		Long: `Show the records of a screen.

On a terminal this opens the interactive table: / searches, s sorts by
the selected column, f steps through the values of the screen's filter
column (or the selected one), n/p page, +/- change rows per page, e exports CSV,
y/Y copy a cell/row, and J/R/P/C quit and print JSON, raw, plain or CSV.
When piped, or with --no-pager, the current page is printed as text.

Examples:
  mfin view villages
  mfin view clients --search rampur --page-size 25
  mfin view overdue --sort dpd --desc --no-pager
  mfin view villages --filter area_code=AR007
  mfin view loan-applications --json
  mfin view areas --file ./areas.yaml`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScreens,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, a, args[0])
		},
	}

	addTableFlags(cmd)
	addSourceFlags(cmd)
	cmd.Flags().Int("page", 1, "Page to open")
	cmd.Flags().Bool("json", false, "Print the current page as JSON")
	cmd.Flags().Bool("raw", false, "Print the current page as tab-separated values")
	cmd.Flags().Bool("csv", false, "Print all matching records as CSV")
	cmd.Flags().Bool("no-pager", false, "Print a plain table instead of the interactive view")

	return cmd
}

func addTableFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("search", "s", "", "Only show records containing this text")
	cmd.Flags().String("filter", "", "Only show records whose column equals a value (key=value)")
	cmd.Flags().String("sort", "", "Sort by column key (default: the screen's default sort)")
	cmd.Flags().Bool("desc", false, "Sort descending")
	cmd.Flags().IntP("page-size", "n", 0, "Rows per page (default: table.page_size)")
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("file", "", "Read records from a .json, .yaml or .csv file (or a directory of them)")
	cmd.Flags().String("db", "", "Read records from this PostgreSQL URL")
	cmd.Flags().String("table", "", "PostgreSQL table to read (default: screen name)")
}

func completeScreens(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return screens.Names(), cobra.ShellCompDirectiveNoFileComp
}

func runView(cmd *cobra.Command, a *app, name string) error {
	screen, err := screens.Lookup(name)
	if err != nil {
		return err
	}

	src, err := openSource(cmd, a.cfg, screen)
	if err != nil {
		return err
	}

	page, _ := cmd.Flags().GetInt("page")
	jsonOut, _ := cmd.Flags().GetBool("json")
	raw, _ := cmd.Flags().GetBool("raw")
	csvOut, _ := cmd.Flags().GetBool("csv")
	noPager, _ := cmd.Flags().GetBool("no-pager")

	opts := table.DisplayOptions{
		JSON:      jsonOut,
		Raw:       raw,
		CSV:       csvOut,
		NoPager:   noPager,
		ExportDir: a.cfg.ExportDir(),
		Page:      page,
	}
	if out := cmd.OutOrStdout(); out != io.Writer(os.Stdout) {
		opts.Out = out
	}
	if table.Interactive(opts) {
		a.log = logging.ForScreen(a.log, a.cfg.Log)
	}

	t, err := buildTable(cmd, a, screen)
	if err != nil {
		return err
	}
	opts.Load = logLoad(a.log, screen, src)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return table.DisplayResults(ctx, t, opts)
}

// openSource folds the source flags into a copy of cfg and opens the
// screen's record source.
func openSource(cmd *cobra.Command, cfg *config.Config, screen screens.Screen) (source.Source, error) {
	eff := *cfg
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		eff.Source.Kind = source.KindFile
		eff.Source.Path = file
	}
	if url, _ := cmd.Flags().GetString("db"); url != "" {
		eff.Source.Kind = source.KindPostgres
		eff.Source.URL = url
	}
	if tbl, _ := cmd.Flags().GetString("table"); tbl != "" {
		eff.Source.Table = tbl
	}
	return source.Open(&eff, screen)
}

// buildTable creates the screen's table and applies the page size, search
// and sort flags.
func buildTable(cmd *cobra.Command, a *app, screen screens.Screen) (*datatable.Table, error) {
	pageSize, _ := cmd.Flags().GetInt("page-size")
	if pageSize <= 0 {
		pageSize = a.cfg.Table.PageSize
	}

	opts := []datatable.Option{datatable.WithPageSize(pageSize)}
	if a.cfg.Table.Locale != "" {
		tag, err := language.Parse(a.cfg.Table.Locale)
		if err != nil {
			return nil, util.NewError("Invalid locale '" + a.cfg.Table.Locale + "'").
				WithSuggestion("mfin config table.locale en-IN").
				Wrap(err)
		}
		opts = append(opts, datatable.WithLocale(tag))
	}
	opts = append(opts,
		datatable.WithOnAdd(func() {
			a.log.Info("add requested", zap.String("screen", screen.Name))
		}),
		datatable.WithOnRowClick(func(r datatable.Record) {
			logRowSelected(a.log, screen, r)
		}),
	)

	t := screen.NewTable(a.log, opts...)

	if filter, _ := cmd.Flags().GetString("filter"); filter != "" {
		if err := applyFilter(t, screen, filter); err != nil {
			return nil, err
		}
	}

	if term, _ := cmd.Flags().GetString("search"); term != "" {
		t.Search(term)
	}

	sortKey, _ := cmd.Flags().GetString("sort")
	if sortKey == "" {
		sortKey = screen.DefaultSort
	}
	if sortKey != "" {
		if !t.SortBy(sortKey) {
			return nil, util.NewError("Cannot sort by '" + sortKey + "'").
				WithMessage("The column does not exist on " + screen.Name + " or is not sortable").
				WithSuggestion("mfin screens --columns " + screen.Name)
		}
		if desc, _ := cmd.Flags().GetBool("desc"); desc {
			t.SortBy(sortKey)
		}
	}

	return t, nil
}

// applyFilter applies a key=value column filter. Screens with a filter slot
// only accept their slot column.
func applyFilter(t *datatable.Table, screen screens.Screen, filter string) error {
	field, value, ok := strings.Cut(filter, "=")
	field = strings.TrimSpace(field)
	if !ok || field == "" {
		return util.NewError("Invalid filter '" + filter + "'").
			WithMessage("Filters take the form column=value").
			WithSuggestion("mfin view " + screen.Name + " --filter " + filterExample(screen) + "=<value>")
	}
	if !t.FilterBy(field, strings.TrimSpace(value)) {
		return util.NewError("Cannot filter by '" + field + "'").
			WithMessage(screen.Name + " filters on " + filterExample(screen) + " only").
			WithSuggestion("mfin view " + screen.Name + " --filter " + filterExample(screen) + "=<value>")
	}
	return nil
}

func filterExample(screen screens.Screen) string {
	if screen.FilterSlot != "" {
		return screen.FilterSlot
	}
	return screen.Columns[0].Key
}

func logLoad(log *zap.Logger, screen screens.Screen, src source.Source) table.Loader {
	return func(ctx context.Context) ([]datatable.Record, error) {
		records, err := src.Load(ctx)
		if err != nil {
			log.Error("load failed", zap.String("screen", screen.Name), zap.String("source", src.Describe()), zap.Error(err))
			return nil, err
		}
		log.Debug("records loaded",
			zap.String("screen", screen.Name),
			zap.String("source", src.Describe()),
			zap.Int("count", len(records)))
		return records, nil
	}
}

// logRowSelected logs the selected record. Sample and most imported records
// carry a ULID "id" whose timestamp is the creation time.
func logRowSelected(log *zap.Logger, screen screens.Screen, r datatable.Record) {
	id := datatable.Stringify(r.Get("id"))
	if id == "" {
		log.Info("row selected", zap.String("screen", screen.Name))
		return
	}
	fields := []zap.Field{zap.String("screen", screen.Name), zap.String("id", util.ShortID(id))}
	if created, err := util.ParseULID(id); err == nil {
		fields = append(fields, zap.String("created", util.FormatDate(created)))
	}
	log.Info("row selected", fields...)
}
