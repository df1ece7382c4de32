// Package table renders a datatable.Table. It supports an interactive TUI
// (search, sort, pagination, CSV export, clipboard yank), plain text tables,
// JSON output, CSV output and raw tab-separated output.
//
// Every list screen of mfin goes through DisplayResults.
package table

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/ledgerline/mfin/internal/datatable"
	"github.com/ledgerline/mfin/internal/ui/styles"
)

// Loader fetches the records of a table.
type Loader func(ctx context.Context) ([]datatable.Record, error)

// DisplayOptions controls how results are rendered.
type DisplayOptions struct {
	// JSON outputs the current page as a JSON array of objects.
	JSON bool
	// Raw outputs the current page as tab-separated values (for piping).
	Raw bool
	// CSV outputs the whole filtered set in export format.
	CSV bool
	// NoPager forces plain table output even on a TTY.
	NoPager bool
	// ExportDir is where the TUI writes CSV exports.
	ExportDir string
	// Load, when set, fetches records before display. In the TUI this
	// happens behind a spinner.
	Load Loader
	// Page, when above 1, is opened once records are in place.
	Page int
	// Out receives non-interactive output. Defaults to os.Stdout.
	Out io.Writer
}

func (o DisplayOptions) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return os.Stdout
}

// DisplayResults picks the right output mode based on options and
// environment, then renders the table.
func DisplayResults(ctx context.Context, t *datatable.Table, opts DisplayOptions) error {
	if Interactive(opts) {
		return RunTableTUI(ctx, t, opts)
	}

	if opts.Load != nil {
		records, err := opts.Load(ctx)
		if err != nil {
			return err
		}
		t.SetData(records)
	}
	if opts.Page > 1 {
		t.GoToPage(opts.Page)
	}

	return PrintTable(t, opts)
}

// Interactive reports whether DisplayResults would run the TUI for opts.
func Interactive(opts DisplayOptions) bool {
	return !opts.Raw && !opts.JSON && !opts.CSV && !opts.NoPager &&
		opts.Out == nil && term.IsTerminal(int(os.Stdout.Fd()))
}

// PrintTable writes the table in one of the non-interactive formats.
func PrintTable(t *datatable.Table, opts DisplayOptions) error {
	w := opts.out()

	if opts.CSV {
		if err := t.Export(w); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	}

	v := t.View()

	switch {
	case opts.Raw:
		PrintRaw(w, v.Cells)
	case opts.JSON:
		return PrintJSONResults(w, v.Columns, v.Rows)
	default:
		PrintPlainTable(w, datatable.Labels(v.Columns), v.Cells)
		fmt.Fprintln(w)
		if v.Empty {
			fmt.Fprintln(w, styles.MutedMsg(datatable.EmptyMessage))
		} else {
			fmt.Fprintln(w, styles.MutedMsg(v.Pagination.Summary()))
		}
	}
	return nil
}
