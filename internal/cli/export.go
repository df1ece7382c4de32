package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ledgerline/mfin/internal/screens"
	"github.com/ledgerline/mfin/internal/ui"
	"github.com/ledgerline/mfin/internal/ui/styles"
	"github.com/ledgerline/mfin/internal/util"
)

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <screen>",
		Short: "Export the matching records of a screen to a CSV file",
		Long: `Export every record of a screen that matches --search, in --sort
order, to <Title>_<yyyy-mm-dd>.csv. All pages are exported, not just the
first one.

Examples:
  mfin export villages
  mfin export overdue --search npa --dir ./reports
  mfin export clients --filter branch=Rampur
  mfin export repayments --db postgres://user@host/loans`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScreens,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, a, args[0])
		},
	}

	addTableFlags(cmd)
	addSourceFlags(cmd)
	cmd.Flags().StringP("dir", "o", "", "Directory to write to (default: table.export_dir)")

	return cmd
}

func runExport(cmd *cobra.Command, a *app, name string) error {
	screen, err := screens.Lookup(name)
	if err != nil {
		return err
	}
	src, err := openSource(cmd, a.cfg, screen)
	if err != nil {
		return err
	}
	t, err := buildTable(cmd, a, screen)
	if err != nil {
		return err
	}

	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = a.cfg.ExportDir()
	} else {
		dir = util.ExpandHome(dir)
	}
	if err := util.EnsureDir(dir); err != nil {
		return util.NewError("Cannot create export directory").WithContext(dir).Wrap(err)
	}

	sp := ui.NewSpinner(cmd.ErrOrStderr(), "Loading "+screen.Title+" from "+src.Describe())
	sp.Start()
	records, err := logLoad(a.log, screen, src)(cmd.Context())
	sp.Stop()
	if err != nil {
		return err
	}
	t.SetData(records)

	path, err := t.ExportTo(dir, a.now())
	if err != nil {
		return err
	}
	sum, err := util.HashFile(path)
	if err != nil {
		return err
	}

	count := len(t.Process().Filtered)
	a.log.Info("export written", zap.String("path", path), zap.Int("records", count))

	out := cmd.OutOrStdout()
	if count == 0 {
		fmt.Fprintln(out, styles.WarningMsg("No records matched; the file holds the header only"))
	}
	fmt.Fprintln(out, styles.SuccessMsg(fmt.Sprintf("Exported %d records to %s", count, path)))
	fmt.Fprintln(out, styles.MutedMsg("sha256 "+sum))
	return nil
}
