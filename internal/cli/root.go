package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ledgerline/mfin/internal/config"
	"github.com/ledgerline/mfin/internal/logging"
	"github.com/ledgerline/mfin/internal/ui/styles"
	"github.com/ledgerline/mfin/internal/util"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

// app carries what every command needs once the root pre-run has loaded it.
type app struct {
	cfgPath string
	cfg     *config.Config
	log     *zap.Logger
	now     func() time.Time
}

// save writes the config back to where it was loaded from.
func (a *app) save() error {
	if a.cfgPath != "" {
		return a.cfg.SaveTo(a.cfgPath)
	}
	return a.cfg.Save()
}

func newRootCmd() *cobra.Command {
	a := &app{now: time.Now, log: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "mfin",
		Short: "Browse and export microfinance back-office lists",
		Long: `mfin shows the list screens of a microfinance back office (masters,
transactions and reports) as searchable, sortable, paginated tables and
exports them to CSV.

Records come from the built-in sample data, a JSON/YAML/CSV file, or a
PostgreSQL table:

  mfin view villages
  mfin view overdue --search npa --sort dpd --desc
  mfin view clients --file ./exports/clients.csv
  mfin export repayments --db postgres://user@host/loans`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&a.cfgPath, "config", "", "Config file (default $XDG_CONFIG_HOME/mfin/config.toml)")

	rootCmd.SetVersionTemplate(fmt.Sprintf("mfin version %s\n  commit: %s\n  built:  %s\n", Version, CommitSHA, BuildDate))

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		noColor, _ := cmd.Flags().GetBool("no-color")
		if noColor {
			styles.SetNoColor(true)
		}

		var err error
		if a.cfgPath != "" {
			a.cfg, err = config.LoadFrom(a.cfgPath)
		} else {
			a.cfg, err = config.Load()
		}
		if err != nil {
			return err
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		log, err := logging.New(a.cfg.Log, verbose)
		if err != nil {
			return util.NewError("Invalid logging configuration").
				WithSuggestion("mfin config log.level warn").
				Wrap(err)
		}
		a.log = log
		a.log.Debug("config loaded",
			zap.String("source", a.cfg.Source.Kind),
			zap.Int("page_size", a.cfg.Table.PageSize))
		return nil
	}

	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = a.log.Sync()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newScreensCmd(),
		newViewCmd(a),
		newExportCmd(a),
		newPagesCmd(a),
		newConfigCmd(a),
		newCompletionCmd(rootCmd),
	)

	return rootCmd
}

// Execute runs the CLI and prints errors to stderr.
func Execute() error {
	return execute(newRootCmd(), os.Stderr)
}

func execute(rootCmd *cobra.Command, stderr io.Writer) error {
	if err := rootCmd.Execute(); err != nil {
		var appErr *util.AppError
		if errors.As(err, &appErr) {
			fmt.Fprintln(stderr, formatAppError(appErr))
		} else {
			fmt.Fprintln(stderr, styles.ErrorMsg(err.Error()))
		}
		return err
	}
	return nil
}

// formatAppError colors the title line of a structured error.
func formatAppError(e *util.AppError) string {
	text := e.Format()
	title := "Error: " + e.Title
	return styles.ErrorMsg(e.Title) + text[len(title):]
}

func newCompletionCmd(rootCmd *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for mfin.

To load completions:

Bash:
  $ source <(mfin completion bash)

Zsh:
  $ mfin completion zsh > "${fpath[1]}/_mfin"

Fish:
  $ mfin completion fish | source

PowerShell:
  PS> mfin completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(out)
			case "zsh":
				return rootCmd.GenZshCompletion(out)
			case "fish":
				return rootCmd.GenFishCompletion(out, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mfin version %s\n", Version)
			fmt.Fprintf(out, "  commit: %s\n", CommitSHA)
			fmt.Fprintf(out, "  built:  %s\n", BuildDate)
		},
	}
}
