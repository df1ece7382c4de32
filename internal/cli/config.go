package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledgerline/mfin/internal/config"
	"github.com/ledgerline/mfin/internal/ui/styles"
	"github.com/ledgerline/mfin/internal/util"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config <key> [value]",
		Short: "Get and set mfin options",
		Long: `Get and set mfin configuration options.

Options:
` + config.GenerateHelpText() + `
Examples:
  mfin config table.page_size          # Get value
  mfin config table.page_size 25       # Set value
  mfin config source.kind postgres     # Read screens from PostgreSQL
  mfin config --list                   # List all config`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return config.ListKeys(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd, a, args)
		},
	}

	cmd.Flags().BoolP("list", "l", false, "List all configuration")
	cmd.Flags().Bool("path", false, "Print the config file path")

	return cmd
}

func runConfig(cmd *cobra.Command, a *app, args []string) error {
	out := cmd.OutOrStdout()

	if showPath, _ := cmd.Flags().GetBool("path"); showPath {
		path := a.cfgPath
		if path == "" {
			var err error
			if path, err = config.Path(); err != nil {
				return err
			}
		}
		fmt.Fprintln(out, path)
		return nil
	}

	if listAll, _ := cmd.Flags().GetBool("list"); listAll {
		for _, key := range config.ListKeys() {
			value, _ := a.cfg.GetValue(key)
			fmt.Fprintf(out, "%s=%s\n", key, value)
		}
		return nil
	}

	if len(args) > 2 {
		return util.TooManyArgumentsError(2, len(args))
	}
	if len(args) == 0 {
		return util.MissingArgumentError("key", "mfin config table.page_size")
	}

	key := strings.ToLower(args[0])

	if len(args) == 1 {
		value, ok := a.cfg.GetValue(key)
		if !ok {
			return util.NewError("Unknown config key '" + key + "'").
				WithSuggestion("mfin config --list").
				Wrap(util.ErrInvalidConfigKey)
		}
		fmt.Fprintln(out, value)
		return nil
	}

	if err := a.cfg.SetValue(key, args[1]); err != nil {
		return err
	}
	if err := a.save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintln(out, styles.SuccessMsg(fmt.Sprintf("%s set to %s", key, args[1])))
	return nil
}
