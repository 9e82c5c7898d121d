package commands

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tx2actual/internal/config"
	"github.com/cleared-dev/tx2actual/internal/dialect"
	"github.com/cleared-dev/tx2actual/internal/emit"
	"github.com/cleared-dev/tx2actual/internal/loader"
	"github.com/cleared-dev/tx2actual/internal/normalize"
)

const flagDialect = "dialect"

func newConvertCommand() *cobra.Command {
	var dialectName string

	cmd := &cobra.Command{
		Use:   "convert --dialect <name> <file>",
		Short: "Convert an export into Actual Budget CSV",
		Long: "Convert an export into Actual Budget CSV.\n\n" +
			"Use a source subcommand (ca, paypal) or name any dialect with --dialect.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dialectName == "" {
				return fmt.Errorf("--%s is required without a source subcommand", flagDialect)
			}
			return runConvert(cmd, dialectName, args[0])
		},
	}

	cmd.Flags().StringVar(&dialectName, flagDialect, "", "dialect name (see 'dialects show')")

	pf := cmd.PersistentFlags()
	pf.String(config.KeyCutoff, "", "only keep transactions dated strictly before YYYY-MM-DD")
	pf.String(config.KeyOutputDir, config.Default().OutputDir, "directory for the output file")
	pf.Bool(config.KeyRemoveOtherCurrencies, config.Default().RemoveOtherCurrencies, "drop rows whose currency predicate does not match")

	cmd.AddCommand(newSourceCommand("ca", "Convert a Crédit Agricole CSV statement"))
	cmd.AddCommand(newSourceCommand("paypal", "Convert a PayPal activity download (TSV)"))

	return cmd
}

func newSourceCommand(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, name, args[0])
		},
	}
}

func runConvert(cmd *cobra.Command, name, path string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	d, err := e.dialect(name)
	if err != nil {
		return err
	}

	cutoff, err := normalize.ParseCutoff(e.settings.Cutoff)
	if err != nil {
		return err
	}
	opts := normalize.Options{Cutoff: cutoff}
	if e.settings.RemoveOtherCurrencies {
		for _, p := range d.Filters {
			if p.Toggle == dialect.ToggleRemoveOtherCurrencies {
				e.logger.Info("removing rows with other currencies", "column", p.Column, "keep", strings.Join(p.OneOf, ","))
			}
		}
	} else {
		opts.Disabled = map[string]bool{dialect.ToggleRemoveOtherCurrencies: true}
	}

	rows, err := loader.Load(path, d)
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		e.logger.Debug("loaded", "file", path, "rows", len(rows), "columns", sortedKeys(rows[0].Fields))
	}

	txns, stats, err := normalize.New(d, opts, e.logger).Run(rows)
	if err != nil {
		return fmt.Errorf("converting %s: %w", path, err)
	}
	e.logger.Debug("normalized", "loaded", stats.Loaded, "filtered", stats.Filtered, "cutoff", stats.CutOff, "kept", stats.Kept)

	outPath := filepath.Join(e.settings.OutputDir, d.Output.File)
	if err := emit.WriteFile(outPath, txns, emit.Options{OmitNotes: d.Output.OmitNotes}); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	sum := emit.Summarize(txns)
	fmt.Fprintf(out, "%d operations\n", sum.Count)
	if d.Output.ReportTotal {
		fmt.Fprintf(out, "Total amount: %s\n", sum.Total.StringFixed(2))
	}
	fmt.Fprintf(out, "Written to %s\n", outPath)
	return nil
}

// sortedKeys returns the keys of m in sorted order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
