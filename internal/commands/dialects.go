package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/tx2actual/internal/dialect"
)

func newDialectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dialects",
		Short: "Inspect and export source dialects",
	}
	cmd.AddCommand(newDialectsInitCommand())
	cmd.AddCommand(newDialectsShowCommand())
	return cmd
}

func newDialectsInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write the built-in dialects to a YAML file for editing",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "dialects.yaml"
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runDialectsInit(cmd, absPath, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

func runDialectsInit(cmd *cobra.Command, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cat := dialect.Default()
	if err := dialect.Save(path, cat); err != nil {
		return fmt.Errorf("writing dialects: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d dialects to %s\n", len(cat.Dialects), path)
	return nil
}

func newDialectsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Print one dialect, or all of them, as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}

			var doc any
			if len(args) > 0 {
				d, err := e.dialect(args[0])
				if err != nil {
					return err
				}
				doc = d
			} else {
				cat := &dialect.Catalogue{}
				for _, name := range e.dialects.Names() {
					d, _ := e.dialects.Get(name)
					cat.Dialects = append(cat.Dialects, d)
				}
				doc = cat
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("encoding dialects: %w", err)
			}
			return enc.Close()
		},
	}
}
