package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/tx2actual/internal/buildinfo"
	"github.com/cleared-dev/tx2actual/internal/config"
	"github.com/cleared-dev/tx2actual/internal/dialect"
	"github.com/cleared-dev/tx2actual/internal/logging"
)

const flagSettings = "settings"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tx2actual",
		Short:   "Convert bank and PayPal exports into Actual Budget CSV",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.String(config.KeyLogLevel, config.Default().LogLevel, "log level (debug, info, warn, error)")
	pf.String(config.KeyDialects, "", "YAML dialect file overlaid on the built-in dialects")
	pf.String(flagSettings, "", "settings file (yaml, toml or json)")

	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newDialectsCommand())

	return rootCmd
}

// env is what every command needs once flags are parsed.
type env struct {
	settings config.Settings
	logger   *log.Logger
	dialects *dialect.Registry
}

func setup(cmd *cobra.Command) (*env, error) {
	settingsFile, _ := cmd.Flags().GetString(flagSettings)
	if settingsFile == "" {
		settingsFile = os.Getenv(config.EnvPrefix + "_SETTINGS")
	}

	settings, err := config.Build(settingsFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), settings.LogLevel)
	if err != nil {
		return nil, err
	}

	reg, err := dialect.LoadRegistry(settings.DialectsFile)
	if err != nil {
		return nil, fmt.Errorf("loading dialects: %w", err)
	}
	if settings.DialectsFile != "" {
		logger.Debug("dialects loaded", "file", settings.DialectsFile, "names", reg.Names())
	}

	return &env{settings: settings, logger: logger, dialects: reg}, nil
}

func (e *env) dialect(name string) (dialect.Dialect, error) {
	d, ok := e.dialects.Get(name)
	if !ok {
		return dialect.Dialect{}, fmt.Errorf("unknown dialect %q (known: %v)", name, e.dialects.Names())
	}
	return d, nil
}
