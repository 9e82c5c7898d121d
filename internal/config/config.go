// Package config resolves runtime settings from flags, the environment and an
// optional settings file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. TX2ACTUAL_LOG_LEVEL.
const EnvPrefix = "TX2ACTUAL"

// Setting keys. They match the flag names.
const (
	KeyLogLevel              = "log-level"
	KeyOutputDir             = "output-dir"
	KeyDialects              = "dialects"
	KeyCutoff                = "cutoff"
	KeyRemoveOtherCurrencies = "remove-other-currencies"
)

// Settings are the resolved runtime settings.
type Settings struct {
	LogLevel              string
	OutputDir             string
	DialectsFile          string
	Cutoff                string
	RemoveOtherCurrencies bool
}

// Default returns the settings used when nothing overrides them.
func Default() Settings {
	return Settings{
		LogLevel:              "info",
		OutputDir:             ".",
		RemoveOtherCurrencies: true,
	}
}

// Build layers flags over environment over settings file over defaults.
// settingsFile may be empty; flags may be nil.
func Build(settingsFile string, flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()

	def := Default()
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyOutputDir, def.OutputDir)
	v.SetDefault(KeyRemoveOtherCurrencies, def.RemoveOtherCurrencies)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if settingsFile != "" {
		v.SetConfigFile(settingsFile)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("reading settings %s: %w", settingsFile, err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Settings{}, fmt.Errorf("binding flags: %w", err)
		}
	}

	return Settings{
		LogLevel:              v.GetString(KeyLogLevel),
		OutputDir:             v.GetString(KeyOutputDir),
		DialectsFile:          v.GetString(KeyDialects),
		Cutoff:                v.GetString(KeyCutoff),
		RemoveOtherCurrencies: v.GetBool(KeyRemoveOtherCurrencies),
	}, nil
}
