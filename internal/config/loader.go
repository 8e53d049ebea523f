package config

import (
	"github.com/spf13/pflag"

	apperrors "github.com/agbru/reducebench/internal/errors"
)

// Load resolves the configuration from a parsed flag set, the environment
// and the optional config file, then applies adaptive defaults and
// validates the result.
func Load(flags *pflag.FlagSet) (AppConfig, error) {
	v := newViper()
	if err := v.BindPFlags(flags); err != nil {
		return AppConfig{}, apperrors.NewConfigError("binding flags: %v", err)
	}

	configPath := v.GetString("config")
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return AppConfig{}, apperrors.NewConfigError("reading config file %s: %v", configPath, err)
		}
	}

	cfg := AppConfig{
		Workload:    v.GetString("workload"),
		Size:        v.GetInt("size"),
		Workers:     v.GetInt("workers"),
		Strategies:  splitList(v.GetStringSlice("strategies")),
		Backends:    splitList(v.GetStringSlice("backends")),
		Timeout:     v.GetDuration("timeout"),
		Tolerance:   v.GetFloat64("tolerance"),
		Seed:        v.GetUint64("seed"),
		Repeat:      v.GetInt("repeat"),
		Transport:   v.GetString("transport"),
		Format:      v.GetString("format"),
		OutputFile:  v.GetString("output"),
		MetricsFile: v.GetString("metrics-file"),
		Trace:       v.GetBool("trace"),
		TUI:         v.GetBool("tui"),
		Quiet:       v.GetBool("quiet"),
		Verbose:     v.GetBool("verbose"),
		NoColor:     v.GetBool("no-color"),
		LogLevel:    v.GetString("log-level"),
		ConfigFile:  configPath,
	}

	cfg = ApplyAdaptiveDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}
