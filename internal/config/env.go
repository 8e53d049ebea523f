package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment override, e.g.
// REDUCEBENCH_WORKERS or REDUCEBENCH_METRICS_FILE.
const EnvPrefix = "REDUCEBENCH"

// newViper returns a viper instance resolving keys from REDUCEBENCH_*
// variables. Dashes in flag names map to underscores.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// splitList flattens comma-separated entries. Values coming from the
// environment or a config file arrive as a single "a,b" string.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
