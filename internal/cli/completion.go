package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agbru/reducebench/internal/harness"
	"github.com/agbru/reducebench/internal/reduce"
	"github.com/agbru/reducebench/internal/workload"
)

// flagValues lists the completion candidates of enumerated flags. List flags
// complete each comma-separated element.
func flagValues() map[string][]string {
	strategies := []string{"all"}
	for _, s := range reduce.All() {
		strategies = append(strategies, s.String())
	}
	backends := []string{"all"}
	for _, b := range harness.AllBackends() {
		backends = append(backends, b.String())
	}
	return map[string][]string{
		"workload":   workload.Names(),
		"strategies": strategies,
		"backends":   backends,
		"transport":  {"local", "exec"},
		"format":     {"table", "json", "yaml"},
		"log-level":  {"debug", "info", "warn", "error"},
	}
}

var listFlags = map[string]bool{"strategies": true, "backends": true}

// RegisterCompletions attaches value completion to the enumerated flags of
// cmd. Flags that cmd does not define are ignored.
func RegisterCompletions(cmd *cobra.Command) error {
	for name, values := range flagValues() {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		fn := completeValues(values, listFlags[name])
		if err := cmd.RegisterFlagCompletionFunc(name, fn); err != nil {
			return err
		}
	}
	return nil
}

func completeValues(values []string, list bool) cobra.CompletionFunc {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		prefix, current := "", toComplete
		if list {
			if i := strings.LastIndex(toComplete, ","); i >= 0 {
				prefix, current = toComplete[:i+1], toComplete[i+1:]
			}
		}
		var out []cobra.Completion
		for _, v := range values {
			if strings.HasPrefix(v, current) {
				out = append(out, prefix+v)
			}
		}
		directive := cobra.ShellCompDirectiveNoFileComp
		if list {
			directive |= cobra.ShellCompDirectiveNoSpace
		}
		return out, directive
	}
}
