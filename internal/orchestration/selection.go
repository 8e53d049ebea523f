package orchestration

import (
	"strings"

	"github.com/agbru/reducebench/internal/harness"
	"github.com/agbru/reducebench/internal/reduce"
)

// SelectStrategies resolves strategy names from configuration. "all" or an
// empty list selects every strategy in canonical order. Duplicates are
// dropped, keeping the first occurrence.
func SelectStrategies(names []string) ([]reduce.Strategy, error) {
	if isAll(names) {
		return reduce.All(), nil
	}
	out := make([]reduce.Strategy, 0, len(names))
	seen := map[reduce.Strategy]bool{}
	for _, name := range names {
		s, err := reduce.ParseStrategy(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out, nil
}

// SelectBackends resolves backend names the same way.
func SelectBackends(names []string) ([]harness.Backend, error) {
	if isAll(names) {
		return harness.AllBackends(), nil
	}
	out := make([]harness.Backend, 0, len(names))
	seen := map[harness.Backend]bool{}
	for _, name := range names {
		b, err := harness.ParseBackend(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	return out, nil
}

func isAll(names []string) bool {
	return len(names) == 0 || (len(names) == 1 && strings.EqualFold(strings.TrimSpace(names[0]), "all"))
}
