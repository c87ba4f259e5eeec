package valuetype

import (
	"strings"

	"github.com/dshills/tunable/internal/input/key"
)

// CompleteNone proposes nothing.
func CompleteNone(string, []string) []string {
	return []string{}
}

// CompleteBoolean proposes "true" and "false" filtered by prefix.
func CompleteBoolean(partial string, _ []string) []string {
	return filterPrefix([]string{"true", "false"}, partial)
}

// CompleteOptions proposes the declared option names in declaration order,
// filtered by a case-insensitive prefix.
func CompleteOptions(partial string, options []string) []string {
	return filterPrefix(options, partial)
}

// CompleteKey proposes known key names filtered by prefix, sorted.
func CompleteKey(partial string, _ []string) []string {
	return filterPrefix(key.Names(), partial)
}

func filterPrefix(candidates []string, partial string) []string {
	p := strings.ToLower(partial)
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), p) {
			out = append(out, c)
		}
	}
	return out
}
