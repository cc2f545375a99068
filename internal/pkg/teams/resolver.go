// Package teams turns free-text team references into canonical club names.
package teams

import (
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/gustavomchagas/chuta/internal/pkg/similarity"
)

// Resolver looks team names up in an alias table. It is immutable and safe
// for concurrent use.
type Resolver struct {
	table Table
}

// NewResolver builds a resolver over table. Aliases are normalized the same
// way lookups are, so tables loaded from files may use any case.
func NewResolver(table Table) *Resolver {
	normalized := make(Table, 0, len(table))
	for _, e := range table {
		aliases := make([]string, 0, len(e.Aliases))
		for _, a := range e.Aliases {
			if a = normalize(a); a != "" {
				aliases = append(aliases, a)
			}
		}
		normalized = append(normalized, Entry{Name: e.Name, Aliases: aliases})
	}
	return &Resolver{table: normalized}
}

var defaultResolver = sync.OnceValue(func() *Resolver {
	return NewResolver(DefaultTable)
})

// Default returns the resolver over DefaultTable.
func Default() *Resolver {
	return defaultResolver()
}

// Names returns the canonical names in table order.
func (r *Resolver) Names() []string {
	names := make([]string, len(r.table))
	for i, e := range r.table {
		names[i] = e.Name
	}
	return names
}

// ResolveExact returns the first entry having an alias that contains the
// text or is contained by it.
func (r *Resolver) ResolveExact(text string) (string, bool) {
	t := normalize(text)
	if t == "" {
		return "", false
	}
	for _, e := range r.table {
		for _, alias := range e.Aliases {
			if strings.Contains(t, alias) || strings.Contains(alias, t) {
				return e.Name, true
			}
		}
	}
	return "", false
}

// ResolveFuzzy returns the entry owning the alias most similar to text, when
// that similarity exceeds similarity.Threshold. Ties keep the first alias seen.
func (r *Resolver) ResolveFuzzy(text string) (string, bool) {
	t := normalize(text)
	if t == "" {
		return "", false
	}

	best := ""
	bestScore := similarity.Threshold
	for _, e := range r.table {
		for _, alias := range e.Aliases {
			if score := similarity.Score(t, alias); score > bestScore {
				bestScore = score
				best = e.Name
			}
		}
	}
	return best, best != ""
}

// Resolve tries the exact lookup first and falls back to the fuzzy one.
// exact reports which of the two produced the name.
func (r *Resolver) Resolve(text string) (name string, exact bool, ok bool) {
	if name, ok := r.ResolveExact(text); ok {
		return name, true, true
	}
	if name, ok := r.ResolveFuzzy(text); ok {
		return name, false, true
	}
	return "", false, false
}

func normalize(s string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(s)))
}
