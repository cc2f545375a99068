// Package fixtures loads championship fixtures from YAML into storage.
package fixtures

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gustavomchagas/chuta/internal/pkg/models"
	"github.com/gustavomchagas/chuta/internal/pkg/teams"
)

type file struct {
	Matches []models.Match `yaml:"matches"`
}

// MatchWriter stores fixtures.
type MatchWriter interface {
	UpsertMatch(ctx context.Context, match *models.Match) error
}

// Load reads a fixtures file:
//
//	matches:
//	  - id: br26-r3-fla-vas
//	    round: 3
//	    home_team: Flamengo
//	    away_team: Vasco
//	    start_time: 2026-04-11T16:00:00-03:00
func Load(path string) ([]models.Match, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) ([]models.Match, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures file: %w", err)
	}
	return f.Matches, nil
}

// Normalize validates matches and replaces team names by their canonical
// form. All problems are reported together.
func Normalize(matches []models.Match, resolver *teams.Resolver) ([]models.Match, error) {
	if resolver == nil {
		resolver = teams.Default()
	}
	out := make([]models.Match, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	var errs []error
	for i, m := range matches {
		ref := m.ID
		if ref == "" {
			ref = fmt.Sprintf("#%d", i+1)
		}
		var problems []error
		if m.ID == "" {
			problems = append(problems, errors.New("missing id"))
		} else if seen[m.ID] {
			problems = append(problems, errors.New("duplicate id"))
		}
		seen[m.ID] = true
		if m.Round <= 0 {
			problems = append(problems, errors.New("round must be positive"))
		}
		if m.StartTime.IsZero() {
			problems = append(problems, errors.New("missing start_time"))
		}
		status, err := models.ParseMatchStatus(string(m.Status))
		if err != nil {
			problems = append(problems, err)
		}
		m.Status = status
		for _, side := range []*string{&m.HomeTeam, &m.AwayTeam} {
			name, exact, ok := resolver.Resolve(*side)
			if !ok || !exact {
				problems = append(problems, fmt.Errorf("unknown team %q", *side))
				continue
			}
			*side = name
		}
		if len(problems) > 0 {
			errs = append(errs, fmt.Errorf("match %s: %w", ref, errors.Join(problems...)))
			continue
		}
		out = append(out, m)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// Import stores matches, stopping at the first failure. It returns how many
// were written.
func Import(ctx context.Context, w MatchWriter, matches []models.Match) (int, error) {
	for i := range matches {
		if err := w.UpsertMatch(ctx, &matches[i]); err != nil {
			return i, fmt.Errorf("failed to store match %s: %w", matches[i].ID, err)
		}
	}
	return len(matches), nil
}
