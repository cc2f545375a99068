package betparser

import (
	"fmt"
	"sort"
	"strings"
)

// FormatHint is shown when a message had no recognizable bet.
const FormatHint = "❌ Não consegui identificar seus palpites. Tente no formato:\n1) 2x1\n2) 0x0\n3) 1x1"

// Format renders bets as a confirmation list ordered by match number, each
// line marked with its confidence.
func Format(bets []CandidateBet) string {
	if len(bets) == 0 {
		return FormatHint
	}

	sorted := make([]CandidateBet, len(bets))
	copy(sorted, bets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MatchNumber < sorted[j].MatchNumber
	})

	lines := make([]string, len(sorted))
	for i, b := range sorted {
		lines[i] = fmt.Sprintf("%s %d) %s %d x %d %s",
			b.Confidence.Marker(), b.MatchNumber, b.HomeTeam, b.HomeScore, b.AwayScore, b.AwayTeam)
	}
	return strings.Join(lines, "\n")
}

// Marker returns the emoji used for c in confirmations.
func (c Confidence) Marker() string {
	switch c {
	case High:
		return "✅"
	case Medium:
		return "⚠️"
	default:
		return "❓"
	}
}
