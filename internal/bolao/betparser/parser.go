// Package betparser reads score guesses out of free-form chat messages.
//
// A message is handed to every strategy in a fixed order and all of their
// candidates are merged: for each match the most confident candidate wins,
// and on equal confidence the one produced first is kept.
package betparser

import (
	"fmt"
	"strings"

	"github.com/gustavomchagas/chuta/internal/pkg/teams"
)

// Confidence ranks how sure a strategy is about a candidate.
type Confidence string

const (
	High   Confidence = "high"
	Medium Confidence = "medium"
	Low    Confidence = "low"
)

func (c Confidence) rank() int {
	switch c {
	case High:
		return 3
	case Medium:
		return 2
	default:
		return 1
	}
}

// OpenMatch is a match accepting guesses, with its position in the round
// window.
type OpenMatch struct {
	ID       string `json:"id"`
	Number   int    `json:"number"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
}

// CandidateBet is a guess read from a message, not yet persisted.
type CandidateBet struct {
	MatchID      string     `json:"match_id"`
	MatchNumber  int        `json:"match_number"`
	HomeTeam     string     `json:"home_team"`
	AwayTeam     string     `json:"away_team"`
	HomeScore    int        `json:"home_score"`
	AwayScore    int        `json:"away_score"`
	Confidence   Confidence `json:"confidence"`
	OriginalText string     `json:"original_text"`
}

// Result of parsing one message. Success is false when nothing in the message
// looked like a bet; callers treat such messages as ordinary chat.
type Result struct {
	Success     bool           `json:"success"`
	Bets        []CandidateBet `json:"bets"`
	Errors      []string       `json:"errors"`
	Suggestions []string       `json:"suggestions"`
}

// Parser runs a fixed list of strategies. It holds no mutable state and is
// safe for concurrent use.
type Parser struct {
	strategies []Strategy
}

// New returns a parser using the default strategies with resolver for team
// names. A nil resolver selects teams.Default().
func New(resolver *teams.Resolver) *Parser {
	if resolver == nil {
		resolver = teams.Default()
	}
	return &Parser{strategies: DefaultStrategies(resolver)}
}

// NewWithStrategies returns a parser running exactly the given strategies.
func NewWithStrategies(strategies ...Strategy) *Parser {
	return &Parser{strategies: strategies}
}

// Parse extracts the bets in text for the open matches.
func (p *Parser) Parse(text string, open []OpenMatch) Result {
	text = Normalize(text)

	var (
		all    []CandidateBet
		errors []string
	)
	for _, s := range p.strategies {
		out := s.Extract(text, open)
		if len(out.Bets) == 0 {
			continue
		}
		all = append(all, out.Bets...)
		errors = append(errors, out.Errors...)
	}

	res := Result{
		Bets:        merge(all),
		Errors:      nonNil(errors),
		Suggestions: []string{},
	}
	res.Success = len(res.Bets) > 0

	if res.Success {
		if missing := missingMatches(open, res.Bets); len(missing) > 0 {
			res.Suggestions = append(res.Suggestions, "Faltou palpite para: "+strings.Join(missing, ", "))
		}
	}
	return res
}

// Normalize unifies line breaks and non-breaking spaces and trims the text.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\u00a0", " ")
	return strings.TrimSpace(text)
}

// merge keeps one candidate per match. Matches keep the position of their
// first candidate.
func merge(all []CandidateBet) []CandidateBet {
	index := make(map[string]int, len(all))
	merged := make([]CandidateBet, 0, len(all))
	for _, b := range all {
		i, seen := index[b.MatchID]
		if !seen {
			index[b.MatchID] = len(merged)
			merged = append(merged, b)
			continue
		}
		if b.Confidence.rank() > merged[i].Confidence.rank() {
			merged[i] = b
		}
	}
	return merged
}

func missingMatches(open []OpenMatch, bets []CandidateBet) []string {
	covered := make(map[string]bool, len(bets))
	for _, b := range bets {
		covered[b.MatchID] = true
	}

	var missing []string
	for _, m := range open {
		if !covered[m.ID] {
			missing = append(missing, fmt.Sprintf("%d) %s x %s", m.Number, m.HomeTeam, m.AwayTeam))
		}
	}
	return missing
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
