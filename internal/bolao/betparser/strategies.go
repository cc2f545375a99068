package betparser

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/gustavomchagas/chuta/internal/pkg/teams"
)

// maxReportedNumber bounds the match numbers reported as missing. Larger
// leading integers are more likely scores or times than match references.
const maxReportedNumber = 10

// Output is what a single strategy extracted from a message.
type Output struct {
	Bets   []CandidateBet
	Errors []string
}

// Strategy is one independent way of reading bets out of a message.
type Strategy struct {
	Name    string
	Extract func(text string, open []OpenMatch) Output
}

// DefaultStrategies returns the strategies in the order they run. The order
// decides ties during the merge.
func DefaultStrategies(resolver *teams.Resolver) []Strategy {
	return []Strategy{
		{Name: "numbered", Extract: Numbered},
		{Name: "team-name", Extract: TeamName(resolver)},
		{Name: "mixed", Extract: Mixed},
		{Name: "compact", Extract: Compact},
	}
}

// Numbered reads "<number><separator><score>" references.
func Numbered(text string, open []OpenMatch) Output {
	var out Output
	for _, re := range []*regexp.Regexp{numberedPunctRe, numberedBlankRe} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			number, home, away, ok := atoi3(m[1], m[2], m[3])
			if !ok {
				continue
			}
			match, found := byNumber(open, number)
			if !found {
				if number <= maxReportedNumber {
					out.Errors = append(out.Errors, fmt.Sprintf("Jogo %d não encontrado na rodada", number))
				}
				continue
			}
			out.Bets = append(out.Bets, candidate(match, home, away, High, m[0]))
		}
	}
	return out
}

// TeamName returns the strategy reading "<team> <score> <team>" references.
// Both teams must resolve and form an open pairing, in either order; a
// reversed pairing swaps the scores.
func TeamName(resolver *teams.Resolver) func(string, []OpenMatch) Output {
	return func(text string, open []OpenMatch) Output {
		var out Output
		for _, m := range teamNameRe.FindAllStringSubmatch(text, -1) {
			first, firstExact, ok1 := resolver.Resolve(m[1])
			second, secondExact, ok2 := resolver.Resolve(m[4])
			if !ok1 || !ok2 {
				continue
			}
			home, away, ok := atoi2(m[2], m[3])
			if !ok {
				continue
			}

			match, reversed, found := byPair(open, first, second)
			if !found {
				continue
			}
			if reversed {
				home, away = away, home
			}

			conf := Medium
			if firstExact && secondExact {
				conf = High
			}
			out.Bets = append(out.Bets, candidate(match, home, away, conf, m[0]))
		}
		return out
	}
}

// Mixed reads numbered references decorated with team names, as in
// "1) Flamengo 2x1". The names are not checked; the number decides.
func Mixed(text string, open []OpenMatch) Output {
	var out Output
	for _, m := range mixedRe.FindAllStringSubmatch(text, -1) {
		number, home, away, ok := atoi3(m[1], m[3], m[4])
		if !ok {
			continue
		}
		if match, found := byNumber(open, number); found {
			out.Bets = append(out.Bets, candidate(match, home, away, High, m[0]))
		}
	}
	return out
}

// Compact assigns bare score pairs to the open matches by position. It only
// fires when there are exactly as many pairs as open matches.
func Compact(text string, open []OpenMatch) Output {
	pairs := scorePairRe.FindAllStringSubmatch(text, -1)
	if len(pairs) == 0 || len(pairs) != len(open) {
		return Output{}
	}

	var out Output
	for i, m := range pairs {
		home, away, ok := atoi2(m[1], m[2])
		if !ok {
			return Output{}
		}
		out.Bets = append(out.Bets, candidate(open[i], home, away, Medium, m[0]))
	}
	return out
}

func candidate(m OpenMatch, home, away int, conf Confidence, original string) CandidateBet {
	return CandidateBet{
		MatchID:      m.ID,
		MatchNumber:  m.Number,
		HomeTeam:     m.HomeTeam,
		AwayTeam:     m.AwayTeam,
		HomeScore:    home,
		AwayScore:    away,
		Confidence:   conf,
		OriginalText: original,
	}
}

func byNumber(open []OpenMatch, number int) (OpenMatch, bool) {
	for _, m := range open {
		if m.Number == number {
			return m, true
		}
	}
	return OpenMatch{}, false
}

// byPair returns the first open match between a and b, in window order.
func byPair(open []OpenMatch, a, b string) (OpenMatch, bool, bool) {
	for _, m := range open {
		switch {
		case m.HomeTeam == a && m.AwayTeam == b:
			return m, false, true
		case m.HomeTeam == b && m.AwayTeam == a:
			return m, true, true
		}
	}
	return OpenMatch{}, false, false
}

func atoi2(a, b string) (int, int, bool) {
	x, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, false
	}
	y, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, false
	}
	return x, y, true
}

func atoi3(a, b, c string) (int, int, int, bool) {
	x, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, 0, false
	}
	y, z, ok := atoi2(b, c)
	return x, y, z, ok
}
