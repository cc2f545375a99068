package betparser

import "regexp"

// Pattern sources. Every pattern is anchored on a score pair; the capture
// groups are documented next to each one.
const (
	// "1) 2x1", "1- 2x1", "1. 2 a 1", "1: 2-1"
	// groups: number, home score, away score
	NumberedPunctPattern = `(\d+)\s*[)\-.:]\s*(\d+)\s*[xX\-aA]\s*(\d+)`

	// "1 2x1". The run of blanks never crosses a line break, so a bare score
	// on the next line is not read as a number prefix.
	// groups: number, home score, away score
	NumberedBlankPattern = `(\d+)[ \t]+(\d+)\s*[xX\-]\s*(\d+)`

	// "Flamengo 2 x 1 Vasco", "fla 2x1 vas"
	// groups: first team, first score, second score, second team
	TeamNamePattern = `(?i)([\p{L}\-]+)\s*(\d+)\s*[xX\-aA]\s*(\d+)\s*([\p{L}\-]+)`

	// "1) Flamengo 2x1", "1- fla 2x0 vas"
	// groups: number, optional team, home score, away score, optional team
	MixedPattern = `(?i)(\d+)\s*[)\-.:]\s*(?:([\p{L}\-]+)\s+)?(\d+)\s*[xX\-]\s*(\d+)(?:\s+([\p{L}\-]+))?`

	// "2x1", "0 - 0"
	// groups: home score, away score
	ScorePairPattern = `(\d+)\s*[xX\-]\s*(\d+)`

	// Any score-looking pair, used to tell a proxy name line from a bet line.
	ScoreLikePattern = `\d+\s*[xX\-aA]\s*\d+`
)

var (
	numberedPunctRe = regexp.MustCompile(NumberedPunctPattern)
	numberedBlankRe = regexp.MustCompile(NumberedBlankPattern)
	teamNameRe      = regexp.MustCompile(TeamNamePattern)
	mixedRe         = regexp.MustCompile(MixedPattern)
	scorePairRe     = regexp.MustCompile(ScorePairPattern)
	scoreLikeRe     = regexp.MustCompile(ScoreLikePattern)
)

// HasScore reports whether s contains anything that looks like a score pair.
func HasScore(s string) bool {
	return scoreLikeRe.MatchString(s)
}
