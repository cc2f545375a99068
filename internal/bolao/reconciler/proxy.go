package reconciler

import (
	"strings"
	"unicode/utf8"

	"github.com/gustavomchagas/chuta/internal/bolao/betparser"
)

// DefaultProxyNameMaxLen is the longest first line taken as a player name.
const DefaultProxyNameMaxLen = 30

// SplitProxyName detects bets sent on behalf of someone else, written as a
// short first line with the player's name followed by the bets:
//
//	NEI
//	Flamengo 2x1 Vasco
//
// It returns the name and the remaining text. When the first line is not a
// name, name is empty and rest is text unchanged.
func SplitProxyName(text string, maxLen int) (name, rest string) {
	if maxLen <= 0 {
		maxLen = DefaultProxyNameMaxLen
	}

	lines := strings.Split(betparser.Normalize(text), "\n")
	if len(lines) < 2 {
		return "", text
	}

	first := strings.TrimSpace(lines[0])
	if first == "" || utf8.RuneCountInString(first) > maxLen || betparser.HasScore(first) {
		return "", text
	}
	return first, strings.Join(lines[1:], "\n")
}
