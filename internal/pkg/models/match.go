package models

import (
	"fmt"
	"strings"
	"time"
)

// MatchStatus is the lifecycle state of a fixture.
type MatchStatus string

const (
	MatchScheduled MatchStatus = "SCHEDULED"
	MatchLive      MatchStatus = "LIVE"
	MatchFinished  MatchStatus = "FINISHED"
	MatchPostponed MatchStatus = "POSTPONED"
	MatchCancelled MatchStatus = "CANCELLED"
)

// ParseMatchStatus accepts the status names in any case.
func ParseMatchStatus(s string) (MatchStatus, error) {
	switch st := MatchStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case MatchScheduled, MatchLive, MatchFinished, MatchPostponed, MatchCancelled:
		return st, nil
	case "":
		return MatchScheduled, nil
	default:
		return "", fmt.Errorf("unknown match status %q", s)
	}
}

// Pending reports whether the match can still take part in a round window.
func (s MatchStatus) Pending() bool {
	return s != MatchFinished && s != MatchCancelled
}

// Match represents a scheduled fixture of the championship.
// Team names are canonical (see the teams package).
type Match struct {
	ID            string      `json:"id" yaml:"id"`
	Round         int         `json:"round" yaml:"round"`
	HomeTeam      string      `json:"home_team" yaml:"home_team"`
	AwayTeam      string      `json:"away_team" yaml:"away_team"`
	StartTime     time.Time   `json:"start_time" yaml:"start_time"`
	Status        MatchStatus `json:"status" yaml:"status"`
	PostponedFrom string      `json:"postponed_from,omitempty" yaml:"postponed_from,omitempty"` // e.g. "R3"
	HomeScore     *int        `json:"home_score,omitempty" yaml:"home_score,omitempty"`
	AwayScore     *int        `json:"away_score,omitempty" yaml:"away_score,omitempty"`
}

// Name returns "Home x Away".
func (m Match) Name() string {
	return m.HomeTeam + " x " + m.AwayTeam
}

// PostponedTag builds the tag stored on matches pushed out of their round window.
func PostponedTag(round int) string {
	return fmt.Sprintf("R%d", round)
}

// PostponedRound extracts the round number from a PostponedFrom tag.
// Returns 0 when the tag is empty or malformed.
func PostponedRound(tag string) int {
	var round int
	if _, err := fmt.Sscanf(tag, "R%d", &round); err != nil {
		return 0
	}
	return round
}
