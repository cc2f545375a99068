package models

import (
	"fmt"
	"time"
)

// Bet represents a player's score guess for one match.
// There is at most one Bet per (PlayerID, MatchID) and the guess is never updated.
type Bet struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"player_id"`
	MatchID   string    `json:"match_id"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
	CreatedAt time.Time `json:"created_at"`
	Points    *int      `json:"points,omitempty"` // set by the scoring job, outside intake
}

// Score renders the guess as "2x1".
func (b Bet) Score() string {
	return fmt.Sprintf("%dx%d", b.HomeScore, b.AwayScore)
}
