package models

import (
	"testing"
)

func TestParseMatchStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    MatchStatus
		wantErr bool
	}{
		{"scheduled", MatchScheduled, false},
		{" LIVE ", MatchLive, false},
		{"Finished", MatchFinished, false},
		{"postponed", MatchPostponed, false},
		{"cancelled", MatchCancelled, false},
		{"", MatchScheduled, false},
		{"abandoned", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMatchStatus(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMatchStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMatchStatus(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMatchStatus_Pending(t *testing.T) {
	pending := []MatchStatus{MatchScheduled, MatchLive, MatchPostponed}
	for _, s := range pending {
		if !s.Pending() {
			t.Errorf("%q should be pending", s)
		}
	}
	for _, s := range []MatchStatus{MatchFinished, MatchCancelled} {
		if s.Pending() {
			t.Errorf("%q should not be pending", s)
		}
	}
}

func TestPostponedTag_RoundTrip(t *testing.T) {
	tests := []struct {
		tag  string
		want int
	}{
		{PostponedTag(3), 3},
		{PostponedTag(38), 38},
		{"", 0},
		{"round 4", 0},
	}

	for _, tt := range tests {
		if got := PostponedRound(tt.tag); got != tt.want {
			t.Errorf("PostponedRound(%q) = %d, want %d", tt.tag, got, tt.want)
		}
	}
}

func TestMatch_Name(t *testing.T) {
	m := Match{HomeTeam: "Flamengo", AwayTeam: "Vasco da Gama"}
	if got := m.Name(); got != "Flamengo x Vasco da Gama" {
		t.Errorf("Name() = %q", got)
	}
}
