package models

import (
	"time"
)

// Player represents a pool participant.
// Handle is the transport identity (Telegram user id); players registered by
// proxy name have no handle.
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Handle    string    `json:"handle,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HasHandle reports whether the player is bound to a transport identity.
func (p Player) HasHandle() bool {
	return p.Handle != ""
}
