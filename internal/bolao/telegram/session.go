package telegram

import "sync"

// Session holds the chat configured to receive bets.
type Session struct {
	mu      sync.RWMutex
	groupID int64
}

func NewSession(groupID int64) *Session {
	return &Session{groupID: groupID}
}

func (s *Session) GroupID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groupID
}

// Configure makes chatID the bets group and reports whether it changed.
func (s *Session) Configure(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.groupID != chatID
	s.groupID = chatID
	return changed
}

// IsBetsGroup reports whether chatID is the configured group. Nothing
// matches before a group is configured.
func (s *Session) IsBetsGroup(chatID int64) bool {
	g := s.GroupID()
	return g != 0 && g == chatID
}
