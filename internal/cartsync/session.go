package cartsync

import (
	"strings"
	"sync"
)

// Session holds the active token. Every change bumps a generation number so
// work started under an older token can recognise that it is stale.
type Session struct {
	mu         sync.RWMutex
	token      string
	generation uint64
}

// Token returns the active token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Active reports whether a token is set.
func (s *Session) Active() bool {
	return s.Token() != ""
}

// Generation returns the current generation.
func (s *Session) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

func (s *Session) set(token string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = strings.TrimSpace(token)
	s.generation++
	return s.generation
}

func (s *Session) isCurrent(generation uint64) bool {
	return s.Generation() == generation
}
