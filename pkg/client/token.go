package client

import "sync"

// TokenStore holds the bearer token between requests. It is injected into the
// Client so callers decide where tokens live; nothing is kept in package
// globals or ambient default headers.
type TokenStore interface {
	Get() string
	Set(token string)
	Clear()
}

// MemoryTokenStore is a process-local TokenStore, safe for concurrent use.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryTokenStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}
