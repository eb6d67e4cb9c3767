// Package peerset is the unordered set of known peer endpoints.
package peerset

import (
	"net/url"
	"sync"
)

// Set is a thread-safe, idempotent set of "host:port" peer endpoints. It
// never contains self, so a node never gossips to itself.
type Set struct {
	mu    sync.RWMutex
	self  string
	peers map[string]struct{}
}

// New builds an empty Set that refuses to register self (its own host:port,
// may be empty if unknown).
func New(self string) *Set {
	return &Set{self: self, peers: make(map[string]struct{})}
}

func normalize(raw string) string {
	if parsed, err := url.Parse(raw); err == nil && parsed.Host != "" {
		return parsed.Host
	}
	return raw
}

// Register parses raw as a URL, preferring its host:port authority; falling
// back to the raw input when no authority is present. Adding an existing peer
// or the set's own address is a no-op.
func (s *Set) Register(raw string) {
	addr := normalize(raw)
	if addr == s.self {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.peers[addr] = struct{}{}
}

// List returns a snapshot of the current peer set.
func (s *Set) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.peers))
	for p := range s.peers {
		out = append(out, p)
	}
	return out
}

// ReplaceAll resets the set to exactly peers, minus self — used when loading
// from disk.
func (s *Set) ReplaceAll(peers []string) {
	fresh := make(map[string]struct{}, len(peers))
	for _, p := range peers {
		addr := normalize(p)
		if addr == s.self {
			continue
		}
		fresh[addr] = struct{}{}
	}
	s.mu.Lock()
	s.peers = fresh
	s.mu.Unlock()
}
