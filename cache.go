package ferogram

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// Peer is the chat-metadata identity recorded as a side effect of observing
// update senders and chats.
type Peer struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
	Bot      bool   `json:"bot,omitempty"`
}

// PeerCache stores observed peer identities. The dispatcher populates it as
// updates flow through; it is a side effect, never a dispatch-blocking
// dependency.
//
// Save is an idempotent upsert with first-write-wins semantics: saving an ID
// that already exists keeps the stored identity.
type PeerCache interface {
	Save(peer Peer) error
	Get(id int64) (Peer, bool)
}

// MemoryPeerCache is an in-process PeerCache safe for concurrent use.
type MemoryPeerCache struct {
	mu    sync.RWMutex
	peers map[int64]Peer
}

// NewMemoryPeerCache creates an empty MemoryPeerCache.
func NewMemoryPeerCache() *MemoryPeerCache {
	return &MemoryPeerCache{peers: make(map[int64]Peer)}
}

// LoadPeerCacheFile loads a cache previously written with SaveToFile, or
// returns an empty cache if the file does not exist.
func LoadPeerCacheFile(path string) (*MemoryPeerCache, error) {
	c := NewMemoryPeerCache()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read peer cache: %w", err)
	}
	if err := json.Unmarshal(data, &c.peers); err != nil {
		return nil, fmt.Errorf("decode peer cache: %w", err)
	}
	return c, nil
}

// Save implements PeerCache. The first identity stored for an ID wins.
func (c *MemoryPeerCache) Save(peer Peer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.peers[peer.ID]; !ok {
		c.peers[peer.ID] = peer
	}
	return nil
}

// Get implements PeerCache.
func (c *MemoryPeerCache) Get(id int64) (Peer, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.peers[id]
	return p, ok
}

// Len returns the number of stored peers.
func (c *MemoryPeerCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.peers)
}

// SaveToFile writes the cache as JSON, replacing any previous file.
func (c *MemoryPeerCache) SaveToFile(path string) error {
	c.mu.RLock()
	data, err := json.Marshal(c.peers)
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode peer cache: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write peer cache: %w", err)
	}
	return nil
}
