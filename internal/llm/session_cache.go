package llm

import (
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// sessionCache maps session ids to provider-session handles. Handles are
// created lazily on first use and are never evicted here; TTL or eviction,
// if wanted, is an operational concern layered on top.
type sessionCache struct {
	lock     sync.Mutex
	sessions map[string]*providerSession
}

func newSessionCache() *sessionCache {
	return &sessionCache{sessions: make(map[string]*providerSession)}
}

// get returns the handle for sessionID, creating it with create on first
// use. The cache lock covers only the map, never a provider call.
func (c *sessionCache) get(sessionID string, create func() (*providerSession, error)) (*providerSession, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if session, exists := c.sessions[sessionID]; exists {
		return session, nil
	}

	session, err := create()
	if err != nil {
		return nil, err
	}
	c.sessions[sessionID] = session

	return session, nil
}

// transcript is the per-handle conversation record, guarded by its own
// mutex so one session's turns never contend with another's.
type transcript struct {
	mu       sync.Mutex
	messages []llms.MessageContent
}

func (t *transcript) snapshot() []llms.MessageContent {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]llms.MessageContent, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *transcript) append(messages ...llms.MessageContent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.messages = append(t.messages, messages...)
}
