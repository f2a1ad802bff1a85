package identity

import (
	"context"
	"sync"
	"time"

	"github.com/ctchan-dev/ctchan/internal/domain"
	"github.com/ctchan-dev/ctchan/internal/logger"
)

// SessionKey identifies one viewer session (a browser cookie value). The
// mapping it scopes is threadId -> posterId, so a viewer keeps one id per
// thread but different ids across threads and sessions.
type SessionKey = string

type session struct {
	perThread map[domain.ThreadId]domain.PosterId
	lastSeen  time.Time
}

// Sessions is an in-memory, TTL-evicted poster-id store. It is handed
// explicitly to the services that need it; nothing reads it through a
// package-level variable.
type Sessions struct {
	mu       sync.Mutex
	sessions map[SessionKey]*session
	ttl      time.Duration
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		sessions: make(map[SessionKey]*session),
		ttl:      ttl,
	}
}

// GetOrCreate returns the poster id recorded for (key, threadId), generating
// and recording one on first use. Touching a session extends its lifetime.
func (s *Sessions) GetOrCreate(key SessionKey, threadId domain.ThreadId) domain.PosterId {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	if !ok {
		sess = &session{perThread: make(map[domain.ThreadId]domain.PosterId)}
		s.sessions[key] = sess
	}
	sess.lastSeen = time.Now()

	id, ok := sess.perThread[threadId]
	if !ok {
		id = Generate()
		sess.perThread[threadId] = id
	}
	return id
}

// Bind records a pre-generated poster id for (key, threadId). Thread
// creation needs this: the creator's id is generated before the thread id
// exists, then bound here so their later replies reuse it.
func (s *Sessions) Bind(key SessionKey, threadId domain.ThreadId, id domain.PosterId) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	if !ok {
		sess = &session{perThread: make(map[domain.ThreadId]domain.PosterId)}
		s.sessions[key] = sess
	}
	sess.lastSeen = time.Now()
	sess.perThread[threadId] = id
}

func (s *Sessions) sweep() {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	removed := 0
	for key, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, key)
			removed++
		}
	}
	remaining := len(s.sessions)
	s.mu.Unlock()

	if removed > 0 {
		logger.Component("identity").Debug("poster session sweep",
			"removed", removed,
			"remaining", remaining)
	}
}

// StartBackgroundSweep evicts idle sessions periodically until ctx is done.
func (s *Sessions) StartBackgroundSweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	logger.Component("identity").Info("started poster session sweeper",
		"interval", interval,
		"ttl", s.ttl)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}
