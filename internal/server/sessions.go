package server

import (
	"sync"
	"time"

	"github.com/abenet15/maze"
	"github.com/abenet15/maze/internal/mazefile"
)

// session is one stepwise search. mu guards the stepper; lastUsed is
// guarded by Server.mu.
type session struct {
	mu       sync.Mutex
	maze     mazefile.Maze
	stepper  *maze.Stepper
	lastUsed time.Time
}

// addSession stores sess under id. Sessions idle for longer than the TTL
// are dropped first, and if the table is still full the least recently used
// one is evicted.
func (s *Server) addSession(id string, sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, existing := range s.sessions {
		if now.Sub(existing.lastUsed) > s.sessionTTL {
			delete(s.sessions, key)
			s.logger.Debug("session expired", "id", key)
		}
	}
	for len(s.sessions) >= s.maxSessions {
		var (
			oldestID string
			oldest   time.Time
		)
		for key, existing := range s.sessions {
			if oldestID == "" || existing.lastUsed.Before(oldest) {
				oldestID, oldest = key, existing.lastUsed
			}
		}
		delete(s.sessions, oldestID)
		s.logger.Info("session evicted", "id", oldestID)
	}

	sess.lastUsed = now
	s.sessions[id] = sess
}

// lookupSession returns the session and marks it used.
func (s *Server) lookupSession(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(sess.lastUsed) > s.sessionTTL {
		delete(s.sessions, id)
		return nil, false
	}
	sess.lastUsed = now
	return sess, true
}

func (s *Server) removeSession(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

func (s *Server) sessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
