package memory

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// RuntimeStore holds short lived per-process state: one mutex per live
// session so the pipeline handles a session's messages serially, and a
// seen-set of channel delivery ids so webhook retries are not processed
// twice.
type RuntimeStore struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
	seen  *cache.Cache
}

type sessionLock struct {
	mu       sync.Mutex
	lastUsed time.Time
}

func NewRuntimeStore() *RuntimeStore {
	// Delivery ids expire after 24 hours, purged every 10 minutes
	c := cache.New(24*time.Hour, 10*time.Minute)
	return &RuntimeStore{
		locks: map[string]*sessionLock{},
		seen:  c,
	}
}

// LockSession blocks until the caller holds the session's lock and returns
// the unlock func.
func (s *RuntimeStore) LockSession(sessionID string) func() {
	s.mu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		s.locks[sessionID] = l
	}
	l.lastUsed = time.Now()
	s.mu.Unlock()

	l.mu.Lock()
	return l.mu.Unlock
}

// MarkDelivery records a channel delivery id. It returns false when the id
// was already seen inside the retention window.
func (s *RuntimeStore) MarkDelivery(deliveryID string) bool {
	if deliveryID == "" {
		return true
	}
	err := s.seen.Add(deliveryID, struct{}{}, cache.DefaultExpiration)
	return err == nil
}

// ForgetDelivery removes a delivery id from the seen-set so the channel's
// retry of the same message is accepted after a failed attempt.
func (s *RuntimeStore) ForgetDelivery(deliveryID string) {
	if deliveryID == "" {
		return
	}
	s.seen.Delete(deliveryID)
}

// SweepLocks drops lock entries idle longer than maxIdle. Called
// periodically so the lock map does not grow with session churn.
func (s *RuntimeStore) SweepLocks(maxIdle time.Duration) {
	cutoff := time.Now().Add(-maxIdle)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, l := range s.locks {
		if l.lastUsed.Before(cutoff) && l.mu.TryLock() {
			l.mu.Unlock()
			delete(s.locks, id)
		}
	}
}
