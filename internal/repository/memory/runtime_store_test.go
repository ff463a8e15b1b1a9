package memory

import (
	"sync"
	"testing"
	"time"
)

func TestMarkDelivery(t *testing.T) {
	s := NewRuntimeStore()

	if !s.MarkDelivery("wamid.A1") {
		t.Fatal("first delivery id should be accepted")
	}
	if s.MarkDelivery("wamid.A1") {
		t.Fatal("duplicate delivery id should be rejected")
	}
	if !s.MarkDelivery("wamid.A2") {
		t.Fatal("distinct delivery id should be accepted")
	}
	if !s.MarkDelivery("") {
		t.Fatal("empty delivery id is a no-op and should pass")
	}
	if !s.MarkDelivery("") {
		t.Fatal("empty delivery id should never be treated as duplicate")
	}
}

func TestForgetDeliveryAllowsRetry(t *testing.T) {
	s := NewRuntimeStore()

	if !s.MarkDelivery("wamid.B1") {
		t.Fatal("first delivery id should be accepted")
	}
	s.ForgetDelivery("wamid.B1")
	if !s.MarkDelivery("wamid.B1") {
		t.Fatal("forgotten delivery id should be accepted again")
	}
	if s.MarkDelivery("wamid.B1") {
		t.Fatal("re-marked delivery id should be rejected")
	}

	// Unknown and empty ids are no-ops.
	s.ForgetDelivery("wamid.never-seen")
	s.ForgetDelivery("")
}

func TestLockSessionSerializes(t *testing.T) {
	s := NewRuntimeStore()

	var order []int
	var wg sync.WaitGroup
	unlock := s.LockSession("sess-1")

	wg.Add(1)
	go func() {
		defer wg.Done()
		u := s.LockSession("sess-1")
		order = append(order, 2)
		u()
	}()

	time.Sleep(10 * time.Millisecond)
	order = append(order, 1)
	unlock()
	wg.Wait()

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("expected holder to run before waiter, got %v", order)
	}
}

func TestLockSessionIndependentSessions(t *testing.T) {
	s := NewRuntimeStore()

	u1 := s.LockSession("sess-a")
	done := make(chan struct{})
	go func() {
		u2 := s.LockSession("sess-b")
		u2()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different session must not block")
	}
	u1()
}

func TestSweepLocks(t *testing.T) {
	s := NewRuntimeStore()
	u := s.LockSession("stale")
	u()

	s.SweepLocks(0)

	s.mu.Lock()
	_, ok := s.locks["stale"]
	s.mu.Unlock()
	if ok {
		t.Fatal("idle lock should have been swept")
	}
}
