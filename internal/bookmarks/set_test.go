package bookmarks

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

// waitSaved polls until the set reports id saved.
func waitSaved(t *testing.T, s *Set, id int64) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !s.Contains(id) {
		if time.Now().After(deadline) {
			t.Fatalf("Contains(%d) never became true", id)
		}
		time.Sleep(time.Millisecond)
	}
}

// fakeService records save/unsave calls and can fail or block.
type fakeService struct {
	mu      sync.Mutex
	calls   []string
	saveErr error
	block   chan struct{}
}

func (f *fakeService) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeService) SavePost(ctx context.Context, id int64) error {
	if f.block != nil {
		<-f.block
	}
	f.record("save")
	return f.saveErr
}

func (f *fakeService) UnsavePost(ctx context.Context, id int64) error {
	if f.block != nil {
		<-f.block
	}
	f.record("unsave")
	return nil
}

func (f *fakeService) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func TestToggle_Save(t *testing.T) {
	svc := &fakeService{}
	s := New(svc, zap.NewNop())

	if err := s.Toggle(context.Background(), 42); err != nil {
		t.Fatalf("Toggle error: %v", err)
	}
	if !s.Contains(42) {
		t.Error("Contains(42) = false after save toggle")
	}
	if got := svc.callLog(); len(got) != 1 || got[0] != "save" {
		t.Errorf("calls = %v; want [save]", got)
	}

	if err := s.Toggle(context.Background(), 42); err != nil {
		t.Fatalf("Toggle error: %v", err)
	}
	if s.Contains(42) {
		t.Error("Contains(42) = true after unsave toggle")
	}
	if got := svc.callLog(); len(got) != 2 || got[1] != "unsave" {
		t.Errorf("calls = %v; want [save unsave]", got)
	}
}

func TestToggle_RollbackOnError(t *testing.T) {
	wantErr := errors.New("forbidden")
	svc := &fakeService{saveErr: wantErr}
	s := New(svc, zap.NewNop())

	err := s.Toggle(context.Background(), 42)
	if !errors.Is(err, wantErr) {
		t.Fatalf("Toggle error = %v; want forbidden", err)
	}
	if s.Contains(42) {
		t.Error("Contains(42) = true after rejected save; want rollback")
	}

	// The id is reusable after the rollback.
	svc.saveErr = nil
	if err := s.Toggle(context.Background(), 42); err != nil {
		t.Fatalf("Toggle after rollback: %v", err)
	}
	if !s.Contains(42) {
		t.Error("Contains(42) = false after successful retry")
	}
}

func TestToggle_OptimisticBeforeResolve(t *testing.T) {
	svc := &fakeService{block: make(chan struct{})}
	s := New(svc, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- s.Toggle(context.Background(), 7) }()

	// The flip is visible while the network call is still blocked.
	waitSaved(t, s, 7)

	close(svc.block)
	if err := <-done; err != nil {
		t.Fatalf("Toggle error: %v", err)
	}
}

func TestToggle_OverlappingTogglesSerialized(t *testing.T) {
	svc := &fakeService{block: make(chan struct{})}
	s := New(svc, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- s.Toggle(context.Background(), 7) }()
	waitSaved(t, s, 7)

	// Second toggle while the save is in flight: flips locally, queues,
	// returns immediately.
	if err := s.Toggle(context.Background(), 7); err != nil {
		t.Fatalf("queued Toggle error: %v", err)
	}
	if s.Contains(7) {
		t.Error("Contains(7) = true after second flip")
	}

	close(svc.block)
	if err := <-done; err != nil {
		t.Fatalf("Toggle error: %v", err)
	}

	// The loop settled server state back to unsaved: save then unsave.
	got := svc.callLog()
	if len(got) != 2 || got[0] != "save" || got[1] != "unsave" {
		t.Errorf("calls = %v; want [save unsave]", got)
	}
	if s.Contains(7) {
		t.Error("final Contains(7) = true; want false")
	}
}

func TestReplaceAndIDs(t *testing.T) {
	s := New(&fakeService{}, zap.NewNop())
	s.Replace([]int64{9, 3, 5})

	got := s.IDs()
	want := []int64{3, 5, 9}
	if len(got) != len(want) {
		t.Fatalf("IDs = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IDs = %v; want %v", got, want)
		}
	}

	s.Replace(nil)
	if ids := s.IDs(); len(ids) != 0 {
		t.Errorf("IDs after empty replace = %v; want none", ids)
	}
}
