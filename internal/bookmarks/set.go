// Package bookmarks keeps the current user's saved-post set, applying
// toggles optimistically and reconciling with the backend. Overlapping
// toggles on one id are serialized: the local flip is immediate, the
// network call queues behind any in-flight call for that id.
package bookmarks

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Service is the backend surface the set needs. *api.Client satisfies
// it.
type Service interface {
	SavePost(ctx context.Context, id int64) error
	UnsavePost(ctx context.Context, id int64) error
}

// Set is the saved-post id set. Safe for concurrent use.
type Set struct {
	mu  sync.Mutex
	svc Service
	log *zap.Logger

	// ids is the optimistic local state the UI renders.
	ids map[int64]bool
	// synced is the last state the server is known to hold.
	synced map[int64]bool
	// inflight marks ids with a reconciliation loop running.
	inflight map[int64]bool
}

// New returns an empty set backed by svc.
func New(svc Service, log *zap.Logger) *Set {
	if log == nil {
		log = zap.NewNop()
	}
	return &Set{
		svc:      svc,
		log:      log,
		ids:      make(map[int64]bool),
		synced:   make(map[int64]bool),
		inflight: make(map[int64]bool),
	}
}

// Replace resets the set from a fresh server fetch of saved post ids.
func (s *Set) Replace(ids []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[int64]bool, len(ids))
	s.synced = make(map[int64]bool, len(ids))
	for _, id := range ids {
		s.ids[id] = true
		s.synced[id] = true
	}
}

// Contains reports whether a post is currently saved, including
// not-yet-confirmed optimistic toggles.
func (s *Set) Contains(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids[id]
}

// IDs returns the saved ids in ascending order.
func (s *Set) IDs() []int64 {
	s.mu.Lock()
	out := make([]int64, 0, len(s.ids))
	for id, on := range s.ids {
		if on {
			out = append(out, id)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Toggle flips the saved state of id locally, then reconciles with the
// server. If a call for the same id is already in flight the flip is
// queued and Toggle returns nil immediately; the running loop carries
// it out. On a failed call the local state reverts to the last state
// the server confirmed.
func (s *Set) Toggle(ctx context.Context, id int64) error {
	s.mu.Lock()
	s.ids[id] = !s.ids[id]
	if s.inflight[id] {
		// The running reconcile loop will observe the new target.
		s.mu.Unlock()
		return nil
	}
	s.inflight[id] = true
	s.mu.Unlock()

	return s.reconcile(ctx, id)
}

// reconcile issues save/unsave calls until the server state matches
// the local target for id. Runs in the goroutine of the first Toggle.
func (s *Set) reconcile(ctx context.Context, id int64) error {
	for {
		s.mu.Lock()
		want := s.ids[id]
		have := s.synced[id]
		if want == have {
			delete(s.inflight, id)
			s.mu.Unlock()
			return nil
		}
		s.mu.Unlock()

		var err error
		if want {
			err = s.svc.SavePost(ctx, id)
		} else {
			err = s.svc.UnsavePost(ctx, id)
		}

		s.mu.Lock()
		if err != nil {
			s.ids[id] = have
			delete(s.inflight, id)
			s.mu.Unlock()
			s.log.Warn("bookmark toggle rolled back",
				zap.Int64("post", id), zap.Error(err))
			return err
		}
		s.synced[id] = want
		s.mu.Unlock()
	}
}
