package notify

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestPoller_DeliversCounts(t *testing.T) {
	var calls atomic.Int64
	fetch := func(ctx context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}
	p := NewPoller(fetch, 5*time.Millisecond, zap.NewNop())

	counts := make(chan int, 16)
	p.Start(func(n int) { counts <- n })
	defer p.Stop()

	// The first fetch fires immediately, later ones on the ticker.
	deadline := time.After(time.Second)
	var got []int
	for len(got) < 3 {
		select {
		case n := <-counts:
			got = append(got, n)
		case <-deadline:
			t.Fatalf("only %d counts delivered: %v", len(got), got)
		}
	}
	if got[0] != 1 {
		t.Errorf("first count = %d; want 1 (immediate poll)", got[0])
	}
}

func TestPoller_StopEndsDelivery(t *testing.T) {
	fetch := func(ctx context.Context) (int, error) { return 1, nil }
	p := NewPoller(fetch, 5*time.Millisecond, zap.NewNop())

	counts := make(chan int, 16)
	p.Start(func(n int) { counts <- n })

	select {
	case <-counts:
	case <-time.After(time.Second):
		t.Fatal("no count before Stop")
	}
	p.Stop()

	// Drain anything already in flight, then expect silence.
	time.Sleep(20 * time.Millisecond)
	for len(counts) > 0 {
		<-counts
	}
	select {
	case n := <-counts:
		t.Errorf("count %d delivered after Stop", n)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestPoller_DropsResultArrivingAfterStop(t *testing.T) {
	inFetch := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (int, error) {
		close(inFetch)
		<-release
		return 7, nil
	}
	p := NewPoller(fetch, time.Minute, zap.NewNop())

	delivered := make(chan int, 1)
	p.Start(func(n int) { delivered <- n })

	<-inFetch
	p.Stop()
	close(release)

	select {
	case n := <-delivered:
		t.Errorf("stale count %d delivered after Stop", n)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPoller_KeepsPollingThroughErrors(t *testing.T) {
	var calls atomic.Int64
	fetch := func(ctx context.Context) (int, error) {
		if calls.Add(1) == 1 {
			return 0, errors.New("backend down")
		}
		return 3, nil
	}
	p := NewPoller(fetch, 5*time.Millisecond, zap.NewNop())

	counts := make(chan int, 1)
	p.Start(func(n int) {
		select {
		case counts <- n:
		default:
		}
	})
	defer p.Stop()

	select {
	case n := <-counts:
		if n != 3 {
			t.Errorf("count = %d; want 3", n)
		}
	case <-time.After(time.Second):
		t.Fatal("no count delivered after transient error")
	}
}

func TestPoller_RestartReplacesLoop(t *testing.T) {
	fetch := func(ctx context.Context) (int, error) { return 1, nil }
	p := NewPoller(fetch, 5*time.Millisecond, zap.NewNop())

	var first, second atomic.Int64
	p.Start(func(int) { first.Add(1) })
	p.Start(func(int) { second.Add(1) })
	defer p.Stop()

	time.Sleep(30 * time.Millisecond)
	if second.Load() == 0 {
		t.Error("second loop never delivered")
	}
	firstSeen := first.Load()
	time.Sleep(30 * time.Millisecond)
	if got := first.Load(); got != firstSeen {
		t.Errorf("first loop still delivering after restart: %d -> %d", firstSeen, got)
	}
}
