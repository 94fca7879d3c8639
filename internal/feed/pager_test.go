package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/quickswap/quickswap-cli/internal/models"
)

// pagedSource serves a fixed total of posts in PageSize chunks.
func pagedSource(total int, calls *[]int) Source {
	return func(ctx context.Context, page, limit int) ([]models.Post, error) {
		if calls != nil {
			*calls = append(*calls, page)
		}
		start := page * limit
		if start >= total {
			return nil, nil
		}
		end := start + limit
		if end > total {
			end = total
		}
		out := make([]models.Post, 0, end-start)
		for i := start; i < end; i++ {
			out = append(out, models.Post{ID: int64(i + 1), Title: fmt.Sprintf("post %d", i+1)})
		}
		return out, nil
	}
}

func TestLoadNext_PagesUntilExhausted(t *testing.T) {
	var calls []int
	p := NewPager(pagedSource(18, &calls))
	ctx := context.Background()

	wantLens := []int{5, 10, 15, 18}
	for i, wantLen := range wantLens {
		ok, err := p.LoadNext(ctx)
		if err != nil {
			t.Fatalf("page %d: LoadNext error: %v", i, err)
		}
		if !ok {
			t.Fatalf("page %d: LoadNext suppressed; want fetch", i)
		}
		posts, next, _ := p.Snapshot()
		if len(posts) != wantLen {
			t.Fatalf("after page %d: len = %d; want %d", i, len(posts), wantLen)
		}
		if next != i+1 {
			t.Errorf("after page %d: next = %d; want %d", i, next, i+1)
		}
	}

	// The short fourth page latched hasMore false.
	_, _, hasMore := p.Snapshot()
	if hasMore {
		t.Error("hasMore = true after short page; want false")
	}
	ok, err := p.LoadNext(ctx)
	if ok || err != nil {
		t.Errorf("LoadNext after exhaustion = (%v, %v); want (false, nil)", ok, err)
	}
	if got := len(calls); got != 4 {
		t.Errorf("source called %d times; want 4", got)
	}

	// Append order is server order.
	posts, _, _ := p.Snapshot()
	for i, post := range posts {
		if post.ID != int64(i+1) {
			t.Fatalf("posts[%d].ID = %d; want %d", i, post.ID, i+1)
		}
	}
}

func TestLoadNext_SuppressedWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	src := func(ctx context.Context, page, limit int) ([]models.Post, error) {
		close(entered)
		<-release
		return []models.Post{{ID: 1}}, nil
	}
	p := NewPager(src)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = p.LoadNext(context.Background())
	}()
	<-entered

	ok, err := p.LoadNext(context.Background())
	if ok || err != nil {
		t.Errorf("LoadNext while in flight = (%v, %v); want (false, nil)", ok, err)
	}
	ok, err = p.Refresh(context.Background())
	if ok || err != nil {
		t.Errorf("Refresh while in flight = (%v, %v); want (false, nil)", ok, err)
	}

	close(release)
	wg.Wait()
}

func TestLoadNext_Error(t *testing.T) {
	wantErr := errors.New("boom")
	p := NewPager(func(ctx context.Context, page, limit int) ([]models.Post, error) {
		return nil, wantErr
	})

	ok, err := p.LoadNext(context.Background())
	if ok || !errors.Is(err, wantErr) {
		t.Fatalf("LoadNext = (%v, %v); want (false, boom)", ok, err)
	}
	// A failed fetch keeps the cursor so a retry re-requests the page.
	_, next, hasMore := p.Snapshot()
	if next != 0 || !hasMore {
		t.Errorf("after error: next = %d, hasMore = %v; want 0, true", next, hasMore)
	}
	if p.Loading() {
		t.Error("loading stuck true after error")
	}
}

func TestLoadNext_CanceledContextDropsPage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPager(func(ctx context.Context, page, limit int) ([]models.Post, error) {
		cancel()
		return []models.Post{{ID: 1}}, nil
	})

	ok, err := p.LoadNext(ctx)
	if ok || !errors.Is(err, context.Canceled) {
		t.Fatalf("LoadNext = (%v, %v); want (false, context.Canceled)", ok, err)
	}
	posts, _, _ := p.Snapshot()
	if len(posts) != 0 {
		t.Errorf("canceled fetch applied %d posts; want 0", len(posts))
	}
}

func TestRefresh_ReplacesList(t *testing.T) {
	p := NewPager(pagedSource(18, nil))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := p.LoadNext(ctx); err != nil {
			t.Fatal(err)
		}
	}
	posts, _, _ := p.Snapshot()
	if len(posts) != 15 {
		t.Fatalf("len = %d; want 15", len(posts))
	}

	ok, err := p.Refresh(ctx)
	if !ok || err != nil {
		t.Fatalf("Refresh = (%v, %v); want (true, nil)", ok, err)
	}
	posts, next, hasMore := p.Snapshot()
	if len(posts) != 5 || next != 1 || !hasMore {
		t.Errorf("after refresh: len=%d next=%d hasMore=%v; want 5, 1, true", len(posts), next, hasMore)
	}
}

func TestRefresh_ResetsExhaustion(t *testing.T) {
	p := NewPager(pagedSource(3, nil))
	ctx := context.Background()

	if _, err := p.LoadNext(ctx); err != nil {
		t.Fatal(err)
	}
	if _, _, hasMore := p.Snapshot(); hasMore {
		t.Fatal("want exhausted after single short page")
	}

	if _, err := p.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	posts, _, _ := p.Snapshot()
	if len(posts) != 3 {
		t.Errorf("len = %d; want 3", len(posts))
	}
}

func TestRestore(t *testing.T) {
	p := NewPager(pagedSource(18, nil))
	cached := []models.Post{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}
	p.Restore(cached, 1, true)

	posts, next, hasMore := p.Snapshot()
	if len(posts) != 5 || next != 1 || !hasMore {
		t.Fatalf("after restore: len=%d next=%d hasMore=%v; want 5, 1, true", len(posts), next, hasMore)
	}

	if _, err := p.LoadNext(context.Background()); err != nil {
		t.Fatal(err)
	}
	posts, _, _ = p.Snapshot()
	if len(posts) != 10 {
		t.Errorf("len = %d; want 10 (restore continues from page 1)", len(posts))
	}
	if posts[5].ID != 6 {
		t.Errorf("posts[5].ID = %d; want 6", posts[5].ID)
	}
}
