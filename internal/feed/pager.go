// Package feed maintains the append-only, page-fetched post list for
// the home feed: infinite scroll with an in-flight gate, and
// pull-to-refresh that resets pagination.
package feed

import (
	"context"
	"sync"

	"github.com/quickswap/quickswap-cli/internal/models"
)

// PageSize is the fixed page length requested from the backend.
const PageSize = 5

// Source fetches one page of posts. Implemented by the API client;
// tests use func literals.
type Source func(ctx context.Context, page, limit int) ([]models.Post, error)

// Pager owns the feed list and its pagination cursor. All methods are
// safe for concurrent use; at most one fetch is in flight at a time.
type Pager struct {
	mu      sync.Mutex
	src     Source
	posts   []models.Post
	next    int
	hasMore bool
	loading bool
}

// NewPager returns an empty pager that will fetch from page 0.
func NewPager(src Source) *Pager {
	return &Pager{src: src, hasMore: true}
}

// Restore seeds the pager from cached state, e.g. when the feed tab is
// re-entered after a tab switch.
func (p *Pager) Restore(posts []models.Post, nextPage int, hasMore bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.posts = posts
	p.next = nextPage
	p.hasMore = hasMore
}

// Snapshot returns the current list, the next page index and the
// has-more flag.
func (p *Pager) Snapshot() (posts []models.Post, nextPage int, hasMore bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.posts, p.next, p.hasMore
}

// Loading reports whether a fetch is in flight.
func (p *Pager) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// LoadNext fetches the next page when the end of the list is reached.
// It returns false without issuing a request when a fetch is already
// in flight or the feed is exhausted. Page 0 replaces the list; later
// pages append in server order. A short page latches hasMore false
// until Refresh.
func (p *Pager) LoadNext(ctx context.Context) (bool, error) {
	p.mu.Lock()
	if p.loading || !p.hasMore {
		p.mu.Unlock()
		return false, nil
	}
	p.loading = true
	page := p.next
	p.mu.Unlock()

	posts, err := p.src(ctx, page, PageSize)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		return false, err
	}
	if ctx.Err() != nil {
		// The screen that asked for this page is gone.
		return false, ctx.Err()
	}
	if page == 0 {
		p.posts = posts
	} else {
		p.posts = append(p.posts, posts...)
	}
	p.next = page + 1
	if len(posts) < PageSize {
		p.hasMore = false
	}
	return true, nil
}

// Refresh resets pagination and refetches page 0, replacing the list
// regardless of prior content. Suppressed while a fetch is in flight.
func (p *Pager) Refresh(ctx context.Context) (bool, error) {
	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return false, nil
	}
	p.next = 0
	p.hasMore = true
	p.mu.Unlock()
	return p.LoadNext(ctx)
}
