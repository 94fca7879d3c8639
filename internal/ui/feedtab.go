package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickswap/quickswap-cli/internal/feed"
	"github.com/quickswap/quickswap-cli/internal/models"
	"github.com/quickswap/quickswap-cli/internal/store"
)

type feedLoadedMsg struct {
	changed bool
	err     error
}

type savedLoadedMsg struct {
	ids []int64
	err error
}

type bookmarkToggledMsg struct {
	id  int64
	err error
}

// feedTab is the home feed: paginated list, pull-to-refresh, infinite
// scroll. Its pagination state is mirrored into the store so a tab
// switch or a detour through post detail does not refetch.
type feedTab struct {
	app    *App
	pager  *feed.Pager
	cursor int
	errMsg string
	spin   spinner.Model
	ctx    context.Context
	cancel context.CancelFunc
}

func newFeedTab(a *App) *feedTab {
	ctx, cancel := context.WithCancel(context.Background())
	t := &feedTab{
		app:    a,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		ctx:    ctx,
		cancel: cancel,
	}
	t.pager = feed.NewPager(func(ctx context.Context, page, limit int) ([]models.Post, error) {
		return a.deps.api.Posts(ctx, page, limit)
	})
	return t
}

func (t *feedTab) close()        { t.cancel() }
func (t *feedTab) editing() bool { return false }

func (t *feedTab) Init() tea.Cmd {
	cache := t.app.deps.store.State().Nav.Feed
	t.pager.Restore(cache.Posts, cache.Page, cache.HasMore)
	t.cursor = cache.Offset

	cmds := []tea.Cmd{t.loadSavedCmd()}
	if len(cache.Posts) == 0 {
		cmds = append(cmds, t.spin.Tick, t.loadNextCmd())
	}
	return tea.Batch(cmds...)
}

func (t *feedTab) loadSavedCmd() tea.Cmd {
	client := t.app.deps.api
	ctx := t.ctx
	return func() tea.Msg {
		posts, err := client.SavedPosts(ctx)
		if err != nil {
			return savedLoadedMsg{err: err}
		}
		ids := make([]int64, len(posts))
		for i, p := range posts {
			ids[i] = p.ID
		}
		return savedLoadedMsg{ids: ids}
	}
}

func (t *feedTab) loadNextCmd() tea.Cmd {
	ctx := t.ctx
	return func() tea.Msg {
		changed, err := t.pager.LoadNext(ctx)
		return feedLoadedMsg{changed: changed, err: err}
	}
}

func (t *feedTab) refreshCmd() tea.Cmd {
	ctx := t.ctx
	return func() tea.Msg {
		changed, err := t.pager.Refresh(ctx)
		return feedLoadedMsg{changed: changed, err: err}
	}
}

// cache mirrors the pager and cursor into the store.
func (t *feedTab) cache() {
	posts, page, hasMore := t.pager.Snapshot()
	t.app.deps.store.Dispatch(store.CacheFeed{
		Posts: posts, Page: page, HasMore: hasMore, Offset: t.cursor,
	})
}

func (t *feedTab) Update(msg tea.Msg) (tabModel, tea.Cmd) {
	switch msg := msg.(type) {
	case feedLoadedMsg:
		if t.ctx.Err() != nil {
			return t, nil
		}
		if msg.err != nil {
			t.errMsg = errText(msg.err)
			return t, nil
		}
		t.errMsg = ""
		if msg.changed {
			posts, _, _ := t.pager.Snapshot()
			if t.cursor >= len(posts) {
				t.cursor = 0
			}
			t.cache()
		}
		return t, nil

	case savedLoadedMsg:
		if t.ctx.Err() != nil || msg.err != nil {
			return t, nil
		}
		t.app.deps.marks.Replace(msg.ids)
		return t, nil

	case bookmarkToggledMsg:
		// Failure already rolled the set back; just repaint.
		return t, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		t.spin, cmd = t.spin.Update(msg)
		if t.pager.Loading() {
			return t, cmd
		}
		return t, nil

	case tea.KeyMsg:
		posts, _, hasMore := t.pager.Snapshot()
		switch msg.String() {
		case "up", "k":
			if t.cursor > 0 {
				t.cursor--
				t.cache()
			}
		case "down", "j":
			if t.cursor < len(posts)-1 {
				t.cursor++
				t.cache()
				return t, nil
			}
			// End of list reached: infinite scroll.
			if hasMore {
				return t, tea.Batch(t.spin.Tick, t.loadNextCmd())
			}
		case "r":
			t.cursor = 0
			return t, tea.Batch(t.spin.Tick, t.refreshCmd())
		case "b":
			if t.cursor < len(posts) {
				return t, t.toggleCmd(posts[t.cursor].ID)
			}
		case "enter":
			if t.cursor < len(posts) {
				t.app.deps.store.Dispatch(store.OpenPost{Post: posts[t.cursor]})
			}
		}
	}
	return t, nil
}

func (t *feedTab) toggleCmd(id int64) tea.Cmd {
	marks := t.app.deps.marks
	ctx := t.ctx
	return func() tea.Msg {
		err := marks.Toggle(ctx, id)
		return bookmarkToggledMsg{id: id, err: err}
	}
}

func (t *feedTab) View() string {
	s := t.app.styles
	st := t.app.deps.store.State()
	posts, _, hasMore := t.pager.Snapshot()

	var b strings.Builder
	b.WriteString(s.Subtle.Render("Chào mừng quay trở lại,") + "\n")
	b.WriteString(s.Title.Render(st.Session.User.Name+".") + "\n")
	b.WriteString(s.Text.Render("Bài đăng mới") + "\n\n")

	if len(posts) == 0 && t.pager.Loading() {
		b.WriteString(t.spin.View() + s.Subtle.Render(" Đang tải bài đăng..."))
		return b.String()
	}
	if len(posts) == 0 {
		b.WriteString(s.Subtle.Render("Chưa có bài đăng nào."))
		return b.String()
	}

	for i, p := range posts {
		b.WriteString(renderPostCard(s, p, i == t.cursor, t.app.deps.marks.Contains(p.ID)))
		b.WriteString("\n")
	}
	switch {
	case t.pager.Loading():
		b.WriteString(t.spin.View() + s.Subtle.Render(" Đang tải thêm...") + "\n")
	case !hasMore:
		b.WriteString(s.Subtle.Render("— hết bài đăng —") + "\n")
	}
	if t.errMsg != "" {
		b.WriteString(s.Error.Render(t.errMsg) + "\n")
	}
	b.WriteString(s.Help.Render("j/k di chuyển · enter xem · b lưu · r làm mới · n thông báo"))
	return b.String()
}

// renderPostCard is shared by the feed, search and bookmark tabs.
func renderPostCard(s Styles, p models.Post, focused, saved bool) string {
	mark := " "
	if saved {
		mark = "★"
	}
	tags := make([]string, len(p.Tags))
	for i, tag := range p.Tags {
		if tag == "Trao đổi" {
			tags[i] = s.Tag.Render(tag)
		} else {
			tags[i] = s.TagAlt.Render(tag)
		}
	}
	body := fmt.Sprintf("%s %s\n%s · %s\n%s",
		mark, s.Text.Bold(true).Render(p.Title),
		s.Subtle.Render(p.UserName), s.Subtle.Render(p.Time),
		strings.Join(tags, " "),
	)
	if focused {
		return s.CardFocus.Render(body)
	}
	return s.Card.Render(body)
}
