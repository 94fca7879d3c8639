package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickswap/quickswap-cli/internal/models"
	"github.com/quickswap/quickswap-cli/internal/store"
)

type savedPostsMsg struct {
	posts []models.Post
	err   error
}

// bookmarksTab lists the user's saved posts.
type bookmarksTab struct {
	app    *App
	posts  []models.Post
	cursor int
	loaded bool
	busy   bool
	errMsg string
	spin   spinner.Model
	ctx    context.Context
	cancel context.CancelFunc
}

func newBookmarksTab(a *App) *bookmarksTab {
	ctx, cancel := context.WithCancel(context.Background())
	return &bookmarksTab{
		app:    a,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (t *bookmarksTab) close()        { t.cancel() }
func (t *bookmarksTab) editing() bool { return false }

func (t *bookmarksTab) Init() tea.Cmd {
	return t.reload()
}

func (t *bookmarksTab) reload() tea.Cmd {
	t.busy = true
	client := t.app.deps.api
	ctx := t.ctx
	return tea.Batch(t.spin.Tick, func() tea.Msg {
		posts, err := client.SavedPosts(ctx)
		return savedPostsMsg{posts: posts, err: err}
	})
}

func (t *bookmarksTab) Update(msg tea.Msg) (tabModel, tea.Cmd) {
	switch msg := msg.(type) {
	case savedPostsMsg:
		t.busy = false
		if t.ctx.Err() != nil {
			return t, nil
		}
		if msg.err != nil {
			t.errMsg = errText(msg.err)
			return t, nil
		}
		t.errMsg = ""
		t.posts = msg.posts
		t.loaded = true
		if t.cursor >= len(t.posts) {
			t.cursor = 0
		}
		ids := make([]int64, len(msg.posts))
		for i, p := range msg.posts {
			ids[i] = p.ID
		}
		t.app.deps.marks.Replace(ids)
		return t, nil

	case bookmarkToggledMsg:
		if msg.err != nil {
			// Rolled back; restore the row.
			return t, t.reload()
		}
		return t, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		t.spin, cmd = t.spin.Update(msg)
		if t.busy {
			return t, cmd
		}
		return t, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if t.cursor > 0 {
				t.cursor--
			}
		case "down", "j":
			if t.cursor < len(t.posts)-1 {
				t.cursor++
			}
		case "r":
			return t, t.reload()
		case "b":
			if t.cursor < len(t.posts) {
				id := t.posts[t.cursor].ID
				// Optimistic: drop the row now, reconcile behind.
				t.posts = append(t.posts[:t.cursor], t.posts[t.cursor+1:]...)
				if t.cursor >= len(t.posts) && t.cursor > 0 {
					t.cursor--
				}
				marks := t.app.deps.marks
				ctx := t.ctx
				return t, func() tea.Msg {
					err := marks.Toggle(ctx, id)
					return bookmarkToggledMsg{id: id, err: err}
				}
			}
		case "enter":
			if t.cursor < len(t.posts) {
				t.app.deps.store.Dispatch(store.OpenPost{Post: t.posts[t.cursor]})
			}
		}
	}
	return t, nil
}

func (t *bookmarksTab) View() string {
	s := t.app.styles
	var b strings.Builder
	b.WriteString(s.Title.Render("BÀI ĐĂNG ĐÃ LƯU") + "\n")

	switch {
	case t.busy && !t.loaded:
		b.WriteString(t.spin.View() + s.Subtle.Render(" Đang tải..."))
		return b.String()
	case t.errMsg != "":
		b.WriteString(s.Error.Render(t.errMsg) + "\n")
	case len(t.posts) == 0:
		b.WriteString(s.Subtle.Render("Chưa có bài đăng nào được lưu.") + "\n")
	default:
		for i, p := range t.posts {
			b.WriteString(renderPostCard(s, p, i == t.cursor, true))
			b.WriteString("\n")
		}
	}
	b.WriteString(s.Help.Render("j/k di chuyển · enter xem · b bỏ lưu · r làm mới"))
	return b.String()
}
