package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickswap/quickswap-cli/internal/models"
	"github.com/quickswap/quickswap-cli/internal/store"
)

type searchResultMsg struct {
	posts []models.Post
	err   error
}

var filterTags = []string{"", "Trao đổi", "Miễn phí", "Cho mượn"}

// searchTab is the grid/search view: keyword search plus tag filter.
type searchTab struct {
	app     *App
	input   textinput.Model
	typing  bool
	filter  int
	results []models.Post
	cursor  int
	fetched bool
	busy    bool
	errMsg  string
	spin    spinner.Model
	ctx     context.Context
	cancel  context.CancelFunc
}

func newSearchTab(a *App) *searchTab {
	in := textinput.New()
	in.Placeholder = "Tìm đồ dùng, sách, phụ kiện..."
	in.CharLimit = 100

	ctx, cancel := context.WithCancel(context.Background())
	return &searchTab{
		app:    a,
		input:  in,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (t *searchTab) close()        { t.cancel() }
func (t *searchTab) editing() bool { return t.typing }

func (t *searchTab) Init() tea.Cmd { return nil }

func (t *searchTab) searchCmd() tea.Cmd {
	client := t.app.deps.api
	ctx := t.ctx
	keyword := t.input.Value()
	tag := filterTags[t.filter]
	t.busy = true
	return tea.Batch(t.spin.Tick, func() tea.Msg {
		var (
			posts []models.Post
			err   error
		)
		if tag != "" {
			posts, err = client.FilterPosts(ctx, tag)
		} else {
			posts, err = client.SearchPosts(ctx, keyword)
		}
		return searchResultMsg{posts: posts, err: err}
	})
}

func (t *searchTab) Update(msg tea.Msg) (tabModel, tea.Cmd) {
	switch msg := msg.(type) {
	case searchResultMsg:
		t.busy = false
		if t.ctx.Err() != nil {
			return t, nil
		}
		if msg.err != nil {
			t.errMsg = errText(msg.err)
			return t, nil
		}
		t.errMsg = ""
		t.results = msg.posts
		t.cursor = 0
		t.fetched = true
		return t, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		t.spin, cmd = t.spin.Update(msg)
		if t.busy {
			return t, cmd
		}
		return t, nil

	case tea.KeyMsg:
		if t.typing {
			switch msg.String() {
			case "esc":
				t.typing = false
				t.input.Blur()
			case "enter":
				t.typing = false
				t.input.Blur()
				t.filter = 0
				return t, t.searchCmd()
			default:
				var cmd tea.Cmd
				t.input, cmd = t.input.Update(msg)
				return t, cmd
			}
			return t, nil
		}
		switch msg.String() {
		case "/":
			t.typing = true
			return t, t.input.Focus()
		case "f":
			t.filter = (t.filter + 1) % len(filterTags)
			return t, t.searchCmd()
		case "up", "k":
			if t.cursor > 0 {
				t.cursor--
			}
		case "down", "j":
			if t.cursor < len(t.results)-1 {
				t.cursor++
			}
		case "b":
			if t.cursor < len(t.results) {
				id := t.results[t.cursor].ID
				marks := t.app.deps.marks
				ctx := t.ctx
				return t, func() tea.Msg {
					err := marks.Toggle(ctx, id)
					return bookmarkToggledMsg{id: id, err: err}
				}
			}
		case "enter":
			if t.cursor < len(t.results) {
				t.app.deps.store.Dispatch(store.OpenPost{Post: t.results[t.cursor]})
			}
		}
	}
	return t, nil
}

func (t *searchTab) View() string {
	s := t.app.styles
	var b strings.Builder
	b.WriteString(s.Title.Render("Tìm kiếm") + "\n")
	b.WriteString(t.input.View() + "\n")

	label := "Tất cả"
	if filterTags[t.filter] != "" {
		label = filterTags[t.filter]
	}
	b.WriteString(s.Subtle.Render("Bộ lọc: ") + s.Tag.Render(label) + "\n\n")

	switch {
	case t.busy:
		b.WriteString(t.spin.View() + s.Subtle.Render(" Đang tìm...") + "\n")
	case t.errMsg != "":
		b.WriteString(s.Error.Render(t.errMsg) + "\n")
	case t.fetched && len(t.results) == 0:
		b.WriteString(s.Subtle.Render("Không tìm thấy bài đăng phù hợp.") + "\n")
	default:
		for i, p := range t.results {
			b.WriteString(renderPostCard(s, p, i == t.cursor, t.app.deps.marks.Contains(p.ID)))
			b.WriteString("\n")
		}
	}
	b.WriteString(s.Help.Render("/ nhập từ khóa · f đổi bộ lọc · enter xem · b lưu"))
	return b.String()
}
