package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickswap/quickswap-cli/internal/store"
)

type postDeletedMsg struct{ err error }

type interestSentMsg struct{ err error }

// postDetailModel renders one post full screen. The owner can delete
// the post; everyone else can bookmark it, signal interest to the
// author, or jump to the author's profile.
type postDetailModel struct {
	app    *App
	nav    store.PostDetail
	vp     viewport.Model
	note   string
	errMsg string
	ctx    context.Context
	cancel context.CancelFunc
}

func newPostDetailModel(a *App, s store.PostDetail) *postDetailModel {
	ctx, cancel := context.WithCancel(context.Background())
	vp := viewport.New(80, 20)
	return &postDetailModel{app: a, nav: s, vp: vp, ctx: ctx, cancel: cancel}
}

func (m *postDetailModel) close() { m.cancel() }

func (m *postDetailModel) Init() tea.Cmd {
	m.vp.SetContent(m.content())
	return nil
}

func (m *postDetailModel) owned() bool {
	return m.nav.Post.UserID == m.app.deps.store.State().Session.User.ID
}

func (m *postDetailModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height - 6
		m.vp.SetContent(m.content())
		return m, nil

	case postDeletedMsg:
		if m.ctx.Err() != nil {
			return m, nil
		}
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.app.deps.store.Dispatch(store.DropCachedPost{ID: m.nav.Post.ID})
		m.app.deps.store.Dispatch(store.ClosePost{})
		return m, nil

	case interestSentMsg:
		if m.ctx.Err() != nil {
			return m, nil
		}
		if msg.err != nil {
			m.errMsg = errText(msg.err)
		} else {
			m.note = "Đã gửi lời nhắn cho người đăng"
		}
		return m, nil

	case bookmarkToggledMsg:
		if msg.err != nil {
			m.errMsg = "Không thể lưu tin, thử lại sau"
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			m.app.deps.store.Dispatch(store.ClosePost{})
			return m, nil
		case "b":
			id := m.nav.Post.ID
			marks := m.app.deps.marks
			ctx := m.ctx
			return m, func() tea.Msg {
				err := marks.Toggle(ctx, id)
				return bookmarkToggledMsg{id: id, err: err}
			}
		case "d":
			if !m.owned() {
				return m, nil
			}
			client := m.app.deps.api
			id := m.nav.Post.ID
			ctx := m.ctx
			return m, func() tea.Msg {
				return postDeletedMsg{err: client.DeletePost(ctx, id)}
			}
		case "i":
			if m.owned() {
				return m, nil
			}
			client := m.app.deps.api
			p := m.nav.Post
			from := m.app.deps.store.State().Session.User.Name
			ctx := m.ctx
			return m, func() tea.Msg {
				err := client.SendNotification(ctx, p.UserID,
					"Có người quan tâm tin của bạn",
					fmt.Sprintf("%s quan tâm đến \"%s\"", from, p.Title))
				return interestSentMsg{err: err}
			}
		case "u":
			if m.owned() {
				return m, nil
			}
			m.app.deps.store.Dispatch(store.OpenUserProfile{UserID: m.nav.Post.UserID})
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *postDetailModel) content() string {
	s := m.app.styles
	p := m.nav.Post

	var b strings.Builder
	b.WriteString(s.Text.Render(p.UserName) + " " + s.Subtle.Render(p.Time) + "\n\n")
	b.WriteString(s.Text.Render(p.Content) + "\n")
	for _, line := range p.Info {
		b.WriteString(s.Subtle.Render(line) + "\n")
	}
	for _, img := range p.Images {
		b.WriteString(s.Subtle.Render("🖼 "+img) + "\n")
	}
	if p.UserEmail != "" || p.UserPhone != "" {
		b.WriteString("\n" + s.Subtle.Render("Liên hệ: "+p.UserEmail+" "+p.UserPhone) + "\n")
	}
	return b.String()
}

func (m *postDetailModel) View() string {
	s := m.app.styles
	p := m.nav.Post

	var b strings.Builder
	b.WriteString(s.Title.Render(p.Title))
	if m.app.deps.marks.Contains(p.ID) {
		b.WriteString(" " + s.Tag.Render("★ Đã lưu"))
	}
	b.WriteString("\n")
	tags := make([]string, len(p.Tags))
	for i, tag := range p.Tags {
		if tag == "Trao đổi" {
			tags[i] = s.Tag.Render(tag)
		} else {
			tags[i] = s.TagAlt.Render(tag)
		}
	}
	b.WriteString(strings.Join(tags, " ") + "\n")
	b.WriteString(m.vp.View() + "\n")

	if m.errMsg != "" {
		b.WriteString(s.Error.Render(m.errMsg) + "\n")
	}
	if m.note != "" {
		b.WriteString(s.Success.Render(m.note) + "\n")
	}
	if m.owned() {
		b.WriteString(s.Help.Render("b lưu · d xóa tin · esc quay lại"))
	} else {
		b.WriteString(s.Help.Render("b lưu · i quan tâm · u người đăng · esc quay lại"))
	}
	return b.String()
}
