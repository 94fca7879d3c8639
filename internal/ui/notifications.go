package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickswap/quickswap-cli/internal/models"
	"github.com/quickswap/quickswap-cli/internal/store"
)

type notificationsLoadedMsg struct {
	items []models.Notification
	err   error
}

type notificationReadMsg struct {
	id  int64
	err error
}

type notificationsModel struct {
	app     *App
	items   []models.Notification
	cursor  int
	loading bool
	errMsg  string
	spin    spinner.Model
	ctx     context.Context
	cancel  context.CancelFunc
}

func newNotificationsModel(a *App) *notificationsModel {
	ctx, cancel := context.WithCancel(context.Background())
	return &notificationsModel{
		app:    a,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (m *notificationsModel) close() { m.cancel() }

func (m *notificationsModel) Init() tea.Cmd {
	m.loading = true
	client := m.app.deps.api
	ctx := m.ctx
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		items, err := client.Notifications(ctx)
		return notificationsLoadedMsg{items: items, err: err}
	})
}

func (m *notificationsModel) unread() int {
	n := 0
	for _, it := range m.items {
		if !it.Read {
			n++
		}
	}
	return n
}

func (m *notificationsModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case notificationsLoadedMsg:
		m.loading = false
		if m.ctx.Err() != nil {
			return m, nil
		}
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.items = msg.items
		m.app.deps.store.Dispatch(store.SetUnread{Count: m.unread()})
		return m, nil

	case notificationReadMsg:
		if m.ctx.Err() != nil || msg.err != nil {
			return m, nil
		}
		for i := range m.items {
			if m.items[i].ID == msg.id {
				m.items[i].Read = true
			}
		}
		m.app.deps.store.Dispatch(store.SetUnread{Count: m.unread()})
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.loading {
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "n":
			m.app.deps.store.Dispatch(store.CloseNotifications{})
			return m, nil
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			if m.cursor >= len(m.items) || m.items[m.cursor].Read {
				return m, nil
			}
			id := m.items[m.cursor].ID
			client := m.app.deps.api
			ctx := m.ctx
			return m, func() tea.Msg {
				return notificationReadMsg{id: id, err: client.MarkNotificationRead(ctx, id)}
			}
		}
	}
	return m, nil
}

func (m *notificationsModel) View() string {
	s := m.app.styles

	var b strings.Builder
	b.WriteString(s.Title.Render("Thông báo") + "\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spin.View() + s.Subtle.Render(" Đang tải...") + "\n")
	case m.errMsg != "":
		b.WriteString(s.Error.Render(m.errMsg) + "\n")
	case len(m.items) == 0:
		b.WriteString(s.Subtle.Render("Chưa có thông báo nào") + "\n")
	default:
		for i, it := range m.items {
			dot := "  "
			if !it.Read {
				dot = s.Badge.Render("●") + " "
			}
			title := s.Text.Render(it.Title)
			if i == m.cursor {
				title = s.CardFocus.Render(it.Title)
			}
			b.WriteString(dot + title + "\n")
			b.WriteString("  " + s.Subtle.Render(it.Body) + "\n")
			b.WriteString("  " + s.Subtle.Render(it.CreatedAt) + "\n")
		}
	}

	b.WriteString("\n" + s.Help.Render("j/k di chuyển · enter đánh dấu đã đọc · esc quay lại"))
	return b.String()
}
