package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickswap/quickswap-cli/internal/models"
	"github.com/quickswap/quickswap-cli/internal/store"
)

type userProfileLoadedMsg struct {
	user    models.User
	ratings []models.Rating
	summary models.RatingSummary
	err     error
}

type ratingSentMsg struct{ err error }

// userProfileModel shows another user's public profile with their
// received ratings, and lets the viewer leave a rating.
type userProfileModel struct {
	app *App
	nav store.UserProfile

	user    models.User
	ratings []models.Rating
	summary models.RatingSummary

	rating  bool
	stars   int
	comment textinput.Model

	loading bool
	errMsg  string
	note    string
	spin    spinner.Model
	ctx     context.Context
	cancel  context.CancelFunc
}

func newUserProfileModel(a *App, s store.UserProfile) *userProfileModel {
	ctx, cancel := context.WithCancel(context.Background())
	in := textinput.New()
	in.Placeholder = "Nhận xét (tùy chọn)"
	in.CharLimit = 200
	return &userProfileModel{
		app:     a,
		nav:     s,
		stars:   5,
		comment: in,
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (m *userProfileModel) close() { m.cancel() }

func (m *userProfileModel) loadCmd() tea.Cmd {
	m.loading = true
	client := m.app.deps.api
	id := m.nav.UserID
	ctx := m.ctx
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		user, err := client.UserByID(ctx, id)
		if err != nil {
			return userProfileLoadedMsg{err: err}
		}
		ratings, err := client.UserRatings(ctx, id)
		if err != nil {
			return userProfileLoadedMsg{err: err}
		}
		summary, err := client.RatingSummary(ctx, id)
		if err != nil {
			return userProfileLoadedMsg{err: err}
		}
		return userProfileLoadedMsg{user: user, ratings: ratings, summary: summary}
	})
}

func (m *userProfileModel) Init() tea.Cmd { return m.loadCmd() }

func (m *userProfileModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case userProfileLoadedMsg:
		m.loading = false
		if m.ctx.Err() != nil {
			return m, nil
		}
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.user = msg.user
		m.ratings = msg.ratings
		m.summary = msg.summary
		return m, nil

	case ratingSentMsg:
		if m.ctx.Err() != nil {
			return m, nil
		}
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.rating = false
		m.note = "Đã gửi đánh giá"
		return m, m.loadCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.loading {
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.rating {
			return m.updateRating(msg)
		}
		switch msg.String() {
		case "esc", "q":
			m.app.deps.store.Dispatch(store.CloseUserProfile{})
			return m, nil
		case "r":
			m.rating = true
			m.errMsg = ""
			m.note = ""
			m.comment.Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m *userProfileModel) updateRating(msg tea.KeyMsg) (screenModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.rating = false
		m.comment.Blur()
		return m, nil
	case "left":
		if m.stars > 1 {
			m.stars--
		}
		return m, nil
	case "right":
		if m.stars < 5 {
			m.stars++
		}
		return m, nil
	case "enter":
		client := m.app.deps.api
		id := m.nav.UserID
		stars := m.stars
		comment := m.comment.Value()
		ctx := m.ctx
		return m, func() tea.Msg {
			return ratingSentMsg{err: client.RateUser(ctx, id, stars, comment)}
		}
	}
	var cmd tea.Cmd
	m.comment, cmd = m.comment.Update(msg)
	return m, cmd
}

func (m *userProfileModel) View() string {
	s := m.app.styles

	var b strings.Builder
	b.WriteString(s.Title.Render("Hồ sơ người đăng") + "\n\n")

	if m.loading {
		b.WriteString(m.spin.View() + s.Subtle.Render(" Đang tải...") + "\n")
		return b.String()
	}
	if m.errMsg != "" && m.user.ID == 0 {
		b.WriteString(s.Error.Render(m.errMsg) + "\n")
		b.WriteString(s.Help.Render("esc quay lại"))
		return b.String()
	}

	b.WriteString(s.Text.Render(m.user.Name) + " " + s.Subtle.Render(m.user.Handle) + "\n")
	b.WriteString(s.Subtle.Render(m.user.University) + "\n")
	b.WriteString(s.Text.Render(fmt.Sprintf("%.1f ★ (%d đánh giá)", m.summary.Average, m.summary.Count)) + "\n\n")

	if len(m.ratings) == 0 {
		b.WriteString(s.Subtle.Render("Chưa có đánh giá nào") + "\n")
	}
	for _, r := range m.ratings {
		b.WriteString(s.Text.Render(strings.Repeat("★", r.Stars)) + " " + s.Subtle.Render(r.RaterName) + "\n")
		if r.Comment != "" {
			b.WriteString("  " + s.Subtle.Render(r.Comment) + "\n")
		}
	}

	if m.rating {
		b.WriteString("\n" + s.Text.Render("Đánh giá: "+strings.Repeat("★", m.stars)+strings.Repeat("☆", 5-m.stars)) + "\n")
		b.WriteString(m.comment.View() + "\n")
		b.WriteString(s.Help.Render("←/→ chọn sao · enter gửi · esc hủy"))
		return b.String()
	}

	if m.errMsg != "" {
		b.WriteString(s.Error.Render(m.errMsg) + "\n")
	}
	if m.note != "" {
		b.WriteString(s.Success.Render(m.note) + "\n")
	}
	b.WriteString("\n" + s.Help.Render("r đánh giá · esc quay lại"))
	return b.String()
}
