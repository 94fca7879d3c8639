package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickswap/quickswap-cli/internal/store"
	"github.com/quickswap/quickswap-cli/internal/validate"
)

type otpResultMsg struct {
	otp string
	err error
}

type otpResendMsg struct{ err error }

// otpModel renders six one-digit cells. Typing fills the current cell
// and advances; backspace clears backwards.
type otpModel struct {
	app    *App
	nav    store.Otp
	cells  [6]rune
	pos    int
	errMsg string
	note   string
	busy   bool
	spin   spinner.Model
	ctx    context.Context
	cancel context.CancelFunc
}

func newOtpModel(a *App, nav store.Otp) *otpModel {
	ctx, cancel := context.WithCancel(context.Background())
	return &otpModel{
		app:    a,
		nav:    nav,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (m *otpModel) close() { m.cancel() }

func (m *otpModel) Init() tea.Cmd { return nil }

func (m *otpModel) code() string {
	var b strings.Builder
	for _, r := range m.cells {
		if r != 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (m *otpModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case otpResultMsg:
		m.busy = false
		if m.ctx.Err() != nil {
			return m, nil
		}
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.app.deps.store.Dispatch(store.OtpVerified{Otp: msg.otp})
		return m, nil

	case otpResendMsg:
		m.busy = false
		if m.ctx.Err() != nil {
			return m, nil
		}
		if msg.err != nil {
			m.errMsg = errText(msg.err)
		} else {
			m.note = "Đã gửi lại mã OTP"
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		key := msg.String()
		switch {
		case key == "esc":
			m.app.deps.store.Dispatch(store.OtpBack{})
		case key == "enter":
			return m, m.verify()
		case key == "r":
			return m, m.resend()
		case key == "backspace":
			if m.pos > 0 && m.cells[m.pos] == 0 {
				m.pos--
			}
			m.cells[m.pos] = 0
		case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
			m.cells[m.pos] = rune(key[0])
			if m.pos < len(m.cells)-1 {
				m.pos++
			}
		}
	}
	return m, nil
}

// verify blocks submission until all six cells are filled.
func (m *otpModel) verify() tea.Cmd {
	code := m.code()
	if !validate.Otp(code) {
		m.errMsg = validate.MsgOtpIncomplete
		return nil
	}
	m.errMsg = ""
	m.note = ""
	m.busy = true

	client := m.app.deps.api
	ctx := m.ctx
	email := m.nav.Email
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		_, err := client.CheckOtp(ctx, email, code)
		return otpResultMsg{otp: code, err: err}
	})
}

func (m *otpModel) resend() tea.Cmd {
	m.errMsg = ""
	m.note = ""
	m.busy = true
	client := m.app.deps.api
	ctx := m.ctx
	email := m.nav.Email
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		_, err := client.ResendOtp(ctx, email)
		return otpResendMsg{err: err}
	})
}

func (m *otpModel) View() string {
	s := m.app.styles
	var b strings.Builder
	b.WriteString(s.logo() + "\n\n")
	b.WriteString(s.Title.Render("Nhập mã OTP") + "\n")
	b.WriteString(s.Subtle.Render("Mã xác minh đã được gửi tới "+m.nav.Email) + "\n\n")

	cells := make([]string, len(m.cells))
	for i, r := range m.cells {
		v := " "
		if r != 0 {
			v = string(r)
		}
		cell := s.Card.Render(v)
		if i == m.pos {
			cell = s.CardFocus.Render(v)
		}
		cells[i] = cell
	}
	b.WriteString(joinHorizontal(cells) + "\n")

	if m.busy {
		b.WriteString(m.spin.View() + s.Subtle.Render(" Đang xác minh...") + "\n")
	}
	if m.errMsg != "" {
		b.WriteString(s.Error.Render(m.errMsg) + "\n")
	}
	if m.note != "" {
		b.WriteString(s.Success.Render(m.note) + "\n")
	}
	b.WriteString(s.Help.Render("0-9 nhập · enter xác minh · r gửi lại · esc quay lại"))
	return b.String()
}
