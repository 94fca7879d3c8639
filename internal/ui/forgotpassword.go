package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickswap/quickswap-cli/internal/store"
	"github.com/quickswap/quickswap-cli/internal/validate"
)

type forgotResultMsg struct {
	email string
	err   error
}

type forgotPasswordModel struct {
	app    *App
	email  textinput.Model
	errMsg string
	busy   bool
	spin   spinner.Model
	ctx    context.Context
	cancel context.CancelFunc
}

func newForgotPasswordModel(a *App) *forgotPasswordModel {
	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 100
	email.Focus()

	ctx, cancel := context.WithCancel(context.Background())
	return &forgotPasswordModel{
		app:    a,
		email:  email,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (m *forgotPasswordModel) close() { m.cancel() }

func (m *forgotPasswordModel) Init() tea.Cmd { return textinput.Blink }

func (m *forgotPasswordModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case forgotResultMsg:
		m.busy = false
		if m.ctx.Err() != nil {
			return m, nil
		}
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.app.deps.store.Dispatch(store.ForgotSubmitted{Email: msg.email})
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			m.app.deps.store.Dispatch(store.GoLogin{})
			return m, nil
		case "enter":
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	return m, cmd
}

func (m *forgotPasswordModel) submit() tea.Cmd {
	form := validate.Form{Email: m.email.Value(), CheckEmail: true}
	if msg := form.FirstError(); msg != "" {
		m.errMsg = msg
		return nil
	}
	m.errMsg = ""
	m.busy = true

	client := m.app.deps.api
	ctx := m.ctx
	email := m.email.Value()
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		_, err := client.ForgotPassword(ctx, email)
		return forgotResultMsg{email: email, err: err}
	})
}

func (m *forgotPasswordModel) View() string {
	s := m.app.styles
	var b strings.Builder
	b.WriteString(s.logo() + "\n\n")
	b.WriteString(s.Title.Render("Quên mật khẩu") + "\n")
	b.WriteString(s.Subtle.Render("Nhập email để nhận mã OTP đặt lại mật khẩu.") + "\n\n")
	b.WriteString(m.email.View() + "\n\n")
	if m.busy {
		b.WriteString(m.spin.View() + s.Subtle.Render(" Đang gửi OTP...") + "\n")
	}
	if m.errMsg != "" {
		b.WriteString(s.Error.Render(m.errMsg) + "\n")
	}
	b.WriteString(s.Help.Render("enter gửi mã · esc về đăng nhập"))
	return b.String()
}
