package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickswap/quickswap-cli/internal/api"
	"github.com/quickswap/quickswap-cli/internal/store"
	"github.com/quickswap/quickswap-cli/internal/validate"
)

type loginResultMsg struct {
	resp api.LoginResponse
	err  error
}

const (
	loginFocusEmail = iota
	loginFocusPassword
	loginFocusSubmit
	loginFocusForgot
	loginFocusRegister
	loginFocusCount
)

type loginModel struct {
	app     *App
	email   textinput.Model
	pass    textinput.Model
	focus   int
	errMsg  string
	busy    bool
	spin    spinner.Model
	ctx     context.Context
	cancel  context.CancelFunc
}

func newLoginModel(a *App) *loginModel {
	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 100
	email.Focus()

	pass := textinput.New()
	pass.Placeholder = "Mật khẩu"
	pass.EchoMode = textinput.EchoPassword
	pass.CharLimit = 100

	ctx, cancel := context.WithCancel(context.Background())
	return &loginModel{
		app:    a,
		email:  email,
		pass:   pass,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (m *loginModel) close() { m.cancel() }

func (m *loginModel) Init() tea.Cmd { return textinput.Blink }

func (m *loginModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.busy = false
		if m.ctx.Err() != nil {
			return m, nil
		}
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.app.deps.store.Dispatch(store.LoginSucceeded{Token: msg.resp.Token, User: msg.resp.User})
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
		case "tab", "down":
			m.setFocus((m.focus + 1) % loginFocusCount)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + loginFocusCount - 1) % loginFocusCount)
			return m, nil
		case "enter":
			switch m.focus {
			case loginFocusForgot:
				m.app.deps.store.Dispatch(store.GoForgotPassword{})
				return m, nil
			case loginFocusRegister:
				m.app.deps.store.Dispatch(store.GoRegister{})
				return m, nil
			default:
				return m, m.submit()
			}
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case loginFocusEmail:
		m.email, cmd = m.email.Update(msg)
	case loginFocusPassword:
		m.pass, cmd = m.pass.Update(msg)
	}
	return m, cmd
}

func (m *loginModel) setFocus(f int) {
	m.focus = f
	m.email.Blur()
	m.pass.Blur()
	switch f {
	case loginFocusEmail:
		m.email.Focus()
	case loginFocusPassword:
		m.pass.Focus()
	}
}

// submit validates locally first; an invalid form never issues the
// network call.
func (m *loginModel) submit() tea.Cmd {
	form := validate.Form{
		Email:         m.email.Value(),
		Password:      m.pass.Value(),
		CheckEmail:    true,
		CheckPassword: true,
	}
	if msg := form.FirstError(); msg != "" {
		m.errMsg = msg
		return nil
	}
	m.errMsg = ""
	m.busy = true

	client := m.app.deps.api
	ctx := m.ctx
	email, pass := m.email.Value(), m.pass.Value()
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		resp, err := client.Login(ctx, email, pass)
		return loginResultMsg{resp: resp, err: err}
	})
}

func (m *loginModel) View() string {
	s := m.app.styles
	var b strings.Builder
	b.WriteString(s.logo() + "\n\n")
	b.WriteString(s.Title.Render("Đăng nhập") + "\n")
	b.WriteString(m.email.View() + "\n")
	b.WriteString(m.pass.View() + "\n\n")

	if m.busy {
		b.WriteString(m.spin.View() + s.Subtle.Render(" Đang đăng nhập...") + "\n")
	} else {
		b.WriteString(focusable(s, "[ Đăng nhập ]", m.focus == loginFocusSubmit) + "  ")
		b.WriteString(focusable(s, "Quên mật khẩu?", m.focus == loginFocusForgot) + "  ")
		b.WriteString(focusable(s, "Đăng ký", m.focus == loginFocusRegister) + "\n")
	}
	if m.errMsg != "" {
		b.WriteString(s.Error.Render(m.errMsg) + "\n")
	}
	b.WriteString(s.Help.Render("tab chuyển trường · enter chọn"))
	return b.String()
}

// focusable renders a link/button with focus highlighting.
func focusable(s Styles, label string, focused bool) string {
	if focused {
		return s.Button.Render(label)
	}
	return s.Subtle.Render(label)
}

// errText extracts the user-facing message from an API error.
func errText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Không thể kết nối tới máy chủ"
}
