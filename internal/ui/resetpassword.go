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

type resetResultMsg struct{ err error }

type resetPasswordModel struct {
	app     *App
	nav     store.ResetPassword
	pass    textinput.Model
	confirm textinput.Model
	focus   int
	errMsg  string
	busy    bool
	spin    spinner.Model
	ctx     context.Context
	cancel  context.CancelFunc
}

func newResetPasswordModel(a *App, nav store.ResetPassword) *resetPasswordModel {
	pass := textinput.New()
	pass.Placeholder = "Mật khẩu mới"
	pass.EchoMode = textinput.EchoPassword
	pass.CharLimit = 100
	pass.Focus()

	confirm := textinput.New()
	confirm.Placeholder = "Xác nhận mật khẩu mới"
	confirm.EchoMode = textinput.EchoPassword
	confirm.CharLimit = 100

	ctx, cancel := context.WithCancel(context.Background())
	return &resetPasswordModel{
		app:     a,
		nav:     nav,
		pass:    pass,
		confirm: confirm,
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (m *resetPasswordModel) close() { m.cancel() }

func (m *resetPasswordModel) Init() tea.Cmd { return textinput.Blink }

func (m *resetPasswordModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case resetResultMsg:
		m.busy = false
		if m.ctx.Err() != nil {
			return m, nil
		}
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.app.deps.store.Dispatch(store.ResetFinished{})
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
		case "tab", "down", "shift+tab", "up":
			if m.focus == 0 {
				m.focus = 1
				m.pass.Blur()
				m.confirm.Focus()
			} else {
				m.focus = 0
				m.confirm.Blur()
				m.pass.Focus()
			}
			return m, nil
		case "enter":
			if m.focus == 0 {
				m.focus = 1
				m.pass.Blur()
				m.confirm.Focus()
				return m, nil
			}
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.pass, cmd = m.pass.Update(msg)
	} else {
		m.confirm, cmd = m.confirm.Update(msg)
	}
	return m, cmd
}

func (m *resetPasswordModel) submit() tea.Cmd {
	form := validate.Form{
		Password:      m.pass.Value(),
		Confirm:       m.confirm.Value(),
		CheckPassword: true,
		CheckConfirm:  true,
	}
	if msg := form.FirstError(); msg != "" {
		m.errMsg = msg
		return nil
	}
	m.errMsg = ""
	m.busy = true

	client := m.app.deps.api
	ctx := m.ctx
	email, otp, pass := m.nav.Email, m.nav.Otp, m.pass.Value()
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		_, err := client.ResetPassword(ctx, email, otp, pass)
		return resetResultMsg{err: err}
	})
}

func (m *resetPasswordModel) View() string {
	s := m.app.styles
	var b strings.Builder
	b.WriteString(s.logo() + "\n\n")
	b.WriteString(s.Title.Render("Đặt lại mật khẩu") + "\n")
	b.WriteString(m.pass.View() + "\n")
	b.WriteString(m.confirm.View() + "\n\n")
	if m.busy {
		b.WriteString(m.spin.View() + s.Subtle.Render(" Đang cập nhật...") + "\n")
	}
	if m.errMsg != "" {
		b.WriteString(s.Error.Render(m.errMsg) + "\n")
	}
	b.WriteString(s.Help.Render("enter hoàn tất"))
	return b.String()
}
