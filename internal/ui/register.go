package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickswap/quickswap-cli/internal/api"
	"github.com/quickswap/quickswap-cli/internal/store"
	"github.com/quickswap/quickswap-cli/internal/validate"
)

type registerResultMsg struct {
	email string
	err   error
}

type registerModel struct {
	app    *App
	inputs []textinput.Model
	focus  int
	errMsg string
	busy   bool
	spin   spinner.Model
	ctx    context.Context
	cancel context.CancelFunc
}

func newRegisterModel(a *App) *registerModel {
	mk := func(placeholder string, secret bool) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 100
		if secret {
			in.EchoMode = textinput.EchoPassword
		}
		return in
	}
	inputs := []textinput.Model{
		mk("Họ và tên", false),
		mk("Email", false),
		mk("Mật khẩu", true),
		mk("Xác nhận mật khẩu", true),
	}
	inputs[0].Focus()

	ctx, cancel := context.WithCancel(context.Background())
	return &registerModel{
		app:    a,
		inputs: inputs,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (m *registerModel) close() { m.cancel() }

func (m *registerModel) Init() tea.Cmd { return textinput.Blink }

func (m *registerModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		m.busy = false
		if m.ctx.Err() != nil {
			return m, nil
		}
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.app.deps.store.Dispatch(store.RegisterSubmitted{Email: msg.email})
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
		case "tab", "down":
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
			return m, nil
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *registerModel) setFocus(f int) {
	m.inputs[m.focus].Blur()
	m.focus = f
	m.inputs[f].Focus()
}

func (m *registerModel) submit() tea.Cmd {
	form := validate.Form{
		Name:          m.inputs[0].Value(),
		Email:         m.inputs[1].Value(),
		Password:      m.inputs[2].Value(),
		Confirm:       m.inputs[3].Value(),
		CheckName:     true,
		CheckEmail:    true,
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
	req := api.RegisterRequest{
		FullName:        form.Name,
		Email:           form.Email,
		Password:        form.Password,
		ConfirmPassword: form.Confirm,
	}
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		err := client.Register(ctx, req)
		return registerResultMsg{email: req.Email, err: err}
	})
}

func (m *registerModel) View() string {
	s := m.app.styles
	var b strings.Builder
	b.WriteString(s.logo() + "\n\n")
	b.WriteString(s.Title.Render("Tạo tài khoản") + "\n")
	for _, in := range m.inputs {
		b.WriteString(in.View() + "\n")
	}
	b.WriteString("\n")
	if m.busy {
		b.WriteString(m.spin.View() + s.Subtle.Render(" Đang đăng ký...") + "\n")
	}
	if m.errMsg != "" {
		b.WriteString(s.Error.Render(m.errMsg) + "\n")
	}
	b.WriteString(s.Help.Render("enter tiếp tục · esc về đăng nhập"))
	return b.String()
}
