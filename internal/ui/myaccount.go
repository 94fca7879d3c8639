package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickswap/quickswap-cli/internal/api"
	"github.com/quickswap/quickswap-cli/internal/models"
	"github.com/quickswap/quickswap-cli/internal/store"
)

type accountSavedMsg struct {
	user models.User
	err  error
}

// myAccountModel is the complete-your-profile gate shown after a login
// with missing profile fields. The home screen is unreachable until
// every field is filled and saved.
type myAccountModel struct {
	app    *App
	inputs []textinput.Model
	focus  int
	errMsg string
	busy   bool
	spin   spinner.Model
	ctx    context.Context
	cancel context.CancelFunc
}

var accountFieldLabels = []string{
	"Họ và tên", "Tên người dùng", "Số điện thoại", "Trường", "Địa chỉ",
}

func newMyAccountModel(a *App) *myAccountModel {
	ctx, cancel := context.WithCancel(context.Background())
	u := a.deps.store.State().Session.User
	values := []string{u.Name, u.Username, u.Phone, u.University, u.Address}

	inputs := make([]textinput.Model, len(accountFieldLabels)+1)
	for i, label := range accountFieldLabels {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 120
		in.SetValue(values[i])
		inputs[i] = in
	}
	avatar := textinput.New()
	avatar.Placeholder = "Đường dẫn ảnh đại diện (tùy chọn)"
	avatar.CharLimit = 255
	inputs[len(accountFieldLabels)] = avatar
	inputs[0].Focus()

	return &myAccountModel{
		app:    a,
		inputs: inputs,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (m *myAccountModel) close() { m.cancel() }

func (m *myAccountModel) Init() tea.Cmd { return textinput.Blink }

func (m *myAccountModel) firstEmpty() int {
	for i := range accountFieldLabels {
		if strings.TrimSpace(m.inputs[i].Value()) == "" {
			return i
		}
	}
	return -1
}

func (m *myAccountModel) saveCmd() tea.Cmd {
	m.busy = true
	client := m.app.deps.api
	ctx := m.ctx
	req := api.UpdateProfileRequest{
		Name:       strings.TrimSpace(m.inputs[0].Value()),
		Username:   strings.TrimSpace(m.inputs[1].Value()),
		Phone:      strings.TrimSpace(m.inputs[2].Value()),
		University: strings.TrimSpace(m.inputs[3].Value()),
		Address:    strings.TrimSpace(m.inputs[4].Value()),
	}
	avatarPath := strings.TrimSpace(m.inputs[5].Value())
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		if avatarPath != "" {
			url, err := client.UploadImage(ctx, avatarPath)
			if err != nil {
				return accountSavedMsg{err: err}
			}
			req.AvatarURL = url
		}
		user, err := client.UpdateMe(ctx, req)
		return accountSavedMsg{user: user, err: err}
	})
}

func (m *myAccountModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case accountSavedMsg:
		m.busy = false
		if m.ctx.Err() != nil {
			return m, nil
		}
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.app.deps.store.Dispatch(store.ProfileCompleted{User: msg.user})
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.busy {
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			m.app.deps.store.Dispatch(store.Logout{})
			return m, nil
		case "tab", "down":
			m.inputs[m.focus].Blur()
			m.focus = (m.focus + 1) % len(m.inputs)
			m.inputs[m.focus].Focus()
			return m, nil
		case "shift+tab", "up":
			m.inputs[m.focus].Blur()
			m.focus = (m.focus + len(m.inputs) - 1) % len(m.inputs)
			m.inputs[m.focus].Focus()
			return m, nil
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.inputs[m.focus].Blur()
				m.focus++
				m.inputs[m.focus].Focus()
				return m, nil
			}
			if i := m.firstEmpty(); i >= 0 {
				m.errMsg = "Vui lòng nhập " + strings.ToLower(accountFieldLabels[i])
				return m, nil
			}
			m.errMsg = ""
			return m, m.saveCmd()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *myAccountModel) View() string {
	s := m.app.styles

	var b strings.Builder
	b.WriteString(s.logo() + "\n")
	b.WriteString(s.Title.Render("Hoàn thiện hồ sơ") + "\n")
	b.WriteString(s.Subtle.Render("Điền đủ thông tin để bắt đầu trao đổi") + "\n\n")
	for _, in := range m.inputs {
		b.WriteString(in.View() + "\n")
	}
	b.WriteString("\n")
	if m.busy {
		b.WriteString(m.spin.View() + s.Subtle.Render(" Đang lưu...") + "\n")
	}
	if m.errMsg != "" {
		b.WriteString(s.Error.Render(m.errMsg) + "\n")
	}
	b.WriteString(s.Help.Render("enter tiếp tục · esc đăng xuất"))
	return b.String()
}
