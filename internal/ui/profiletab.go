package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickswap/quickswap-cli/internal/api"
	"github.com/quickswap/quickswap-cli/internal/models"
	"github.com/quickswap/quickswap-cli/internal/store"
)

type profileSavedMsg struct {
	user models.User
	err  error
}

var profileActions = []string{
	"Chỉnh sửa hồ sơ",
	"Đổi mật khẩu",
	"Chế độ ban đêm",
	"Trợ giúp & hỗ trợ",
	"Đăng xuất",
}

// profileTab shows the session profile and the settings actions. Edit
// mode swaps the action list for an inline form.
type profileTab struct {
	app    *App
	cursor int

	editMode bool
	inputs   []textinput.Model
	focus    int

	errMsg string
	note   string
	busy   bool
	spin   spinner.Model
	ctx    context.Context
	cancel context.CancelFunc
}

func newProfileTab(a *App) *profileTab {
	ctx, cancel := context.WithCancel(context.Background())
	return &profileTab{
		app:    a,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (t *profileTab) close()        { t.cancel() }
func (t *profileTab) editing() bool { return t.editMode }

func (t *profileTab) Init() tea.Cmd { return nil }

func (t *profileTab) startEdit() {
	u := t.app.deps.store.State().Session.User
	mk := func(placeholder, value string) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 120
		in.SetValue(value)
		return in
	}
	t.inputs = []textinput.Model{
		mk("Họ và tên", u.Name),
		mk("Tên người dùng", u.Username),
		mk("Số điện thoại", u.Phone),
		mk("Trường", u.University),
		mk("Địa chỉ", u.Address),
	}
	t.focus = 0
	t.inputs[0].Focus()
	t.editMode = true
	t.errMsg = ""
	t.note = ""
}

func (t *profileTab) saveCmd() tea.Cmd {
	t.busy = true
	client := t.app.deps.api
	ctx := t.ctx
	req := api.UpdateProfileRequest{
		Name:       t.inputs[0].Value(),
		Username:   t.inputs[1].Value(),
		Phone:      t.inputs[2].Value(),
		University: t.inputs[3].Value(),
		Address:    t.inputs[4].Value(),
	}
	return tea.Batch(t.spin.Tick, func() tea.Msg {
		user, err := client.UpdateMe(ctx, req)
		return profileSavedMsg{user: user, err: err}
	})
}

func (t *profileTab) Update(msg tea.Msg) (tabModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileSavedMsg:
		t.busy = false
		if t.ctx.Err() != nil {
			return t, nil
		}
		if msg.err != nil {
			t.errMsg = errText(msg.err)
			return t, nil
		}
		t.app.deps.store.Dispatch(store.UserUpdated{User: msg.user})
		t.editMode = false
		t.note = "Đã lưu hồ sơ"
		return t, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		t.spin, cmd = t.spin.Update(msg)
		if t.busy {
			return t, cmd
		}
		return t, nil

	case tea.KeyMsg:
		if t.busy {
			return t, nil
		}
		if t.editMode {
			return t.updateEdit(msg)
		}
		switch msg.String() {
		case "up", "k":
			if t.cursor > 0 {
				t.cursor--
			}
		case "down", "j":
			if t.cursor < len(profileActions)-1 {
				t.cursor++
			}
		case "enter":
			return t.runAction()
		}
	}
	return t, nil
}

func (t *profileTab) runAction() (tabModel, tea.Cmd) {
	st := t.app.deps.store
	switch t.cursor {
	case 0:
		t.startEdit()
	case 1:
		st.Dispatch(store.ChangePasswordRequested{Email: st.State().Session.User.Email})
	case 2:
		st.Dispatch(store.ToggleTheme{})
	case 3:
		t.note = "Liên hệ hỗ trợ: support@quickswap.vn"
	case 4:
		st.Dispatch(store.Logout{})
	}
	return t, nil
}

func (t *profileTab) updateEdit(msg tea.KeyMsg) (tabModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		t.editMode = false
		return t, nil
	case "tab", "down":
		t.inputs[t.focus].Blur()
		t.focus = (t.focus + 1) % len(t.inputs)
		t.inputs[t.focus].Focus()
		return t, nil
	case "shift+tab", "up":
		t.inputs[t.focus].Blur()
		t.focus = (t.focus + len(t.inputs) - 1) % len(t.inputs)
		t.inputs[t.focus].Focus()
		return t, nil
	case "enter":
		if t.focus < len(t.inputs)-1 {
			t.inputs[t.focus].Blur()
			t.focus++
			t.inputs[t.focus].Focus()
			return t, nil
		}
		return t, t.saveCmd()
	}
	var cmd tea.Cmd
	t.inputs[t.focus], cmd = t.inputs[t.focus].Update(msg)
	return t, cmd
}

func (t *profileTab) View() string {
	s := t.app.styles
	st := t.app.deps.store.State()
	u := st.Session.User

	var b strings.Builder
	b.WriteString(s.Title.Render("Cá nhân") + "\n")

	if t.editMode {
		for _, in := range t.inputs {
			b.WriteString(in.View() + "\n")
		}
		b.WriteString("\n")
		if t.busy {
			b.WriteString(t.spin.View() + s.Subtle.Render(" Đang lưu...") + "\n")
		}
		if t.errMsg != "" {
			b.WriteString(s.Error.Render(t.errMsg) + "\n")
		}
		b.WriteString(s.Help.Render("enter lưu · esc hủy"))
		return b.String()
	}

	b.WriteString(s.Text.Render(u.Name) + " " + s.Subtle.Render(u.Handle) + "\n")
	b.WriteString(s.Subtle.Render(u.Email) + "\n")
	b.WriteString(s.Subtle.Render(u.Phone) + "\n")
	b.WriteString(s.Subtle.Render(u.University) + "\n")
	b.WriteString(s.Subtle.Render(u.Address) + "\n")
	b.WriteString(s.Text.Render(fmt.Sprintf("Đánh giá: %.1f ★", u.Rating)) + "\n\n")

	for i, action := range profileActions {
		label := action
		if action == "Chế độ ban đêm" {
			if st.Theme.NightMode {
				label += ": bật"
			} else {
				label += ": tắt"
			}
		}
		if i == t.cursor {
			b.WriteString(s.LogoBlue.Render("▸ "+label) + "\n")
		} else {
			b.WriteString(s.Text.Render("  "+label) + "\n")
		}
	}
	if t.errMsg != "" {
		b.WriteString(s.Error.Render(t.errMsg) + "\n")
	}
	if t.note != "" {
		b.WriteString(s.Success.Render(t.note) + "\n")
	}
	b.WriteString(s.Help.Render("j/k di chuyển · enter chọn"))
	return b.String()
}
