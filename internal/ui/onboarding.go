package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickswap/quickswap-cli/internal/store"
)

var onboardingSlides = []struct {
	title string
	body  string
}{
	{
		"Trao đổi đồ dùng sinh viên",
		"Đăng đồ bạn không dùng nữa và tìm thứ bạn cần,\nngay trong cộng đồng sinh viên của bạn.",
	},
	{
		"Miễn phí, cho mượn, trao đổi",
		"Gắn nhãn bài đăng để mọi người biết bạn muốn\ncho, cho mượn hay trao đổi.",
	},
	{
		"Kết nối an toàn",
		"Hồ sơ có đánh giá từ những lần trao đổi trước,\nđể bạn yên tâm hẹn gặp.",
	},
}

type onboardingModel struct {
	app   *App
	slide int
}

func newOnboardingModel(a *App) *onboardingModel {
	return &onboardingModel{app: a}
}

func (m *onboardingModel) Init() tea.Cmd { return nil }

func (m *onboardingModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "left", "h":
		if m.slide > 0 {
			m.slide--
		}
	case "right", "l", " ":
		if m.slide < len(onboardingSlides)-1 {
			m.slide++
		}
	case "enter":
		m.app.deps.store.Dispatch(store.GoLogin{})
	case "r":
		m.app.deps.store.Dispatch(store.GoRegister{})
	}
	return m, nil
}

func (m *onboardingModel) View() string {
	s := m.app.styles
	slide := onboardingSlides[m.slide]

	dots := make([]string, len(onboardingSlides))
	for i := range dots {
		if i == m.slide {
			dots[i] = s.LogoBlue.Render("●")
		} else {
			dots[i] = s.Subtle.Render("○")
		}
	}

	var b strings.Builder
	b.WriteString(s.logo() + "\n\n")
	b.WriteString(s.Title.Render(slide.title) + "\n")
	b.WriteString(s.Text.Render(slide.body) + "\n\n")
	b.WriteString(strings.Join(dots, " ") + "\n")
	b.WriteString(s.Help.Render("←/→ chuyển trang · enter đăng nhập · r đăng ký · ctrl+c thoát"))
	return b.String()
}
