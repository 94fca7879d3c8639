package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickswap/quickswap-cli/internal/api"
	"github.com/quickswap/quickswap-cli/internal/models"
)

type postCreatedMsg struct {
	post models.Post
	err  error
}

var (
	postCategories = []string{"Sách", "Phụ kiện", "Quần áo", "Đồ điện tử", "Khác"}
	postConditions = []string{"Như mới", "Tốt", "Đã qua sử dụng"}
	postTags       = []string{"Trao đổi", "Miễn phí", "Cho mượn"}
)

const (
	addFocusTitle = iota
	addFocusContent
	addFocusCategory
	addFocusCondition
	addFocusTag
	addFocusImage
	addFocusSubmit
	addFocusCount
)

// addPostTab is the post-creation form. The optional image is a local
// file path uploaded before the post is submitted.
type addPostTab struct {
	app       *App
	title     textinput.Model
	content   textinput.Model
	image     textinput.Model
	focus     int
	category  int
	condition int
	tag       int
	errMsg    string
	note      string
	busy      bool
	spin      spinner.Model
	ctx       context.Context
	cancel    context.CancelFunc
}

func newAddPostTab(a *App) *addPostTab {
	mk := func(placeholder string) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 200
		return in
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &addPostTab{
		app:     a,
		title:   mk("Tiêu đề"),
		content: mk("Mô tả chi tiết"),
		image:   mk("Đường dẫn ảnh (tùy chọn)"),
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (t *addPostTab) close() { t.cancel() }

func (t *addPostTab) editing() bool {
	switch t.focus {
	case addFocusTitle, addFocusContent, addFocusImage:
		return true
	}
	return false
}

func (t *addPostTab) Init() tea.Cmd { return nil }

func (t *addPostTab) setFocus(f int) {
	t.title.Blur()
	t.content.Blur()
	t.image.Blur()
	t.focus = f
	switch f {
	case addFocusTitle:
		t.title.Focus()
	case addFocusContent:
		t.content.Focus()
	case addFocusImage:
		t.image.Focus()
	}
}

func (t *addPostTab) Update(msg tea.Msg) (tabModel, tea.Cmd) {
	switch msg := msg.(type) {
	case postCreatedMsg:
		t.busy = false
		if t.ctx.Err() != nil {
			return t, nil
		}
		if msg.err != nil {
			t.errMsg = errText(msg.err)
			return t, nil
		}
		t.errMsg = ""
		t.note = "Đã đăng: " + msg.post.Title
		t.title.SetValue("")
		t.content.SetValue("")
		t.image.SetValue("")
		t.setFocus(addFocusTitle)
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
		switch msg.String() {
		case "esc":
			t.setFocus(addFocusSubmit)
			return t, nil
		case "tab", "down":
			t.setFocus((t.focus + 1) % addFocusCount)
			return t, nil
		case "shift+tab", "up":
			t.setFocus((t.focus + addFocusCount - 1) % addFocusCount)
			return t, nil
		case "left", "right":
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			switch t.focus {
			case addFocusCategory:
				t.category = (t.category + delta + len(postCategories)) % len(postCategories)
			case addFocusCondition:
				t.condition = (t.condition + delta + len(postConditions)) % len(postConditions)
			case addFocusTag:
				t.tag = (t.tag + delta + len(postTags)) % len(postTags)
			}
			return t, nil
		case "enter":
			if t.focus == addFocusSubmit {
				return t, t.submit()
			}
			t.setFocus((t.focus + 1) % addFocusCount)
			return t, nil
		}
	}

	var cmd tea.Cmd
	switch t.focus {
	case addFocusTitle:
		t.title, cmd = t.title.Update(msg)
	case addFocusContent:
		t.content, cmd = t.content.Update(msg)
	case addFocusImage:
		t.image, cmd = t.image.Update(msg)
	}
	return t, cmd
}

// submit uploads the image when a path was given, then creates the
// post, as one command.
func (t *addPostTab) submit() tea.Cmd {
	if strings.TrimSpace(t.title.Value()) == "" {
		t.errMsg = "Vui lòng nhập tiêu đề"
		return nil
	}
	t.errMsg = ""
	t.note = ""
	t.busy = true

	client := t.app.deps.api
	ctx := t.ctx
	req := api.CreatePostRequest{
		Title:   strings.TrimSpace(t.title.Value()),
		Content: strings.TrimSpace(t.content.Value()),
		Tags:    []string{postTags[t.tag]},
		Info: []string{
			"Danh mục: " + postCategories[t.category],
			"Tình trạng: " + postConditions[t.condition],
		},
	}
	imagePath := strings.TrimSpace(t.image.Value())
	return tea.Batch(t.spin.Tick, func() tea.Msg {
		if imagePath != "" {
			url, err := client.UploadImage(ctx, imagePath)
			if err != nil {
				return postCreatedMsg{err: err}
			}
			req.Images = []string{url}
		}
		post, err := client.CreatePost(ctx, req)
		return postCreatedMsg{post: post, err: err}
	})
}

func (t *addPostTab) View() string {
	s := t.app.styles
	sel := func(label, value string, focus int) string {
		line := s.Subtle.Render(label+": ") + s.Text.Render("◂ "+value+" ▸")
		if t.focus == focus {
			line = s.Subtle.Render(label+": ") + s.LogoBlue.Render("◂ "+value+" ▸")
		}
		return line
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("Đăng tin mới") + "\n")
	b.WriteString(t.title.View() + "\n")
	b.WriteString(t.content.View() + "\n")
	b.WriteString(sel("Danh mục", postCategories[t.category], addFocusCategory) + "\n")
	b.WriteString(sel("Tình trạng", postConditions[t.condition], addFocusCondition) + "\n")
	b.WriteString(sel("Nhãn", postTags[t.tag], addFocusTag) + "\n")
	b.WriteString(t.image.View() + "\n\n")

	if t.busy {
		b.WriteString(t.spin.View() + s.Subtle.Render(" Đang đăng...") + "\n")
	} else {
		b.WriteString(focusable(s, "[ Đăng bài ]", t.focus == addFocusSubmit) + "\n")
	}
	if t.errMsg != "" {
		b.WriteString(s.Error.Render(t.errMsg) + "\n")
	}
	if t.note != "" {
		b.WriteString(s.Success.Render(t.note) + "\n")
	}
	b.WriteString(s.Help.Render("tab chuyển trường · ←/→ chọn · enter đăng"))
	return b.String()
}
