package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickswap/quickswap-cli/internal/store"
)

// tabModel is one of the home screen's bottom tabs. editing reports
// whether the tab currently owns the keyboard (text entry), in which
// case the home model does not intercept tab-switch keys.
type tabModel interface {
	Init() tea.Cmd
	Update(tea.Msg) (tabModel, tea.Cmd)
	View() string
	editing() bool
}

var tabOrder = []store.Tab{
	store.TabFeed, store.TabSearch, store.TabAdd, store.TabBookmarks, store.TabProfile,
}

var tabTitles = map[store.Tab]string{
	store.TabFeed:      "Trang chủ",
	store.TabSearch:    "Tìm kiếm",
	store.TabAdd:       "Đăng tin",
	store.TabBookmarks: "Đã lưu",
	store.TabProfile:   "Cá nhân",
}

type homeModel struct {
	app    *App
	tabs   map[store.Tab]tabModel
	inited map[store.Tab]bool
}

func newHomeModel(a *App) *homeModel {
	return &homeModel{
		app: a,
		tabs: map[store.Tab]tabModel{
			store.TabFeed:      newFeedTab(a),
			store.TabSearch:    newSearchTab(a),
			store.TabAdd:       newAddPostTab(a),
			store.TabBookmarks: newBookmarksTab(a),
			store.TabProfile:   newProfileTab(a),
		},
		inited: make(map[store.Tab]bool),
	}
}

func (m *homeModel) close() {
	for _, t := range m.tabs {
		if c, ok := t.(closer); ok {
			c.close()
		}
	}
}

func (m *homeModel) activeTab() store.Tab {
	if h, ok := m.app.deps.store.State().Nav.Screen.(store.Home); ok {
		return h.Tab
	}
	return store.TabFeed
}

func (m *homeModel) Init() tea.Cmd {
	tab := m.activeTab()
	m.inited[tab] = true
	return m.tabs[tab].Init()
}

func (m *homeModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	tab := m.activeTab()
	active := m.tabs[tab]

	if key, ok := msg.(tea.KeyMsg); ok && !active.editing() {
		switch key.String() {
		case "1", "2", "3", "4", "5":
			idx := int(key.String()[0] - '1')
			m.app.deps.store.Dispatch(store.SwitchTab{Tab: tabOrder[idx]})
			next := m.activeTab()
			if !m.inited[next] {
				m.inited[next] = true
				return m, m.tabs[next].Init()
			}
			return m, nil
		case "n":
			m.app.deps.store.Dispatch(store.OpenNotifications{})
			return m, nil
		}
	}

	next, cmd := active.Update(msg)
	m.tabs[tab] = next
	return m, cmd
}

func (m *homeModel) View() string {
	s := m.app.styles
	st := m.app.deps.store.State()
	tab := m.activeTab()

	var b strings.Builder
	b.WriteString(s.logo())
	if st.Nav.Unread > 0 {
		b.WriteString("  " + s.Badge.Render(fmt.Sprintf("🔔 %d", st.Nav.Unread)))
	}
	b.WriteString("\n")

	labels := make([]string, 0, len(tabOrder))
	for i, t := range tabOrder {
		label := fmt.Sprintf("%d %s", i+1, tabTitles[t])
		if t == tab {
			labels = append(labels, s.TabActive.Render(label))
		} else {
			labels = append(labels, s.TabIdle.Render(label))
		}
	}
	b.WriteString(strings.Join(labels, s.Subtle.Render(" │ ")) + "\n\n")

	b.WriteString(m.tabs[tab].View())
	return b.String()
}
