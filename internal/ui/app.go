// Package ui implements the terminal screens of the QuickSwap client
// with Bubble Tea. A root model maps the store's navigation state to
// one active screen model and delegates events to it.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/quickswap/quickswap-cli/internal/api"
	"github.com/quickswap/quickswap-cli/internal/bookmarks"
	"github.com/quickswap/quickswap-cli/internal/notify"
	"github.com/quickswap/quickswap-cli/internal/store"
)

// deps bundles what every screen needs.
type deps struct {
	store *store.Store
	api   *api.Client
	marks *bookmarks.Set
	log   *zap.Logger
}

// screenModel is the contract between the root model and a screen.
type screenModel interface {
	Init() tea.Cmd
	Update(tea.Msg) (screenModel, tea.Cmd)
	View() string
}

// closer is implemented by screens that hold a cancelable context for
// in-flight requests; the root closes a screen when navigating away so
// late responses cannot touch state for an invisible screen.
type closer interface{ close() }

// unreadMsg carries a fresh unread-notification count from the poller.
type unreadMsg struct{ count int }

// App is the root model.
type App struct {
	deps   *deps
	poller *notify.Poller
	send   func(tea.Msg)

	screen screenModel
	cur    store.Screen
	styles Styles
	width  int
	height int
}

// NewApp wires the root model. send delivers poller results into the
// running program and is set via SetSend once the program exists.
func NewApp(st *store.Store, client *api.Client, marks *bookmarks.Set, poller *notify.Poller, log *zap.Logger) *App {
	d := &deps{store: st, api: client, marks: marks, log: log}
	s := st.State()
	a := &App{
		deps:   d,
		poller: poller,
		send:   func(tea.Msg) {},
		styles: newStyles(s.Theme.NightMode),
		cur:    s.Nav.Screen,
	}
	a.screen = a.modelFor(s.Nav.Screen)
	return a
}

// SetSend installs the program's message injector.
func (a *App) SetSend(send func(tea.Msg)) { a.send = send }

func (a *App) Init() tea.Cmd {
	return a.screen.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.poller.Stop()
			return a, tea.Quit
		}
	case unreadMsg:
		a.deps.store.Dispatch(store.SetUnread{Count: msg.count})
	}

	next, cmd := a.screen.Update(msg)
	a.screen = next

	// Follow any navigation the screen dispatched.
	st := a.deps.store.State()
	a.styles = newStyles(st.Theme.NightMode)
	if !sameScreen(a.cur, st.Nav.Screen) {
		if c, ok := a.screen.(closer); ok {
			c.close()
		}
		a.switchPolling(a.cur, st.Nav.Screen)
		a.cur = st.Nav.Screen
		a.screen = a.modelFor(st.Nav.Screen)
		initCmd := a.screen.Init()
		if resize := a.resizeCmd(); resize != nil {
			return a, tea.Batch(cmd, initCmd, resize)
		}
		return a, tea.Batch(cmd, initCmd)
	}
	a.cur = st.Nav.Screen
	return a, cmd
}

func (a *App) View() string {
	return a.screen.View()
}

// resizeCmd replays the current terminal size to a freshly built
// screen model.
func (a *App) resizeCmd() tea.Cmd {
	if a.width == 0 {
		return nil
	}
	w, h := a.width, a.height
	return func() tea.Msg { return tea.WindowSizeMsg{Width: w, Height: h} }
}

// switchPolling starts the unread poller while the home screen is
// visible and stops it deterministically on exit.
func (a *App) switchPolling(from, to store.Screen) {
	_, wasHome := from.(store.Home)
	_, isHome := to.(store.Home)
	if !wasHome && isHome {
		a.poller.Start(func(n int) { a.send(unreadMsg{count: n}) })
	}
	if wasHome && !isHome {
		a.poller.Stop()
	}
}

// sameScreen reports whether two navigation states map to the same
// screen model. The home model covers every tab, so tab switches do
// not rebuild it.
func sameScreen(a, b store.Screen) bool {
	switch x := a.(type) {
	case store.Home:
		_, ok := b.(store.Home)
		return ok
	case store.PostDetail:
		y, ok := b.(store.PostDetail)
		return ok && x.Post.ID == y.Post.ID
	case store.Otp:
		y, ok := b.(store.Otp)
		return ok && x.Context == y.Context
	case store.UserProfile:
		y, ok := b.(store.UserProfile)
		return ok && x.UserID == y.UserID
	case store.ResetPassword:
		_, ok := b.(store.ResetPassword)
		return ok
	case store.Notifications:
		_, ok := b.(store.Notifications)
		return ok
	default:
		return a == b
	}
}

// modelFor builds the screen model for a navigation state.
func (a *App) modelFor(s store.Screen) screenModel {
	switch s := s.(type) {
	case store.Onboarding:
		return newOnboardingModel(a)
	case store.Login:
		return newLoginModel(a)
	case store.Register:
		return newRegisterModel(a)
	case store.ForgotPassword:
		return newForgotPasswordModel(a)
	case store.Otp:
		return newOtpModel(a, s)
	case store.ResetPassword:
		return newResetPasswordModel(a, s)
	case store.Home:
		return newHomeModel(a)
	case store.PostDetail:
		return newPostDetailModel(a, s)
	case store.MyAccount:
		return newMyAccountModel(a)
	case store.Notifications:
		return newNotificationsModel(a)
	case store.UserProfile:
		return newUserProfileModel(a, s)
	default:
		return newOnboardingModel(a)
	}
}
