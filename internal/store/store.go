package store

import (
	"sync"

	"github.com/quickswap/quickswap-cli/internal/models"
)

// Session holds the authenticated user and bearer token. It is
// overwritten wholesale on login and profile update; the token is
// cleared on logout.
type Session struct {
	User  models.User
	Token string
}

// LoggedIn reports whether a bearer token is present. Authenticated
// API calls are gated on this.
func (s Session) LoggedIn() bool { return s.Token != "" }

// Theme holds the day/night flag.
type Theme struct {
	NightMode bool
}

// FeedCache is the home feed's pagination state, kept across tab
// switches so returning to the feed does not refetch.
type FeedCache struct {
	Posts   []models.Post
	Page    int
	HasMore bool
	Offset  int
}

// Nav is the navigation slice: the active screen plus home-screen
// extras that outlive individual screens.
type Nav struct {
	Screen Screen
	Feed   FeedCache
	Unread int
}

// State is the full application state.
type State struct {
	Session Session
	Theme   Theme
	Nav     Nav
}

// Initial returns the state the app boots with: onboarding screen,
// placeholder profile, empty feed cache.
func Initial() State {
	return State{
		Session: Session{
			User: models.User{
				Name:       "Kevin Nguyễn",
				Username:   "Nguyễn Văn Kevin",
				Handle:     "@hoclTcungnhau",
				Email:      "kv@hcmut.edu.vn",
				Phone:      "0869611401",
				AvatarURL:  "https://i.pravatar.cc/300",
				University: "ĐH Bách Khoa TP.HCM",
				Address:    "B12, KP6, Linh Trung, Thủ Đức, TP.HCM",
				Rating:     4.5,
			},
		},
		Nav: Nav{
			Screen: Onboarding{},
			Feed:   FeedCache{HasMore: true},
		},
	}
}

// Store is the application state container. Dispatch applies an action
// through the pure reducer and notifies subscribers with the new
// snapshot.
type Store struct {
	mu    sync.Mutex
	state State
	subs  map[int]func(State)
	next  int
}

// New constructs a Store with the given initial state.
func New(initial State) *Store {
	return &Store{state: initial, subs: make(map[int]func(State))}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies an action and returns the resulting state.
// Subscribers are notified outside the lock.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	st := s.state
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
	return st
}

// Subscribe registers fn to run after every dispatch. The returned
// function unsubscribes.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
