package store

import "github.com/quickswap/quickswap-cli/internal/models"

// Reduce applies an action to a state and returns the next state. It
// is pure: no I/O, no mutation of the input. Actions that do not apply
// to the current screen leave the state unchanged, which makes every
// event safe to dispatch from any screen.
func Reduce(s State, a Action) State {
	switch a := a.(type) {

	// Session- and theme-level events, valid on any screen.
	case UserUpdated:
		s.Session.User = a.User
		return s
	case ToggleTheme:
		s.Theme.NightMode = !s.Theme.NightMode
		return s
	case SetTheme:
		s.Theme.NightMode = a.Night
		return s
	case CacheFeed:
		s.Nav.Feed = FeedCache{Posts: a.Posts, Page: a.Page, HasMore: a.HasMore, Offset: a.Offset}
		return s
	case DropCachedPost:
		return dropCachedPost(s, a.ID)
	case SetUnread:
		s.Nav.Unread = a.Count
		return s
	}
	return reduceNav(s, a)
}

// reduceNav implements the screen transition table. Each case first
// checks the source screen, so an event fired on the wrong screen is a
// no-op.
func reduceNav(s State, a Action) State {
	switch a := a.(type) {

	case GoLogin:
		switch s.Nav.Screen.(type) {
		case Onboarding, Register:
			s.Nav.Screen = Login{}
		}

	case GoRegister:
		switch s.Nav.Screen.(type) {
		case Onboarding, Login:
			s.Nav.Screen = Register{}
		}

	case GoForgotPassword:
		if _, ok := s.Nav.Screen.(Login); ok {
			s.Nav.Screen = ForgotPassword{}
		}

	case LoginSucceeded:
		if _, ok := s.Nav.Screen.(Login); !ok {
			break
		}
		s.Session = Session{User: a.User, Token: a.Token}
		s.Nav.Feed = FeedCache{HasMore: true}
		s.Nav.Unread = 0
		if a.User.ProfileComplete() {
			s.Nav.Screen = Home{Tab: TabFeed}
		} else {
			s.Nav.Screen = MyAccount{}
		}

	case RegisterSubmitted:
		if _, ok := s.Nav.Screen.(Register); ok {
			s.Nav.Screen = Otp{Context: OtpRegister, Email: a.Email}
		}

	case ForgotSubmitted:
		if _, ok := s.Nav.Screen.(ForgotPassword); ok {
			s.Nav.Screen = Otp{Context: OtpForgotPassword, Email: a.Email}
		}

	case ChangePasswordRequested:
		if h, ok := s.Nav.Screen.(Home); ok && h.Tab == TabProfile {
			s.Nav.Screen = Otp{Context: OtpChangePassword, Email: a.Email}
		}

	case OtpVerified:
		o, ok := s.Nav.Screen.(Otp)
		if !ok {
			break
		}
		switch o.Context {
		case OtpRegister:
			s.Nav.Screen = Login{}
		case OtpForgotPassword, OtpChangePassword:
			s.Nav.Screen = ResetPassword{Email: o.Email, Otp: a.Otp}
		}

	case OtpBack:
		o, ok := s.Nav.Screen.(Otp)
		if !ok {
			break
		}
		switch o.Context {
		case OtpRegister:
			s.Nav.Screen = Register{}
		case OtpForgotPassword:
			s.Nav.Screen = ForgotPassword{}
		case OtpChangePassword:
			s.Nav.Screen = Home{Tab: TabProfile}
		}

	case ResetFinished:
		if _, ok := s.Nav.Screen.(ResetPassword); ok {
			s.Nav.Screen = Login{}
		}

	case OpenPost:
		if h, ok := s.Nav.Screen.(Home); ok {
			s.Nav.Screen = PostDetail{Post: a.Post, ReturnTab: h.Tab}
		}

	case ClosePost:
		if d, ok := s.Nav.Screen.(PostDetail); ok {
			s.Nav.Screen = Home{Tab: d.ReturnTab}
		}

	case SwitchTab:
		if _, ok := s.Nav.Screen.(Home); ok {
			s.Nav.Screen = Home{Tab: a.Tab}
		}

	case OpenNotifications:
		if h, ok := s.Nav.Screen.(Home); ok {
			s.Nav.Screen = Notifications{ReturnTab: h.Tab}
		}

	case CloseNotifications:
		if n, ok := s.Nav.Screen.(Notifications); ok {
			s.Nav.Screen = Home{Tab: n.ReturnTab}
		}

	case OpenUserProfile:
		if d, ok := s.Nav.Screen.(PostDetail); ok {
			s.Nav.Screen = UserProfile{UserID: a.UserID, Post: d.Post, ReturnTab: d.ReturnTab}
		}

	case CloseUserProfile:
		if u, ok := s.Nav.Screen.(UserProfile); ok {
			s.Nav.Screen = PostDetail{Post: u.Post, ReturnTab: u.ReturnTab}
		}

	case ProfileCompleted:
		if _, ok := s.Nav.Screen.(MyAccount); ok {
			s.Session.User = a.User
			s.Nav.Screen = Home{Tab: TabFeed}
		}

	case Logout:
		switch s.Nav.Screen.(type) {
		case Home, MyAccount:
			s.Session.Token = ""
			s.Nav = Nav{Screen: Login{}, Feed: FeedCache{HasMore: true}}
		}
	}
	return s
}

// dropCachedPost removes one post from the cached feed list without
// mutating the original slice.
func dropCachedPost(s State, id int64) State {
	posts := s.Nav.Feed.Posts
	for i := range posts {
		if posts[i].ID == id {
			out := make([]models.Post, 0, len(posts)-1)
			out = append(out, posts[:i]...)
			out = append(out, posts[i+1:]...)
			s.Nav.Feed.Posts = out
			break
		}
	}
	return s
}
