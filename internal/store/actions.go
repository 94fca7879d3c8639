package store

import "github.com/quickswap/quickswap-cli/internal/models"

// Action is the tagged union of state-changing events. Actions that do
// not apply to the current screen are no-ops.
type Action interface{ action() }

// Navigation events.

// GoLogin moves to the login screen from onboarding or register.
type GoLogin struct{}

// GoRegister moves to the register screen from onboarding or login.
type GoRegister struct{}

// GoForgotPassword moves from login to the forgot-password screen.
type GoForgotPassword struct{}

// LoginSucceeded stores the session and routes to home, or to
// my-account when the profile is incomplete.
type LoginSucceeded struct {
	Token string
	User  models.User
}

// RegisterSubmitted moves from register to OTP entry.
type RegisterSubmitted struct{ Email string }

// ForgotSubmitted moves from forgot-password to OTP entry.
type ForgotSubmitted struct{ Email string }

// ChangePasswordRequested moves from the home profile tab to OTP entry.
type ChangePasswordRequested struct{ Email string }

// OtpVerified routes past the OTP screen according to its context and,
// for the password flows, stores the verified code.
type OtpVerified struct{ Otp string }

// OtpBack returns from the OTP screen to the screen that opened it.
type OtpBack struct{}

// ResetFinished moves from reset-password back to login.
type ResetFinished struct{}

// OpenPost moves from home to post detail, carrying the post.
type OpenPost struct{ Post models.Post }

// ClosePost returns from post detail to home, dropping the post.
type ClosePost struct{}

// SwitchTab changes the active home tab.
type SwitchTab struct{ Tab Tab }

// OpenNotifications moves from home to the notifications screen.
type OpenNotifications struct{}

// CloseNotifications returns from notifications to home.
type CloseNotifications struct{}

// OpenUserProfile moves from post detail to the author's profile.
type OpenUserProfile struct{ UserID int64 }

// CloseUserProfile returns from a user profile to the post detail it
// was opened from.
type CloseUserProfile struct{}

// ProfileCompleted stores the updated profile and moves from
// my-account to home.
type ProfileCompleted struct{ User models.User }

// Logout clears the session token and returns to login.
type Logout struct{}

// Session and theme events.

// UserUpdated overwrites the stored profile wholesale.
type UserUpdated struct{ User models.User }

// ToggleTheme flips day/night mode.
type ToggleTheme struct{}

// SetTheme sets night mode explicitly.
type SetTheme struct{ Night bool }

// Feed cache events.

// CacheFeed stores the home feed's pagination state so a tab switch
// does not refetch.
type CacheFeed struct {
	Posts   []models.Post
	Page    int
	HasMore bool
	Offset  int
}

// DropCachedPost removes a deleted post from the cached feed.
type DropCachedPost struct{ ID int64 }

// SetUnread updates the unread-notification badge count.
type SetUnread struct{ Count int }

func (GoLogin) action()                 {}
func (GoRegister) action()              {}
func (GoForgotPassword) action()        {}
func (LoginSucceeded) action()          {}
func (RegisterSubmitted) action()       {}
func (ForgotSubmitted) action()         {}
func (ChangePasswordRequested) action() {}
func (OtpVerified) action()             {}
func (OtpBack) action()                 {}
func (ResetFinished) action()           {}
func (OpenPost) action()                {}
func (ClosePost) action()               {}
func (SwitchTab) action()               {}
func (OpenNotifications) action()       {}
func (CloseNotifications) action()      {}
func (OpenUserProfile) action()         {}
func (CloseUserProfile) action()        {}
func (ProfileCompleted) action()        {}
func (Logout) action()                  {}
func (UserUpdated) action()             {}
func (ToggleTheme) action()             {}
func (SetTheme) action()                {}
func (CacheFeed) action()               {}
func (DropCachedPost) action()          {}
func (SetUnread) action()               {}
