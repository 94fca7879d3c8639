// Package store holds the client's application state: session, theme
// and navigation. State changes go through pure reducers driven by
// dispatched actions; screens subscribe for snapshots.
package store

import "github.com/quickswap/quickswap-cli/internal/models"

// OtpContext records which flow led to the OTP screen. It decides both
// the back target and the post-verification target.
type OtpContext int

const (
	// OtpRegister: OTP entered after account registration.
	OtpRegister OtpContext = iota
	// OtpForgotPassword: OTP entered during password reset.
	OtpForgotPassword
	// OtpChangePassword: OTP entered from the profile tab's
	// change-password action.
	OtpChangePassword
)

// Tab is one of the sub-views of the home screen.
type Tab int

const (
	TabFeed Tab = iota
	TabSearch
	TabAdd
	TabBookmarks
	TabProfile
)

// Screen is the tagged union of top-level views. Each variant carries
// exactly the data its screen needs, so a screen can never be active
// without its inputs.
type Screen interface{ screen() }

// Onboarding is the first-run slide deck.
type Onboarding struct{}

// Login is the email/password screen.
type Login struct{}

// Register is the account-creation screen.
type Register struct{}

// ForgotPassword asks for the account email before the OTP step.
type ForgotPassword struct{}

// Otp is the six-digit code entry screen. Email is the address the
// code was sent to.
type Otp struct {
	Context OtpContext
	Email   string
}

// ResetPassword sets a new password using a verified OTP.
type ResetPassword struct {
	Email string
	Otp   string
}

// Home is the tabbed main screen.
type Home struct {
	Tab Tab
}

// PostDetail shows a single post. ReturnTab is the home tab to restore
// on back.
type PostDetail struct {
	Post      models.Post
	ReturnTab Tab
}

// MyAccount is the complete-your-profile screen shown after first
// login.
type MyAccount struct{}

// Notifications lists the user's notifications. ReturnTab is the home
// tab to restore on back.
type Notifications struct {
	ReturnTab Tab
}

// UserProfile shows another user's profile and ratings, reached from a
// post's author line. Post is the detail screen to return to.
type UserProfile struct {
	UserID    int64
	Post      models.Post
	ReturnTab Tab
}

func (Onboarding) screen()     {}
func (Login) screen()          {}
func (Register) screen()       {}
func (ForgotPassword) screen() {}
func (Otp) screen()            {}
func (ResetPassword) screen()  {}
func (Home) screen()           {}
func (PostDetail) screen()     {}
func (MyAccount) screen()      {}
func (Notifications) screen()  {}
func (UserProfile) screen()    {}
