// Package validate implements the local field checks the auth screens
// run before issuing any network call.
package validate

import (
	"regexp"
	"unicode"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether s has the local@domain.tld shape.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// Password reports whether s is non-empty and contains at least one
// uppercase letter and one digit. No minimum length is enforced.
func Password(s string) bool {
	var upper, digit bool
	for _, r := range s {
		if unicode.IsUpper(r) {
			upper = true
		}
		if unicode.IsDigit(r) {
			digit = true
		}
	}
	return s != "" && upper && digit
}

// Otp reports whether s is exactly six numeric digits.
func Otp(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Field-scoped error messages.
const (
	MsgNameRequired    = "Vui lòng nhập họ tên"
	MsgEmailInvalid    = "Email không hợp lệ"
	MsgPasswordInvalid = "Mật khẩu phải có ít nhất 1 chữ in hoa và 1 chữ số"
	MsgConfirmMismatch = "Mật khẩu xác nhận không khớp"
	MsgOtpIncomplete   = "Vui lòng nhập đủ 6 chữ số"
)

// Form bundles the auth-screen fields. Check* flags select which
// fields a given screen validates; login, for example, has no name or
// confirm field.
type Form struct {
	Name     string
	Email    string
	Password string
	Confirm  string

	CheckName     bool
	CheckEmail    bool
	CheckPassword bool
	CheckConfirm  bool
}

// FirstError returns the single error message to display, in the
// fixed priority order name, email, password, confirm-password. An
// empty string means the form is valid and the network call may
// proceed.
func (f Form) FirstError() string {
	if f.CheckName && f.Name == "" {
		return MsgNameRequired
	}
	if f.CheckEmail && !Email(f.Email) {
		return MsgEmailInvalid
	}
	if f.CheckPassword && !Password(f.Password) {
		return MsgPasswordInvalid
	}
	if f.CheckConfirm && f.Confirm != f.Password {
		return MsgConfirmMismatch
	}
	return ""
}
