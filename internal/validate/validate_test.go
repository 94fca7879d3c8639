package validate

import "testing"

func TestEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@hcmut.edu.vn", true},
		{"kevin.nguyen@gmail.com", true},
		{"", false},
		{"abc", false},
		{"a@b", false},
		{"a b@c.vn", false},
		{"@c.vn", false},
		{"a@.vn", false},
	}
	for _, tt := range tests {
		if got := Email(tt.in); got != tt.want {
			t.Errorf("Email(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Demo123", true},
		{"A1", true},
		{"", false},
		{"alllower1", false},
		{"NoDigits", false},
		{"12345678", false},
	}
	for _, tt := range tests {
		if got := Password(tt.in); got != tt.want {
			t.Errorf("Password(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestOtp(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"000000", true},
		{"123456", true},
		{"12345", false},
		{"1234567", false},
		{"12345a", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Otp(tt.in); got != tt.want {
			t.Errorf("Otp(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormFirstError(t *testing.T) {
	tests := []struct {
		name string
		form Form
		want string
	}{
		{
			name: "valid login form",
			form: Form{Email: "a@b.vn", Password: "Demo123", CheckEmail: true, CheckPassword: true},
			want: "",
		},
		{
			name: "name checked first",
			form: Form{Email: "bad", CheckName: true, CheckEmail: true},
			want: MsgNameRequired,
		},
		{
			name: "email before password",
			form: Form{Name: "Kevin", Email: "bad", Password: "bad", CheckName: true, CheckEmail: true, CheckPassword: true},
			want: MsgEmailInvalid,
		},
		{
			name: "password before confirm",
			form: Form{Email: "a@b.vn", Password: "weak", Confirm: "other", CheckEmail: true, CheckPassword: true, CheckConfirm: true},
			want: MsgPasswordInvalid,
		},
		{
			name: "confirm mismatch last",
			form: Form{Name: "Kevin", Email: "a@b.vn", Password: "Demo123", Confirm: "Demo124", CheckName: true, CheckEmail: true, CheckPassword: true, CheckConfirm: true},
			want: MsgConfirmMismatch,
		},
		{
			name: "unchecked fields ignored",
			form: Form{Email: "bad", Password: "bad", CheckConfirm: true},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.form.FirstError(); got != tt.want {
				t.Errorf("FirstError() = %q; want %q", got, tt.want)
			}
		})
	}
}
