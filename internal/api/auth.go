package api

import (
	"context"
	"net/http"

	"github.com/quickswap/quickswap-cli/internal/models"
)

// LoginRequest is the JSON payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and the user profile.
type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// RegisterRequest is the JSON payload for POST /api/auth/register.
type RegisterRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var out LoginResponse
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	}, false)
	if err != nil {
		return out, err
	}
	err = c.doJSON(req, &out)
	return out, err
}

// Register creates a new account. The backend sends an OTP to the
// given email on success.
func (c *Client) Register(ctx context.Context, r RegisterRequest) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/register", r, false)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

// ForgotPassword requests a password-reset OTP. The backend answers
// with a plain-text status message.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/forgot-password", map[string]string{
		"email": email,
	}, false)
	if err != nil {
		return "", err
	}
	return c.doText(req)
}

// CheckOtp verifies a six-digit OTP for the given email.
func (c *Client) CheckOtp(ctx context.Context, email, otp string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/check-otp", map[string]string{
		"email": email,
		"otp":   otp,
	}, false)
	if err != nil {
		return "", err
	}
	return c.doText(req)
}

// ResendOtp asks the backend to send a fresh OTP.
func (c *Client) ResendOtp(ctx context.Context, email string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/resend-otp", map[string]string{
		"email": email,
	}, false)
	if err != nil {
		return "", err
	}
	return c.doText(req)
}

// ResetPassword sets a new password after OTP verification. Used by
// both the forgot-password flow and the in-profile password change.
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/reset-password", map[string]string{
		"email":       email,
		"otp":         otp,
		"newPassword": newPassword,
	}, false)
	if err != nil {
		return "", err
	}
	return c.doText(req)
}
