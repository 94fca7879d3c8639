package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// roundTripperFunc lets a func literal act as an http.RoundTripper.
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// newTestClient builds a Client whose requests are served by rt.
func newTestClient(token string, rt roundTripperFunc) *Client {
	src := func() string { return token }
	c := New("http://test", src, zap.NewNop())
	return c.WithHTTPClient(&http.Client{Transport: rt})
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestLogin(t *testing.T) {
	c := newTestClient("", func(r *http.Request) (*http.Response, error) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@hcmut.edu.vn", req.Email)
		assert.Equal(t, "Demo123", req.Password)

		return respond(200, `{"token":"tok-1","user":{"id":1,"name":"Kevin","email":"a@hcmut.edu.vn"}}`), nil
	})

	out, err := c.Login(context.Background(), "a@hcmut.edu.vn", "Demo123")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", out.Token)
	assert.Equal(t, int64(1), out.User.ID)
}

func TestAuthedCallWithoutToken(t *testing.T) {
	called := false
	c := newTestClient("", func(r *http.Request) (*http.Response, error) {
		called = true
		return respond(200, `{"content":[]}`), nil
	})

	_, err := c.Posts(context.Background(), 0, 5)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, called, "request must not be issued without a token")
}

func TestBearerTokenAttached(t *testing.T) {
	c := newTestClient("tok-1", func(r *http.Request) (*http.Response, error) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		return respond(200, `{"content":[]}`), nil
	})

	_, err := c.Posts(context.Background(), 0, 5)
	require.NoError(t, err)
}

func TestPostsPagination(t *testing.T) {
	c := newTestClient("tok", func(r *http.Request) (*http.Response, error) {
		assert.Equal(t, "/api/posts", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		return respond(200, `{"content":[{"id":11,"title":"Sách"},{"id":12,"title":"Áo khoác"}]}`), nil
	})

	posts, err := c.Posts(context.Background(), 2, 5)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(11), posts[0].ID)
}

func TestErrorNormalization(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"json message field", 400, `{"message":"Email đã tồn tại"}`, "Email đã tồn tại"},
		{"plain text body", 403, "Bạn không có quyền xóa bài viết này", "Bạn không có quyền xóa bài viết này"},
		{"empty body", 500, "", "Something went wrong"},
		{"json without message", 500, `{"error":"x"}`, "Something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient("tok", func(r *http.Request) (*http.Response, error) {
				return respond(tt.status, tt.body), nil
			})

			err := c.DeletePost(context.Background(), 7)
			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.want, apiErr.Message)
		})
	}
}

func TestTransportError(t *testing.T) {
	c := newTestClient("tok", func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	_, err := c.Posts(context.Background(), 0, 5)
	require.Error(t, err)
	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr), "transport failures are not *Error values")
}

func TestForgotPasswordReturnsPlainText(t *testing.T) {
	c := newTestClient("", func(r *http.Request) (*http.Response, error) {
		assert.Equal(t, "/api/auth/forgot-password", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.vn", body["email"])
		return respond(200, "Đã gửi OTP về email\n"), nil
	})

	msg, err := c.ForgotPassword(context.Background(), "a@b.vn")
	require.NoError(t, err)
	assert.Equal(t, "Đã gửi OTP về email", msg)
}

func TestBookmarkEndpoints(t *testing.T) {
	var got []string
	c := newTestClient("tok", func(r *http.Request) (*http.Response, error) {
		got = append(got, r.Method+" "+r.URL.Path)
		return respond(200, ""), nil
	})

	require.NoError(t, c.SavePost(context.Background(), 42))
	require.NoError(t, c.UnsavePost(context.Background(), 42))
	assert.Equal(t, []string{
		"POST /api/posts/42/save",
		"DELETE /api/posts/42/save",
	}, got)
}

func TestRateUser(t *testing.T) {
	c := newTestClient("tok", func(r *http.Request) (*http.Response, error) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/users/3/rate", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(4), body["stars"])
		assert.Equal(t, "Giao dịch nhanh", body["comment"])
		return respond(200, ""), nil
	})

	require.NoError(t, c.RateUser(context.Background(), 3, 4, "Giao dịch nhanh"))
}

func TestUnreadCount(t *testing.T) {
	c := newTestClient("tok", func(r *http.Request) (*http.Response, error) {
		assert.Equal(t, "/api/notifications/me", r.URL.Path)
		return respond(200, `[
			{"id":1,"title":"a","read":false},
			{"id":2,"title":"b","read":true},
			{"id":3,"title":"c","read":false}
		]`), nil
	})

	n, err := c.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
