package stub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/quickswap/quickswap-cli/internal/models"
)

func newTestServer(t *testing.T) (*httptest.Server, *Memory) {
	t.Helper()
	store := NewMemory()
	srv := httptest.NewServer(NewRouter(&Handler{Store: store}, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv, store
}

func doReq(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatal(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// loginDemo authenticates the seeded account and returns its token.
func loginDemo(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp := doReq(t, "POST", srv.URL+"/api/auth/login", "", map[string]string{
		"email":    "a@hcmut.edu.vn",
		"password": "Demo123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	var out struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decode(t, resp, &out)
	if out.Token == "" {
		t.Fatal("login returned empty token")
	}
	return out.Token
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doReq(t, "POST", srv.URL+"/api/auth/login", "", map[string]string{
		"email":    "a@hcmut.edu.vn",
		"password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d; want 401", resp.StatusCode)
	}
	var out struct {
		Message string `json:"message"`
	}
	decode(t, resp, &out)
	if out.Message != ErrBadCredentials.Error() {
		t.Errorf("message = %q; want %q", out.Message, ErrBadCredentials.Error())
	}
}

func TestRegisterAndOtpFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doReq(t, "POST", srv.URL+"/api/auth/register", "", map[string]string{
		"fullName":        "Trần Thị B",
		"email":           "b@hcmut.edu.vn",
		"password":        "Pass123",
		"confirmPassword": "Pass123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register status = %d", resp.StatusCode)
	}

	// Duplicate email conflicts.
	resp = doReq(t, "POST", srv.URL+"/api/auth/register", "", map[string]string{
		"fullName":        "Trần Thị B",
		"email":           "b@hcmut.edu.vn",
		"password":        "Pass123",
		"confirmPassword": "Pass123",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register status = %d; want 409", resp.StatusCode)
	}

	// Wrong OTP rejected, fixed OTP accepted with a plain-text body.
	resp = doReq(t, "POST", srv.URL+"/api/auth/check-otp", "", map[string]string{
		"email": "b@hcmut.edu.vn", "otp": "123456",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad otp status = %d; want 401", resp.StatusCode)
	}
	resp = doReq(t, "POST", srv.URL+"/api/auth/check-otp", "", map[string]string{
		"email": "b@hcmut.edu.vn", "otp": FixedOtp,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("otp status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "thành công") {
		t.Errorf("otp body = %q; want plain-text success message", body)
	}

	// Password reset, then login with the new password.
	resp = doReq(t, "POST", srv.URL+"/api/auth/reset-password", "", map[string]string{
		"email": "b@hcmut.edu.vn", "otp": FixedOtp, "newPassword": "Moi456",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reset status = %d", resp.StatusCode)
	}
	resp = doReq(t, "POST", srv.URL+"/api/auth/login", "", map[string]string{
		"email": "b@hcmut.edu.vn", "password": "Moi456",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login with new password status = %d", resp.StatusCode)
	}
}

func TestAuthRequiredOutsideAuthRoutes(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doReq(t, "GET", srv.URL+"/api/posts?page=0&limit=5", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("no token: status = %d; want 401", resp.StatusCode)
	}

	resp = doReq(t, "GET", srv.URL+"/api/posts?page=0&limit=5", "bogus", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d; want 401", resp.StatusCode)
	}
}

func TestPostsPaginationNewestFirst(t *testing.T) {
	srv, _ := newTestServer(t)
	token := loginDemo(t, srv)

	var page struct {
		Content []models.Post `json:"content"`
	}
	resp := doReq(t, "GET", srv.URL+"/api/posts?page=0&limit=5", token, nil)
	decode(t, resp, &page)
	if len(page.Content) != 5 {
		t.Fatalf("page 0 len = %d; want 5", len(page.Content))
	}
	if page.Content[0].ID != 7 {
		t.Errorf("first post id = %d; want newest (7)", page.Content[0].ID)
	}

	resp = doReq(t, "GET", srv.URL+"/api/posts?page=1&limit=5", token, nil)
	decode(t, resp, &page)
	if len(page.Content) != 2 {
		t.Errorf("page 1 len = %d; want 2 (7 seeded posts)", len(page.Content))
	}

	resp = doReq(t, "GET", srv.URL+"/api/posts?page=2&limit=5", token, nil)
	decode(t, resp, &page)
	if len(page.Content) != 0 {
		t.Errorf("page 2 len = %d; want 0", len(page.Content))
	}
}

func TestCreateAndDeletePost(t *testing.T) {
	srv, _ := newTestServer(t)
	token := loginDemo(t, srv)

	resp := doReq(t, "POST", srv.URL+"/api/posts", token, map[string]any{
		"title":   "Bàn phím cơ",
		"content": "Dùng 6 tháng",
		"tags":    []string{"Trao đổi"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var created models.Post
	decode(t, resp, &created)
	if created.ID != 8 {
		t.Errorf("created id = %d; want 8", created.ID)
	}
	if created.UserName != "Nguyễn Văn A" {
		t.Errorf("author name = %q; want filled from account", created.UserName)
	}
	if created.Time == "" {
		t.Error("created post has no display time")
	}

	resp = doReq(t, "DELETE", fmt.Sprintf("%s/api/posts/%d", srv.URL, created.ID), token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d; want 204", resp.StatusCode)
	}

	resp = doReq(t, "DELETE", fmt.Sprintf("%s/api/posts/%d", srv.URL, created.ID), token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d; want 404", resp.StatusCode)
	}
}

func TestSaveUnsaveRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)
	token := loginDemo(t, srv)

	resp := doReq(t, "POST", srv.URL+"/api/posts/3/save", token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("save status = %d", resp.StatusCode)
	}

	var saved []models.Post
	resp = doReq(t, "GET", srv.URL+"/api/users/me/saved", token, nil)
	decode(t, resp, &saved)
	if len(saved) != 1 || saved[0].ID != 3 {
		t.Fatalf("saved = %v; want [post 3]", saved)
	}

	resp = doReq(t, "DELETE", srv.URL+"/api/posts/3/save", token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("unsave status = %d", resp.StatusCode)
	}
	resp = doReq(t, "GET", srv.URL+"/api/users/me/saved", token, nil)
	decode(t, resp, &saved)
	if len(saved) != 0 {
		t.Errorf("saved after unsave = %v; want empty", saved)
	}

	resp = doReq(t, "POST", srv.URL+"/api/posts/999/save", token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("save unknown post status = %d; want 404", resp.StatusCode)
	}
}

func TestSearchAndFilter(t *testing.T) {
	srv, _ := newTestServer(t)
	token := loginDemo(t, srv)

	var page struct {
		Content []models.Post `json:"content"`
	}
	resp := doReq(t, "GET", srv.URL+"/api/posts/search?keyword=casio", token, nil)
	decode(t, resp, &page)
	if len(page.Content) != 1 || page.Content[0].ID != 3 {
		t.Errorf("search casio = %v; want the calculator post", page.Content)
	}

	resp = doReq(t, "GET", srv.URL+"/api/posts/filter?tag="+url.QueryEscape("Cho mượn"), token, nil)
	decode(t, resp, &page)
	if len(page.Content) != 2 {
		t.Errorf("filter Cho mượn len = %d; want 2", len(page.Content))
	}
}

func TestUpdateProfileKeepsUnsentFields(t *testing.T) {
	srv, _ := newTestServer(t)
	token := loginDemo(t, srv)

	resp := doReq(t, "PUT", srv.URL+"/api/users/me", token, map[string]string{
		"phone": "0911111111",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d", resp.StatusCode)
	}
	var user models.User
	decode(t, resp, &user)
	if user.Phone != "0911111111" {
		t.Errorf("phone = %q; want updated", user.Phone)
	}
	if user.Name != "Nguyễn Văn A" {
		t.Errorf("name = %q; want unchanged", user.Name)
	}
}

func TestNotificationLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	token := loginDemo(t, srv)

	resp := doReq(t, "POST", srv.URL+"/api/notifications/send-to-user/1", token, map[string]string{
		"title": "Có người quan tâm tin của bạn",
		"body":  "Trần Thị B quan tâm đến \"Sách giáo trình\"",
	})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("send status = %d", resp.StatusCode)
	}

	var ns []models.Notification
	resp = doReq(t, "GET", srv.URL+"/api/notifications/me", token, nil)
	decode(t, resp, &ns)
	if len(ns) != 1 || ns[0].Read {
		t.Fatalf("notifications = %v; want one unread", ns)
	}

	resp = doReq(t, "PUT", fmt.Sprintf("%s/api/notifications/me/%d/read", srv.URL, ns[0].ID), token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("mark read status = %d", resp.StatusCode)
	}
	resp = doReq(t, "GET", srv.URL+"/api/notifications/me", token, nil)
	decode(t, resp, &ns)
	if !ns[0].Read {
		t.Error("notification still unread after mark-read")
	}
}

func TestRatings(t *testing.T) {
	srv, _ := newTestServer(t)
	token := loginDemo(t, srv)

	for _, stars := range []int{5, 4} {
		resp := doReq(t, "POST", srv.URL+"/api/users/1/rate", token, map[string]any{
			"stars":   stars,
			"comment": "Giao dịch nhanh",
		})
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("rate status = %d", resp.StatusCode)
		}
	}

	var summary models.RatingSummary
	resp := doReq(t, "GET", srv.URL+"/api/users/1/rating-summary", token, nil)
	decode(t, resp, &summary)
	if summary.Count != 2 || summary.Average != 4.5 {
		t.Errorf("summary = %+v; want count 2 average 4.5", summary)
	}

	var ratings []models.Rating
	resp = doReq(t, "GET", srv.URL+"/api/users/1/ratings", token, nil)
	decode(t, resp, &ratings)
	if len(ratings) != 2 || ratings[0].RaterName != "Nguyễn Văn A" {
		t.Errorf("ratings = %v; want 2 entries with rater name", ratings)
	}

	resp = doReq(t, "POST", srv.URL+"/api/users/1/rate", token, map[string]any{
		"stars": 9,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("out-of-range stars status = %d; want 400", resp.StatusCode)
	}
}
