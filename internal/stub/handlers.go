package stub

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quickswap/quickswap-cli/internal/middleware"
	"github.com/quickswap/quickswap-cli/internal/models"
)

// Handler serves the stub API from a Memory store.
type Handler struct {
	Store *Memory
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeMessage reports an error as the {"message": ...} shape the
// client's error normalization looks for first.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		writeMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrBadCredentials), errors.Is(err, ErrBadOtp):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrEmailTaken):
		writeMessage(w, http.StatusConflict, err.Error())
	default:
		writeMessage(w, http.StatusInternalServerError, err.Error())
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	token, user, err := h.Store.Login(req.Email, req.Password)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, map[string]any{"token": token, "user": user})
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName        string `json:"fullName"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Password != req.ConfirmPassword {
		writeMessage(w, http.StatusBadRequest, "Mật khẩu xác nhận không khớp")
		return
	}
	user, err := h.Store.Register(req.FullName, req.Email, req.Password)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, map[string]string{"email": user.Email, "fullName": user.Name})
}

// ForgotPassword handles POST /api/auth/forgot-password. The real
// backend answers these endpoints with plain-text Vietnamese messages.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("OTP đã được gửi về email"))
}

// CheckOtp handles POST /api/auth/check-otp.
func (h *Handler) CheckOtp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Otp   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.Store.CheckOtp(req.Email, req.Otp); err != nil {
		writeStoreError(w, err)
		return
	}
	_, _ = w.Write([]byte("Xác minh OTP thành công"))
}

// ResendOtp handles POST /api/auth/resend-otp.
func (h *Handler) ResendOtp(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("Đã gửi lại mã OTP"))
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		Otp         string `json:"otp"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.Store.ResetPassword(req.Email, req.Otp, req.NewPassword); err != nil {
		writeStoreError(w, err)
		return
	}
	_, _ = w.Write([]byte("Đặt lại mật khẩu thành công"))
}

// Posts handles GET /api/posts?page=&limit=.
func (h *Handler) Posts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 5
	}
	writeJSON(w, map[string]any{"content": h.Store.Posts(page, limit)})
}

// SearchPosts handles GET /api/posts/search?keyword=.
func (h *Handler) SearchPosts(w http.ResponseWriter, r *http.Request) {
	kw := strings.ToLower(r.URL.Query().Get("keyword"))
	posts := h.Store.Search(func(p models.Post) bool {
		return strings.Contains(strings.ToLower(p.Title), kw) ||
			strings.Contains(strings.ToLower(p.Content), kw)
	})
	writeJSON(w, map[string]any{"content": posts})
}

// FilterPosts handles GET /api/posts/filter?tag=.
func (h *Handler) FilterPosts(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")
	posts := h.Store.Search(func(p models.Post) bool {
		for _, t := range p.Tags {
			if t == tag {
				return true
			}
		}
		return false
	})
	writeJSON(w, map[string]any{"content": posts})
}

// CreatePost handles POST /api/posts.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	var req models.Post
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	post, err := h.Store.CreatePost(userID, req)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, post)
}

// DeletePost handles DELETE /api/posts/{id}.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Store.DeletePost(userID, id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SavePost handles POST /api/posts/{id}/save.
func (h *Handler) SavePost(w http.ResponseWriter, r *http.Request) {
	h.setSaved(w, r, true)
}

// UnsavePost handles DELETE /api/posts/{id}/save.
func (h *Handler) UnsavePost(w http.ResponseWriter, r *http.Request) {
	h.setSaved(w, r, false)
}

func (h *Handler) setSaved(w http.ResponseWriter, r *http.Request, on bool) {
	userID := middleware.GetUserIDFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Store.SetSaved(userID, id, on); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/users/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.Store.User(middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, user)
}

// UpdateMe handles PUT /api/users/me.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		Username   string `json:"username"`
		Handle     string `json:"handle"`
		Phone      string `json:"phone"`
		University string `json:"university"`
		Address    string `json:"address"`
		AvatarURL  string `json:"avatarUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	user, err := h.Store.UpdateUser(middleware.GetUserIDFromContext(r.Context()), func(u *models.User) {
		if req.Name != "" {
			u.Name = req.Name
		}
		if req.Username != "" {
			u.Username = req.Username
		}
		if req.Handle != "" {
			u.Handle = req.Handle
		}
		if req.Phone != "" {
			u.Phone = req.Phone
		}
		if req.University != "" {
			u.University = req.University
		}
		if req.Address != "" {
			u.Address = req.Address
		}
		if req.AvatarURL != "" {
			u.AvatarURL = req.AvatarURL
		}
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, user)
}

// SavedPosts handles GET /api/users/me/saved.
func (h *Handler) SavedPosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Store.SavedPosts(middleware.GetUserIDFromContext(r.Context())))
}

// UserByID handles GET /api/users/{id}.
func (h *Handler) UserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}
	user, err := h.Store.User(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, user)
}

// UserRatings handles GET /api/users/{id}/ratings.
func (h *Handler) UserRatings(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}
	writeJSON(w, h.Store.Ratings(id))
}

// RatingSummary handles GET /api/users/{id}/rating-summary.
func (h *Handler) RatingSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}
	writeJSON(w, h.Store.Summary(id))
}

// RateUser handles POST /api/users/{id}/rate.
func (h *Handler) RateUser(w http.ResponseWriter, r *http.Request) {
	raterID := middleware.GetUserIDFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Stars   int    `json:"stars"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Stars < 1 || req.Stars > 5 {
		writeMessage(w, http.StatusBadRequest, "invalid rating")
		return
	}
	rater, err := h.Store.User(raterID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if err := h.Store.AddRating(id, models.Rating{
		Stars:     req.Stars,
		Comment:   req.Comment,
		RaterName: rater.Name,
		CreatedAt: "Vừa xong",
	}); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Notifications handles GET /api/notifications/me.
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Store.Notifications(middleware.GetUserIDFromContext(r.Context())))
}

// MarkRead handles PUT /api/notifications/me/{id}/read.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Store.MarkRead(userID, id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SendNotification handles POST /api/notifications/send-to-user/{id}.
func (h *Handler) SendNotification(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.Store.AddNotification(id, req.Title, req.Body); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage handles POST /api/upload/image. The stub does not keep
// the bytes; it just answers with a deterministic-looking URL.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid upload")
		return
	}
	f, header, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "missing file field")
		return
	}
	_ = f.Close()
	writeJSON(w, map[string]string{
		"url": "https://img.quickswap.local/" + uuid.NewString() + "/" + header.Filename,
	})
}
