// Package stub implements an in-memory QuickSwap backend used to run
// the terminal client end to end without the real server.
package stub

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/quickswap/quickswap-cli/internal/models"
)

// FixedOtp is accepted for every OTP check. The stub never sends mail.
const FixedOtp = "000000"

var (
	ErrBadCredentials = errors.New("Email hoặc mật khẩu không chính xác")
	ErrEmailTaken     = errors.New("Email đã được đăng ký")
	ErrBadOtp         = errors.New("Mã OTP không chính xác")
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
)

type account struct {
	user     models.User
	password string
}

// Memory is the stub's state: accounts, posts, bookmarks,
// notifications and ratings behind one mutex.
type Memory struct {
	mu sync.Mutex

	accounts map[int64]*account
	byEmail  map[string]int64
	tokens   map[string]int64

	posts  []models.Post
	nextID int64

	saved map[int64]map[int64]bool

	notifications map[int64][]models.Notification
	nextNotifID   int64

	ratings map[int64][]models.Rating
}

// NewMemory returns a store seeded with one account and a page and a
// half of posts.
func NewMemory() *Memory {
	m := &Memory{
		accounts:      make(map[int64]*account),
		byEmail:       make(map[string]int64),
		tokens:        make(map[string]int64),
		saved:         make(map[int64]map[int64]bool),
		notifications: make(map[int64][]models.Notification),
		ratings:       make(map[int64][]models.Rating),
		nextID:        1,
		nextNotifID:   1,
	}
	m.seed()
	return m
}

func (m *Memory) seed() {
	demo := models.User{
		ID:         1,
		Name:       "Nguyễn Văn A",
		Username:   "nguyenvana",
		Handle:     "@nguyenvana",
		Email:      "a@hcmut.edu.vn",
		Phone:      "0900000001",
		University: "ĐH Bách Khoa TP.HCM",
		Address:    "KTX Khu A, Thủ Đức",
		Rating:     4.5,
	}
	m.accounts[demo.ID] = &account{user: demo, password: "Demo123"}
	m.byEmail[demo.Email] = demo.ID

	seedTitles := []struct {
		title string
		tags  []string
	}{
		{"Sách giáo trình môn triết học", []string{"Trao đổi", "Miễn phí"}},
		{"Tai nghe Bluetooth", []string{"Cho mượn"}},
		{"Máy tính Casio fx-580", []string{"Trao đổi"}},
		{"Áo khoa còn mới size M", []string{"Miễn phí"}},
		{"Giáo trình Giải tích 2", []string{"Trao đổi"}},
		{"Đèn học để bàn", []string{"Cho mượn"}},
		{"Balo laptop 15 inch", []string{"Trao đổi"}},
	}
	for i, s := range seedTitles {
		m.posts = append(m.posts, models.Post{
			ID:        int64(i + 1),
			UserID:    demo.ID,
			UserName:  demo.Name,
			UserEmail: demo.Email,
			UserPhone: demo.Phone,
			Title:     s.title,
			Time:      "Đăng 2 ngày trước",
			Tags:      s.tags,
			Content:   "Còn rất mới, liên hệ mình nhé.",
			Info:      []string{"Tình trạng: Như mới"},
			Images:    []string{},
		})
	}
	m.nextID = int64(len(seedTitles) + 1)
}

// Login checks credentials and issues a fresh bearer token.
func (m *Memory) Login(email, password string) (string, models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byEmail[email]
	if !ok || m.accounts[id].password != password {
		return "", models.User{}, ErrBadCredentials
	}
	token := uuid.NewString()
	m.tokens[token] = id
	return token, m.accounts[id].user, nil
}

// Register creates a new account with only name and email populated;
// the rest is completed on the my-account screen.
func (m *Memory) Register(fullName, email, password string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[email]; ok {
		return models.User{}, ErrEmailTaken
	}
	id := int64(len(m.accounts) + 1)
	u := models.User{ID: id, Name: fullName, Email: email}
	m.accounts[id] = &account{user: u, password: password}
	m.byEmail[email] = id
	return u, nil
}

// CheckOtp accepts only the fixed stub OTP.
func (m *Memory) CheckOtp(email, otp string) error {
	if otp != FixedOtp {
		return ErrBadOtp
	}
	return nil
}

// ResetPassword sets a new password after an OTP check.
func (m *Memory) ResetPassword(email, otp, newPassword string) error {
	if err := m.CheckOtp(email, otp); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byEmail[email]
	if !ok {
		return ErrNotFound
	}
	m.accounts[id].password = newPassword
	return nil
}

// ResolveToken maps a bearer token to a user id.
func (m *Memory) ResolveToken(token string) (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.tokens[token]
	return id, ok
}

// Posts returns one page of posts, newest first.
func (m *Memory) Posts(page, limit int) []models.Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	ordered := make([]models.Post, len(m.posts))
	copy(ordered, m.posts)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID > ordered[j].ID })
	start := page * limit
	if start >= len(ordered) {
		return []models.Post{}
	}
	end := start + limit
	if end > len(ordered) {
		end = len(ordered)
	}
	return ordered[start:end]
}

// Search returns posts whose title or content contains the keyword.
func (m *Memory) Search(match func(models.Post) bool) []models.Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Post{}
	for _, p := range m.posts {
		if match(p) {
			out = append(out, p)
		}
	}
	return out
}

// CreatePost stores a new post owned by userID.
func (m *Memory) CreatePost(userID int64, p models.Post) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[userID]
	if !ok {
		return models.Post{}, ErrNotFound
	}
	p.ID = m.nextID
	m.nextID++
	p.UserID = userID
	p.UserName = acc.user.Name
	p.UserEmail = acc.user.Email
	p.UserPhone = acc.user.Phone
	p.Time = models.DefaultPostTime
	m.posts = append(m.posts, p)
	return p, nil
}

// DeletePost removes a post if userID owns it.
func (m *Memory) DeletePost(userID, postID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.posts {
		if p.ID != postID {
			continue
		}
		if p.UserID != userID {
			return ErrForbidden
		}
		m.posts = append(m.posts[:i], m.posts[i+1:]...)
		for _, set := range m.saved {
			delete(set, postID)
		}
		return nil
	}
	return ErrNotFound
}

// SetSaved adds or removes a bookmark.
func (m *Memory) SetSaved(userID, postID int64, on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	found := false
	for _, p := range m.posts {
		if p.ID == postID {
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}
	set := m.saved[userID]
	if set == nil {
		set = make(map[int64]bool)
		m.saved[userID] = set
	}
	if on {
		set[postID] = true
	} else {
		delete(set, postID)
	}
	return nil
}

// SavedPosts returns the user's bookmarked posts.
func (m *Memory) SavedPosts(userID int64) []models.Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Post{}
	for _, p := range m.posts {
		if m.saved[userID][p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// User returns a profile by id.
func (m *Memory) User(id int64) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return acc.user, nil
}

// UpdateUser overwrites the non-empty profile fields.
func (m *Memory) UpdateUser(id int64, set func(*models.User)) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	set(&acc.user)
	return acc.user, nil
}

// Notifications returns a user's notifications, newest first.
func (m *Memory) Notifications(userID int64) []models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	ns := m.notifications[userID]
	out := make([]models.Notification, len(ns))
	copy(out, ns)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// MarkRead flags one notification as read.
func (m *Memory) MarkRead(userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ns := m.notifications[userID]
	for i := range ns {
		if ns[i].ID == id {
			ns[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}

// AddNotification delivers a notification to a user.
func (m *Memory) AddNotification(userID int64, title, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[userID]; !ok {
		return ErrNotFound
	}
	m.notifications[userID] = append(m.notifications[userID], models.Notification{
		ID:        m.nextNotifID,
		Title:     title,
		Body:      body,
		CreatedAt: "Vừa xong",
	})
	m.nextNotifID++
	return nil
}

// AddRating records a review and recomputes the average.
func (m *Memory) AddRating(userID int64, r models.Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[userID]
	if !ok {
		return ErrNotFound
	}
	m.ratings[userID] = append(m.ratings[userID], r)
	sum := 0
	for _, it := range m.ratings[userID] {
		sum += it.Stars
	}
	acc.user.Rating = float64(sum) / float64(len(m.ratings[userID]))
	return nil
}

// Ratings returns a user's reviews.
func (m *Memory) Ratings(userID int64) []models.Rating {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Rating, len(m.ratings[userID]))
	copy(out, m.ratings[userID])
	return out
}

// Summary returns a user's rating aggregate.
func (m *Memory) Summary(userID int64) models.RatingSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	rs := m.ratings[userID]
	if len(rs) == 0 {
		return models.RatingSummary{}
	}
	sum := 0
	for _, r := range rs {
		sum += r.Stars
	}
	return models.RatingSummary{
		Average: float64(sum) / float64(len(rs)),
		Count:   len(rs),
	}
}
