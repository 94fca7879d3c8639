// Package models defines the core data structures exchanged with the
// QuickSwap backend and shared across the client.
package models

import "encoding/json"

// Post is the canonical client-side shape of a marketplace post.
type Post struct {
	// ID is the unique identifier for the post.
	ID int64 `json:"id"`
	// UserID is the identifier of the owning user.
	UserID int64 `json:"userId"`
	// UserName is the denormalized display name of the author.
	UserName string `json:"userName"`
	// UserEmail is the denormalized contact email of the author.
	UserEmail string `json:"userEmail"`
	// UserPhone is the denormalized contact phone of the author.
	UserPhone string `json:"userPhone"`
	// Title is the post headline.
	Title string `json:"title"`
	// Time is the server-rendered display time ("Đăng 14h trước").
	Time string `json:"time"`
	// Tags holds the exchange-type labels ("Trao đổi", "Miễn phí", ...).
	Tags []string `json:"tags"`
	// Content is the free-text body.
	Content string `json:"content"`
	// Info holds extra display lines ("Danh mục: Sách", ...).
	Info []string `json:"info"`
	// Images holds uploaded image URLs.
	Images []string `json:"images"`
}

// User represents the authenticated user's profile as returned by
// /api/users/me and embedded in the login response.
type User struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Username   string  `json:"username"`
	Handle     string  `json:"handle"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	AvatarURL  string  `json:"avatarUrl"`
	University string  `json:"university"`
	Address    string  `json:"address"`
	Rating     float64 `json:"rating"`
}

// ProfileComplete reports whether the user has filled in the fields the
// app requires before the home screen is usable.
func (u User) ProfileComplete() bool {
	return u.Name != "" && u.Username != "" && u.Phone != "" &&
		u.University != "" && u.Address != ""
}

// Notification is a single entry from /api/notifications/me.
type Notification struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}

// Rating is one review left on a user's profile.
type Rating struct {
	Stars     int    `json:"stars"`
	Comment   string `json:"comment"`
	RaterName string `json:"raterName"`
	CreatedAt string `json:"createdAt"`
}

// RatingSummary aggregates a user's received ratings.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// rawPost mirrors the loosely-populated wire shape of a post. Older
// backend rows omit the author display fields and the time string.
type rawPost struct {
	ID        int64    `json:"id"`
	UserID    int64    `json:"userId"`
	UserName  string   `json:"userName"`
	UserEmail string   `json:"userEmail"`
	UserPhone string   `json:"userPhone"`
	Title     string   `json:"title"`
	Time      string   `json:"time"`
	Tags      []string `json:"tags"`
	Content   string   `json:"content"`
	Info      []string `json:"info"`
	Images    []string `json:"images"`
}

// Display defaults applied when the backend omits a field.
const (
	DefaultUserName = "Người dùng"
	DefaultPostTime = "Vừa xong"
)

// UnmarshalJSON decodes a post from the wire shape and fills display
// defaults so screens never render empty author/time fields or range
// over nil slices.
func (p *Post) UnmarshalJSON(data []byte) error {
	var raw rawPost
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Post{
		ID:        raw.ID,
		UserID:    raw.UserID,
		UserName:  raw.UserName,
		UserEmail: raw.UserEmail,
		UserPhone: raw.UserPhone,
		Title:     raw.Title,
		Time:      raw.Time,
		Tags:      raw.Tags,
		Content:   raw.Content,
		Info:      raw.Info,
		Images:    raw.Images,
	}
	if p.UserName == "" {
		p.UserName = DefaultUserName
	}
	if p.Time == "" {
		p.Time = DefaultPostTime
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Info == nil {
		p.Info = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return nil
}
