package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/quickswap/quickswap-cli/internal/models"
)

// UpdateProfileRequest carries the editable profile fields. Empty
// fields are omitted and left unchanged by the backend.
type UpdateProfileRequest struct {
	Name       string `json:"name,omitempty"`
	Username   string `json:"username,omitempty"`
	Handle     string `json:"handle,omitempty"`
	Phone      string `json:"phone,omitempty"`
	University string `json:"university,omitempty"`
	Address    string `json:"address,omitempty"`
	AvatarURL  string `json:"avatarUrl,omitempty"`
}

// Me fetches the current user's profile.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var out models.User
	req, err := c.newRequest(ctx, http.MethodGet, "/api/users/me", nil, true)
	if err != nil {
		return out, err
	}
	err = c.doJSON(req, &out)
	return out, err
}

// UpdateMe updates the current user's profile and returns the stored
// record.
func (c *Client) UpdateMe(ctx context.Context, r UpdateProfileRequest) (models.User, error) {
	var out models.User
	req, err := c.newRequest(ctx, http.MethodPut, "/api/users/me", r, true)
	if err != nil {
		return out, err
	}
	err = c.doJSON(req, &out)
	return out, err
}

// SavedPosts fetches the current user's bookmarked posts.
func (c *Client) SavedPosts(ctx context.Context) ([]models.Post, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/users/me/saved", nil, true)
	if err != nil {
		return nil, err
	}
	var out []models.Post
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UserByID fetches another user's public profile.
func (c *Client) UserByID(ctx context.Context, id int64) (models.User, error) {
	var out models.User
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, true)
	if err != nil {
		return out, err
	}
	err = c.doJSON(req, &out)
	return out, err
}

// UserRatings fetches the reviews left on a user's profile.
func (c *Client) UserRatings(ctx context.Context, id int64) ([]models.Rating, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d/ratings", id), nil, true)
	if err != nil {
		return nil, err
	}
	var out []models.Rating
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RatingSummary fetches a user's average rating and review count.
func (c *Client) RatingSummary(ctx context.Context, id int64) (models.RatingSummary, error) {
	var out models.RatingSummary
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d/rating-summary", id), nil, true)
	if err != nil {
		return out, err
	}
	err = c.doJSON(req, &out)
	return out, err
}

// RateUser submits a star rating with an optional comment.
func (c *Client) RateUser(ctx context.Context, id int64, stars int, comment string) error {
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/api/users/%d/rate", id), map[string]any{
		"stars":   stars,
		"comment": comment,
	}, true)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}
