package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/quickswap/quickswap-cli/internal/models"
)

// postPage is the envelope of the paginated post endpoints.
type postPage struct {
	Content []models.Post `json:"content"`
}

// CreatePostRequest is the JSON payload for POST /api/posts.
type CreatePostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	Info    []string `json:"info"`
	Images  []string `json:"images"`
}

// Posts fetches one page of the home feed.
func (c *Client) Posts(ctx context.Context, page, limit int) ([]models.Post, error) {
	path := fmt.Sprintf("/api/posts?page=%d&limit=%d", page, limit)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}
	var out postPage
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return out.Content, nil
}

// SearchPosts fetches posts matching a free-text keyword.
func (c *Client) SearchPosts(ctx context.Context, keyword string) ([]models.Post, error) {
	path := "/api/posts/search?keyword=" + url.QueryEscape(keyword)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}
	var out postPage
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return out.Content, nil
}

// FilterPosts fetches posts carrying the given tag.
func (c *Client) FilterPosts(ctx context.Context, tag string) ([]models.Post, error) {
	path := "/api/posts/filter?tag=" + url.QueryEscape(tag)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}
	var out postPage
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return out.Content, nil
}

// CreatePost submits a new post and returns the stored record.
func (c *Client) CreatePost(ctx context.Context, r CreatePostRequest) (models.Post, error) {
	var out models.Post
	req, err := c.newRequest(ctx, http.MethodPost, "/api/posts", r, true)
	if err != nil {
		return out, err
	}
	err = c.doJSON(req, &out)
	return out, err
}

// DeletePost removes a post owned by the current user.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d", id), nil, true)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

// SavePost bookmarks a post for the current user.
func (c *Client) SavePost(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/save", id), nil, true)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

// UnsavePost removes a bookmark.
func (c *Client) UnsavePost(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d/save", id), nil, true)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}
