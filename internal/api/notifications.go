package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/quickswap/quickswap-cli/internal/models"
)

// Notifications fetches the current user's notifications, newest first.
func (c *Client) Notifications(ctx context.Context) ([]models.Notification, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/notifications/me", nil, true)
	if err != nil {
		return nil, err
	}
	var out []models.Notification
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UnreadCount fetches notifications and counts the unread ones. Used by
// the home-screen badge poller.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	ns, err := c.Notifications(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, it := range ns {
		if !it.Read {
			n++
		}
	}
	return n, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/api/notifications/me/%d/read", id), nil, true)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

// SendNotification delivers a message to another user, e.g. "I'm
// interested in your post".
func (c *Client) SendNotification(ctx context.Context, userID int64, title, body string) error {
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/api/notifications/send-to-user/%d", userID), map[string]string{
		"title": title,
		"body":  body,
	}, true)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}
