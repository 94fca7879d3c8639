package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// UploadImage uploads a local image file as multipart form data and
// returns the URL assigned by the backend.
func (c *Client) UploadImage(ctx context.Context, path string) (string, error) {
	tok := c.token()
	if tok == "" {
		return "", ErrUnauthorized
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload/image", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("X-Request-Id", uuid.NewString())

	var out struct {
		URL string `json:"url"`
	}
	if err := c.doJSON(req, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}
