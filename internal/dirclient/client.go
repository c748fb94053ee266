// Package dirclient downloads the user directory XML from the intranet and
// keeps the local copy read by the API up to date.
package dirclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"presence/internal/directory"
)

// maxBody caps the size of a downloaded directory document.
const maxBody = 32 << 20

// Client fetches the directory document from a remote URL.
type Client struct {
	URL  string
	HTTP *http.Client
}

// New creates a client with configurable timeout.
func New(url string) *Client {
	return &Client{
		URL: url,
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch downloads the document and checks that it parses.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/xml, text/xml")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("directory service error %s: %s", resp.Status, string(bodyBytes))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}
	if _, err := directory.Parse(bytes.NewReader(body)); err != nil {
		return nil, err
	}
	return body, nil
}

// Sync fetches the document and replaces path when the content differs.
// It reports whether the file was written. The replacement is atomic so
// readers never see a partial document.
func (c *Client) Sync(ctx context.Context, path string) (bool, error) {
	body, err := c.Fetch(ctx)
	if err != nil {
		return false, err
	}
	if current, err := os.ReadFile(path); err == nil && bytes.Equal(current, body) {
		return false, nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".users-*.xml")
	if err != nil {
		return false, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, err
	}
	return true, nil
}
