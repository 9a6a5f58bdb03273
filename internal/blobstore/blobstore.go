// Package blobstore is a client for the image object store. Images are
// written under date-partitioned keys and addressed by the returned path.
package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Client talks to the blob storage HTTP API. Authentication uses a SAS-style
// query token appended to every request URL.
type Client struct {
	parsedURL  *url.URL
	container  string
	sasToken   string
	httpClient *http.Client
}

// NewClient creates a blob store client for the given container.
func NewClient(rawURL, container, sasToken string) (*Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid blob store URL: %w", err)
	}
	if container == "" {
		return nil, fmt.Errorf("blob container is required")
	}
	return &Client{
		parsedURL:  parsed,
		container:  container,
		sasToken:   sasToken,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Key builds a date-partitioned blob key: <prefix>/<YYYY-MM-DD>/<uuid>.jpg.
func Key(prefix string, now time.Time) string {
	return fmt.Sprintf("%s/%s/%s.jpg", prefix, now.UTC().Format("2006-01-02"), uuid.NewString())
}

// blobURL builds the full request URL for a blob key, including the SAS token.
func (c *Client) blobURL(key string) string {
	u := c.parsedURL.JoinPath(c.container, key)
	u.RawQuery = c.sasToken
	return u.String()
}

// Put stores a blob under the given key, overwriting any existing blob.
// Returns the key as the stored path reference.
func (c *Client) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.blobURL(key), bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-ms-blob-type", "BlockBlob")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("could not store blob: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("blob upload failed with status %d: %s", resp.StatusCode, string(body))
	}

	return key, nil
}

// Get fetches a blob's bytes by key.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.blobURL(key), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not fetch blob: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("blob fetch failed with status %d: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read blob body: %w", err)
	}
	return data, nil
}
