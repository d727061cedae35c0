package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	legiFilePath   = "/Citizens/Detail_LegiFile.aspx"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	defaultTimeout = 60 * time.Second
	maxRetries     = 3
	initialBackoff = 2 * time.Second
)

// Client fetches resolution documents from an IQM2 records portal. The
// portal expects a browser user-agent; cookie state is held in the jar and
// is otherwise opaque to the pipeline.
type Client struct {
	legiFileURL string
	client      *http.Client
}

// NewClient creates a portal client rooted at baseURL
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &Client{
		legiFileURL: strings.TrimRight(baseURL, "/") + legiFilePath,
		client: &http.Client{
			Timeout: defaultTimeout,
			Jar:     jar,
		},
	}, nil
}

// Fetch retrieves the raw document text for one resolution id
func (c *Client) Fetch(ctx context.Context, resolutionID int64) (string, error) {
	params := url.Values{}
	params.Set("ID", strconv.FormatInt(resolutionID, 10))
	fetchURL := c.legiFileURL + "?" + params.Encode()

	body, err := c.fetchWithRetry(ctx, fetchURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch resolution %d: %w", resolutionID, err)
	}
	return string(body), nil
}

// fetchWithRetry performs an HTTP GET with exponential backoff retry
func (c *Client) fetchWithRetry(ctx context.Context, fetchURL string) ([]byte, error) {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()

		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			continue
		}

		return body, nil
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}
