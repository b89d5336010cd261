package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dlms/chatbot/domain"
)

const (
	// maxBodyBytes caps how much of the catalog response is read.
	maxBodyBytes = 4 << 20
)

// Client reads the course list from the catalog service.
type Client struct {
	url        string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient returns a catalog client for the full listing URL. The timeout
// bounds the whole call, body read included.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ domain.CourseCatalog = (*Client)(nil)

// ListCourses performs a single GET. Every failure is a *domain.FetchError.
func (c *Client) ListCourses(ctx context.Context) ([]domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.FetchNetwork, Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.FetchError{Kind: classifyTransport(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &domain.FetchError{
			Kind:       statusKind(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &domain.FetchError{Kind: classifyTransport(err), StatusCode: resp.StatusCode, Err: fmt.Errorf("reading body: %w", err)}
	}
	if len(body) > maxBodyBytes {
		return nil, &domain.FetchError{Kind: domain.FetchDecode, StatusCode: resp.StatusCode, Err: errors.New("response body too large")}
	}

	var courses []domain.Course
	if err := json.Unmarshal(body, &courses); err != nil {
		return nil, &domain.FetchError{Kind: domain.FetchDecode, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding courses: %w", err)}
	}
	// A literal JSON null is not a list.
	if courses == nil {
		return nil, &domain.FetchError{Kind: domain.FetchDecode, StatusCode: resp.StatusCode, Err: errors.New("response is not a list")}
	}

	return courses, nil
}
