// Package drive is a typed client for the subset of the Google Drive v3
// REST API this backend uses: folder discovery and creation, multipart
// document upload and update, listing, and deletion.
package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/devUbaid/LetterDrive-Backend/internal/core/domain"
)

const (
	defaultBaseURL   = "https://www.googleapis.com/drive/v3"
	defaultUploadURL = "https://www.googleapis.com/upload/drive/v3"
)

// ClientSource yields an HTTP client authenticated with a user's cached
// OAuth tokens. Defined at the consumer per Go convention "accept
// interfaces, return structs"; the oauth package provides the real
// implementation.
type ClientSource interface {
	Client(ctx context.Context, tokens domain.OAuthTokens) *http.Client
}

// Client is an HTTP client for the Google Drive v3 API. Remote failures are
// surfaced immediately — no retry, no token refresh — per the sync engine's
// fail-fast contract.
type Client struct {
	baseURL   string
	uploadURL string
	source    ClientSource
	logger    zerolog.Logger
}

// NewClient creates a Drive API client.
func NewClient(source ClientSource, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:   defaultBaseURL,
		uploadURL: defaultUploadURL,
		source:    source,
		logger:    logger,
	}
}

// do executes one request with the user's credentials and decodes a JSON
// response into out (skipped when out is nil). Non-2xx statuses wrap
// domain.ErrRemoteUnavailable; the response body is logged, never returned
// to the caller.
func (c *Client) do(ctx context.Context, user *domain.User, method, url, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("drive: build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	httpClient := c.source.Client(ctx, domain.OAuthTokens{
		AccessToken:  user.AccessToken,
		RefreshToken: user.RefreshToken,
	})

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("drive: %s %s: %w: %w", method, req.URL.Path, domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error().
			Str("method", method).
			Str("path", req.URL.Path).
			Int("status", resp.StatusCode).
			Str("body", string(detail)).
			Msg("drive api error")
		return fmt.Errorf("drive: %s %s returned status %d: %w", method, req.URL.Path, resp.StatusCode, domain.ErrRemoteUnavailable)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("drive: decode response: %w", err)
	}
	return nil
}

// escapeQueryValue escapes a string for interpolation into a Drive search
// query, where values are single-quoted.
func escapeQueryValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
