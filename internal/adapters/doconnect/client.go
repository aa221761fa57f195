package doconnect

// Package doconnect is the HTTP adapter for the remote DoConnect Q&A API.
// It implements the ports in internal/ports: bearer auth on every call,
// multipart packaging for submissions, and mapping of upstream statuses
// into the application error taxonomy (401/403 become unauthorized errors
// that the workflow engine treats as control flow, not failures).

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/doconnect/doconnect-web/internal/errors"

	domainauth "github.com/doconnect/doconnect-web/internal/domain/auth"
)

// maxErrorBody bounds how much of an upstream error body is kept for logs.
const maxErrorBody = 2048

// Config captures the client configuration.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:5108/api".
	BaseURL string
	// Timeout bounds each request. Ignored when Client is provided.
	Timeout time.Duration
	// Client overrides the HTTP client (tests).
	Client *http.Client
}

// Client talks to the remote DoConnect API. It is safe for concurrent use.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient builds a DoConnect API client.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("doconnect api base url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{baseURL: baseURL, client: hc}, nil
}

// requestParams groups the pieces of one upstream call.
type requestParams struct {
	Method      string
	Path        string
	Query       string
	Body        io.Reader
	ContentType string
	Cred        domainauth.Credential
}

// do issues a request and returns the response body for 2xx statuses.
// Non-2xx statuses are mapped through the error taxonomy; the body is
// always fully consumed so connections can be reused.
func (c *Client) do(ctx context.Context, p requestParams) ([]byte, error) {
	u := c.baseURL + p.Path
	if p.Query != "" {
		u += "?" + p.Query
	}

	req, err := http.NewRequestWithContext(ctx, p.Method, u, p.Body)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "build %s %s", p.Method, p.Path)
	}
	if p.ContentType != "" {
		req.Header.Set("Content-Type", p.ContentType)
	}
	req.Header.Set("Accept", "application/json")
	if !p.Cred.IsZero() {
		req.Header.Set("Authorization", "Bearer "+string(p.Cred))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeUpstream, "%s %s", p.Method, p.Path)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeUpstream, "read %s %s response", p.Method, p.Path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.FromStatus(resp.StatusCode, truncateBody(body))
	}

	return body, nil
}

// get is a convenience wrapper for JSON GETs.
func (c *Client) get(ctx context.Context, cred domainauth.Credential, path, query string) ([]byte, error) {
	return c.do(ctx, requestParams{Method: http.MethodGet, Path: path, Query: query, Cred: cred})
}

// post issues a bodyless POST (moderation transitions).
func (c *Client) post(ctx context.Context, cred domainauth.Credential, path string) error {
	_, err := c.do(ctx, requestParams{Method: http.MethodPost, Path: path, Cred: cred})
	return err
}

func truncateBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody]
	}
	return s
}

// pathID guards against empty identifiers ending up in request paths.
func pathID(kind, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("%s id is required", kind)
	}
	return id, nil
}
