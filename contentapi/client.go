package contentapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vibecircle/journal/internal/logging"
	"github.com/vibecircle/journal/pkg/interfaces"
)

var (
	// ErrUnavailable marks failures where the content service could not be
	// reached or answered with a server error. Callers may fall back to a
	// local snapshot when they see it.
	ErrUnavailable = errors.New("contentapi: content service unavailable")

	// ErrNotFound marks single-document queries that matched nothing.
	ErrNotFound = errors.New("contentapi: document not found")
)

const defaultAPIVersion = "2024-01-01"

// Config carries the connection settings for the content service.
type Config struct {
	// BaseURL overrides the derived service URL. Used in tests and for
	// self-hosted gateways.
	BaseURL    string
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	UseCDN     bool
}

// Client is a read client for the content service query API.
type Client struct {
	cfg    Config
	http   *http.Client
	logger interfaces.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger attaches a logger to the client.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a read client. Either BaseURL or the ProjectID/Dataset pair
// must be set.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" && (cfg.ProjectID == "" || cfg.Dataset == "") {
		return nil, errors.New("contentapi: project id and dataset are required")
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = defaultAPIVersion
	}
	c := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) baseURL() string {
	if c.cfg.BaseURL != "" {
		return strings.TrimRight(c.cfg.BaseURL, "/")
	}
	host := "api.sanity.io"
	if c.cfg.UseCDN {
		host = "apicdn.sanity.io"
	}
	return fmt.Sprintf("https://%s.%s", c.cfg.ProjectID, host)
}

// Posts returns every post document, newest first.
func (c *Client) Posts(ctx context.Context) ([]PostDocument, error) {
	var out []PostDocument
	if err := c.fetch(ctx, queryAllPosts, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PostBySlug returns the post with the given slug, or ErrNotFound.
func (c *Client) PostBySlug(ctx context.Context, slug string) (*PostDocument, error) {
	var out *PostDocument
	if err := c.fetch(ctx, queryPostBySlug, map[string]string{"slug": slug}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%w: post %q", ErrNotFound, slug)
	}
	return out, nil
}

// PostsByCategory returns posts whose category matches either the flat
// string or the resolved category title, newest first.
func (c *Client) PostsByCategory(ctx context.Context, category string) ([]PostDocument, error) {
	var out []PostDocument
	if err := c.fetch(ctx, queryPostsByCategory, map[string]string{"category": category}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PostsByAuthor returns posts attributed to the named author, newest first.
func (c *Client) PostsByAuthor(ctx context.Context, name string) ([]PostDocument, error) {
	var out []PostDocument
	if err := c.fetch(ctx, queryPostsByAuthor, map[string]string{"name": name}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AuthorByName returns the author with the exact name, or ErrNotFound.
func (c *Client) AuthorByName(ctx context.Context, name string) (*AuthorDocument, error) {
	var out *AuthorDocument
	if err := c.fetch(ctx, queryAuthorByName, map[string]string{"name": name}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%w: author %q", ErrNotFound, name)
	}
	return out, nil
}

// Authors returns all authors ordered by name, with post counts and the
// category of their most recent post.
func (c *Client) Authors(ctx context.Context) ([]AuthorDocument, error) {
	var out []AuthorDocument
	if err := c.fetch(ctx, queryAuthorsWithCounts, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type queryEnvelope struct {
	Result json.RawMessage `json:"result"`
}

func (c *Client) fetch(ctx context.Context, query string, params map[string]string, out any) error {
	values := url.Values{}
	values.Set("query", query)
	for key, val := range params {
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("contentapi: encode param %s: %w", key, err)
		}
		values.Set("$"+key, string(encoded))
	}

	endpoint := fmt.Sprintf("%s/v%s/data/query/%s?%s",
		c.baseURL(), c.cfg.APIVersion, url.PathEscape(c.cfg.Dataset), values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("contentapi: build query request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("content query failed", "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("contentapi: query failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var envelope queryEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("contentapi: decode query response: %w", err)
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("contentapi: decode query result: %w", err)
	}
	return nil
}
