package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a remote leaderboard client. It is safe for concurrent use.
type Client struct {
	api        string
	http       *http.Client
	timeout    time.Duration
	maxEntries int
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero disables the client-side bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithMaxEntries sets how many entries a Board holds.
func WithMaxEntries(n int) Option {
	return func(c *Client) {
		c.maxEntries = n
	}
}

// NewClient creates a client for the service rooted at api.
func NewClient(api string, opts ...Option) *Client {
	c := &Client{
		api:        strings.TrimRight(api, "/"),
		http:       http.DefaultClient,
		timeout:    5 * time.Second,
		maxEntries: 10,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// MaxEntries returns the board length.
func (c *Client) MaxEntries() int {
	return c.maxEntries
}

// Fetch returns the raw results for levelID, best first.
func (c *Client) Fetch(ctx context.Context, levelID string) ([]Result, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	route := c.api + "/highscores/lvl/" + url.PathEscape(levelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, route, nil)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: fetch %s: %w", levelID, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("leaderboard: fetch %s: %w", levelID, err)
	}

	var results []Result
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("leaderboard: decode %s: %w", levelID, err)
	}
	return results, nil
}

// Submit posts a finished game.
func (c *Client) Submit(ctx context.Context, sub Submission) error {
	if !ValidUsername(sub.PlayerName) {
		return ErrInvalidUsername
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	body, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("leaderboard: encode submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.api+"/submitScore", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("leaderboard: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("leaderboard: submit %s: %w", sub.LevelID, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return fmt.Errorf("leaderboard: submit %s: %w", sub.LevelID, err)
	}
	return nil
}

// Board is a grouped leaderboard ready for display.
type Board struct {
	LevelID   string
	Entries   []Entry
	Threshold float64
	Err       error // fetch failure; Threshold is Unavailable when set
}

// Board fetches and groups the leaderboard of levelID. A failed fetch is
// reported in Board.Err rather than returned, so the caller can render it.
func (c *Client) Board(ctx context.Context, levelID string) Board {
	results, err := c.Fetch(ctx, levelID)
	if err != nil {
		return Board{LevelID: levelID, Threshold: Unavailable, Err: err}
	}
	entries := Group(results, c.maxEntries)
	return Board{
		LevelID:   levelID,
		Entries:   entries,
		Threshold: Threshold(entries, c.maxEntries),
	}
}

// Qualifies reports whether score may be posted to this board.
func (b Board) Qualifies(score int) bool {
	return Qualifies(score, b.Threshold)
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP status %d", e.Code)
	}
	return fmt.Sprintf("HTTP status %d: %s", e.Code, e.Body)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}
