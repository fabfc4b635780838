// Package client provides a synchronizing API client for the wedding
// planner. It keeps one working copy of the project tree and never edits
// it locally: every mutation is sent as a minimal command, and on success
// the whole tree is refetched from the server and swapped in atomically.
// The server copy is the only source of truth.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/mmynk/weddingplan/internal/models"
)

var (
	// ErrSyncInFlight is returned when a mutation is attempted while
	// another one is still running for the same client.
	ErrSyncInFlight = errors.New("another sync is in flight")

	// ErrRefreshFailed is returned when the mutation was applied on the
	// server but the follow-up refetch failed. The local copy is stale
	// until the next successful call.
	ErrRefreshFailed = errors.New("mutation applied but refresh failed")

	// ErrStaleRefresh is returned when the working copy was already stale
	// and the catch-up refetch failed again. The command for this call was
	// never sent.
	ErrStaleRefresh = errors.New("stale copy could not be refreshed; command not sent")
)

// Tree is the client's working copy of one project: the project record
// with its full checklist and budget trees.
type Tree struct {
	Project models.WeddingProject `json:"project"`
	Phases  []models.Phase        `json:"phases"`
	Groups  []models.BudgetGroup  `json:"groups"`
}

// Client talks to one project through the HTTP API.
type Client struct {
	baseURL   string
	token     string
	projectID string
	http      *http.Client

	// inflight admits one mutation at a time; concurrent callers are
	// rejected, not queued.
	inflight sync.Mutex

	mu    sync.RWMutex
	tree  *Tree
	stale bool
}

// New creates a Client for the given project. token is the session token
// of the acting member.
func New(baseURL, token, projectID string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:   baseURL,
		token:     token,
		projectID: projectID,
		http:      httpClient,
	}
}

// Tree returns the current working copy, or nil before the first Load.
// The returned tree must be treated as read-only.
func (c *Client) Tree() *Tree {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tree
}

// Stale reports whether the working copy is known to lag the server
// (a mutation succeeded but its refresh did not).
func (c *Client) Stale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stale
}

// Load fetches the full tree and replaces the working copy.
func (c *Client) Load(ctx context.Context) error {
	if !c.inflight.TryLock() {
		return ErrSyncInFlight
	}
	defer c.inflight.Unlock()
	return c.refresh(ctx)
}

// mutate runs one command and, only if it succeeded, refetches the tree.
// A failed command leaves the working copy untouched. A failed refresh
// keeps the stale copy and reports ErrRefreshFailed; the next call
// refreshes again before sending anything, and reports ErrStaleRefresh
// if that catch-up fails too.
func (c *Client) mutate(ctx context.Context, method, path string, body, out any) error {
	if !c.inflight.TryLock() {
		return ErrSyncInFlight
	}
	defer c.inflight.Unlock()

	if c.Stale() {
		// Catch up before issuing the next command so it is judged
		// against current state, not the stale copy.
		if err := c.refresh(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrStaleRefresh, err)
		}
	}

	if err := c.do(ctx, method, path, body, out); err != nil {
		return err
	}

	if err := c.refresh(ctx); err != nil {
		c.mu.Lock()
		c.stale = true
		c.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	return nil
}

// refresh refetches project, phases and groups and swaps the tree in.
func (c *Client) refresh(ctx context.Context) error {
	var tree Tree
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+c.projectID, nil, &tree.Project); err != nil {
		return err
	}
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+c.projectID+"/phases", nil, &tree.Phases); err != nil {
		return err
	}
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+c.projectID+"/groups", nil, &tree.Groups); err != nil {
		return err
	}

	c.mu.Lock()
	c.tree = &tree
	c.stale = false
	c.mu.Unlock()
	return nil
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return &APIError{StatusCode: resp.StatusCode, Message: errBody.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
