// Package remote implements a read-only client for the remote
// installation's paginated HTTP API v2.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/chatmesh/chatmesh-importer/pkg/apperrors"
	"github.com/chatmesh/chatmesh-importer/pkg/logging"
	"github.com/chatmesh/chatmesh-importer/pkg/retry"
)

// Client talks to the remote API. All endpoints are cursor-paginated:
// each page carries a "next" URL, empty on the last page.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	retryCfg   *retry.Config
	logger     *zap.Logger
}

// NewClient creates a remote API client. apiURL is the bare host URL
// (no /api/v2 suffix, see config.CleanAPIURL).
func NewClient(apiURL, token string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    apiURL,
		token:      token,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		retryCfg:   retry.DefaultConfig(),
		logger:     logger.Named("remote"),
	}
}

// page is the envelope every list endpoint responds with.
type page[T any] struct {
	Next    string `json:"next"`
	Results []T    `json:"results"`
}

// Pager iterates the pages of one list endpoint. It is lazy, finite,
// and not restartable; Cursor exposes the next-page URL so an import
// can be checkpointed and resumed.
type Pager[T any] struct {
	client *Client
	next   string
	done   bool
}

func newPager[T any](c *Client, endpoint, cursor string) *Pager[T] {
	next := c.baseURL + "/api/v2/" + endpoint + ".json"
	if cursor != "" {
		next = cursor
	}
	return &Pager[T]{client: c, next: next}
}

// HasMore reports whether another page is available.
func (p *Pager[T]) HasMore() bool {
	return !p.done
}

// Cursor returns the URL of the page the next Fetch call will request,
// or "" when the pager is exhausted.
func (p *Pager[T]) Cursor() string {
	if p.done {
		return ""
	}
	return p.next
}

// Fetch retrieves the next page of records. Rate-limit and transient
// upstream failures are retried with backoff before an error is
// returned; a returned error means retries are exhausted.
func (p *Pager[T]) Fetch(ctx context.Context) ([]T, error) {
	if p.done {
		return nil, nil
	}

	pg, err := retry.DoWithResult(ctx, p.client.retryCfg, func() (page[T], error) {
		return getJSON[page[T]](ctx, p.client, p.next)
	})
	if err != nil {
		return nil, err
	}

	if pg.Next == "" {
		p.done = true
		p.next = ""
	} else {
		p.next = pg.Next
	}

	return pg.Results, nil
}

func getJSON[T any](ctx context.Context, c *Client, url string) (T, error) {
	var out T

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return out, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return out, apperrors.ErrRemoteAuth
	case resp.StatusCode == http.StatusNotFound:
		return out, apperrors.ErrRemoteNotFound
	default:
		// Retryable statuses (429, 5xx) surface the code so the retry
		// layer can classify them. Error bodies can echo request details
		// including credentials, so the snippet is sanitized.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		rawErr := fmt.Errorf("remote API returned HTTP %d: %s",
			resp.StatusCode, logging.TruncateString(string(body), 256))
		return out, errors.New(logging.SanitizeError(rawErr))
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}

// Groups pages the remote contact groups. cursor resumes from a
// previously checkpointed page URL; pass "" to start from the first page.
func (c *Client) Groups(cursor string) *Pager[Group] {
	return newPager[Group](c, "groups", cursor)
}

// Contacts pages the remote contacts.
func (c *Client) Contacts(cursor string) *Pager[Contact] {
	return newPager[Contact](c, "contacts", cursor)
}

// Labels pages the remote message labels.
func (c *Client) Labels(cursor string) *Pager[Label] {
	return newPager[Label](c, "labels", cursor)
}

// Broadcasts pages the remote broadcasts.
func (c *Client) Broadcasts(cursor string) *Pager[Broadcast] {
	return newPager[Broadcast](c, "broadcasts", cursor)
}

// Messages pages the remote messages.
func (c *Client) Messages(cursor string) *Pager[Message] {
	return newPager[Message](c, "messages", cursor)
}

// FlowStarts pages the remote flow starts.
func (c *Client) FlowStarts(cursor string) *Pager[FlowStart] {
	return newPager[FlowStart](c, "flow_starts", cursor)
}

// Runs pages the remote flow runs.
func (c *Client) Runs(cursor string) *Pager[Run] {
	return newPager[Run](c, "runs", cursor)
}

// Flows pages the remote flow definitions (used for run statistics).
func (c *Client) Flows(cursor string) *Pager[Flow] {
	return newPager[Flow](c, "flows", cursor)
}

// FlowCategoryCounts retrieves the per-category result tallies of one
// flow. This endpoint is not part of the paginated API; it answers a
// single document per flow.
func (c *Client) FlowCategoryCounts(ctx context.Context, flowUUID string) ([]ResultCount, error) {
	type envelope struct {
		Counts []ResultCount `json:"counts"`
	}

	url := fmt.Sprintf("%s/flow/category_counts/%s/", c.baseURL, flowUUID)
	env, err := retry.DoWithResult(ctx, c.retryCfg, func() (envelope, error) {
		return getJSON[envelope](ctx, c, url)
	})
	if err != nil {
		return nil, err
	}
	return env.Counts, nil
}
