package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dshills/aedificium/pkg/aedificium"
)

// Client is a minimal wrapper around *http.Client for the judge protocol.
// It is safe for concurrent use once ID has been set; SetID itself is not
// synchronized, since a session's id is assigned once by Register before
// any concurrent Explore calls begin.
type Client struct {
	baseURL string
	id      string
	http    *http.Client
}

// NewClient builds a Client against baseURL with the given per-request
// timeout. baseURL's trailing slash, if any, is trimmed.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// ID returns the session id assigned by Register, or "" before Register
// has been called.
func (c *Client) ID() string { return c.id }

// SetID overrides the session id, for CLI invocations that persist and
// reuse an id issued by a previous run.
func (c *Client) SetID(id string) { c.id = id }

type registerRequest struct {
	Name  string `json:"name"`
	PL    string `json:"pl"`
	Email string `json:"email"`
}

type registerResponse struct {
	ID string `json:"id"`
}

// Register exchanges team identity for a session id, stored on c for
// subsequent calls.
func (c *Client) Register(ctx context.Context, name, pl, email string) (string, error) {
	var resp registerResponse
	if err := c.post(ctx, "/register", registerRequest{Name: name, PL: pl, Email: email}, &resp); err != nil {
		return "", fmt.Errorf("judge: register: %w", err)
	}
	c.id = resp.ID
	return resp.ID, nil
}

type selectRequest struct {
	ID          string `json:"id"`
	ProblemName string `json:"problemName"`
}

type selectResponse struct {
	ProblemName string `json:"problemName"`
}

// Select starts a session against problemName.
func (c *Client) Select(ctx context.Context, problemName string) (string, error) {
	var resp selectResponse
	if err := c.post(ctx, "/select", selectRequest{ID: c.id, ProblemName: problemName}, &resp); err != nil {
		return "", fmt.Errorf("judge: select: %w", err)
	}
	return resp.ProblemName, nil
}

type exploreRequest struct {
	ID    string   `json:"id"`
	Plans []string `json:"plans"`
}

// ExploreResult is the judge's response to a batched Explore call.
type ExploreResult struct {
	Results    [][]int `json:"results"`
	QueryCount int     `json:"queryCount"`
}

// Explore submits plans (already formatted per aedificium.FormatPlan) in
// one batched call and returns one label sequence per plan, in the same
// order the plans were submitted, plus the session's running query count.
func (c *Client) Explore(ctx context.Context, plans []string) (ExploreResult, error) {
	var resp ExploreResult
	if err := c.post(ctx, "/explore", exploreRequest{ID: c.id, Plans: plans}, &resp); err != nil {
		return ExploreResult{}, fmt.Errorf("judge: explore: %w", err)
	}
	if len(resp.Results) != len(plans) {
		return resp, fmt.Errorf("judge: explore: got %d results for %d plans", len(resp.Results), len(plans))
	}
	return resp, nil
}

// ExploreOne wraps a single-plan Explore call, returning just that plan's
// label sequence.
func (c *Client) ExploreOne(ctx context.Context, plan []aedificium.Token) ([]int, error) {
	result, err := c.Explore(ctx, []string{aedificium.FormatPlan(plan)})
	if err != nil {
		return nil, err
	}
	return result.Results[0], nil
}

// MultiExplorer adapts a Client to pkg/duplicate.Explorer and
// pkg/fingerprint.Explorer, both of which submit a whole batch of plans
// in one round trip.
type MultiExplorer struct {
	*Client
}

// Explore implements pkg/duplicate.Explorer and pkg/fingerprint.Explorer.
func (e MultiExplorer) Explore(ctx context.Context, plans []string) ([][]int, error) {
	result, err := e.Client.Explore(ctx, plans)
	if err != nil {
		return nil, err
	}
	return result.Results, nil
}

type guessRequest struct {
	ID  string                `json:"id"`
	Map *aedificium.Aedificium `json:"map"`
}

// GuessResult reports whether a submitted layout matched the judge's
// hidden graph.
type GuessResult struct {
	Correct bool   `json:"correct"`
	Reason  string `json:"reason,omitempty"`
}

// Guess submits a candidate layout, ending the session regardless of the
// outcome: a subsequent attempt must call Select again.
func (c *Client) Guess(ctx context.Context, layout *aedificium.Aedificium) (GuessResult, error) {
	var resp GuessResult
	if err := c.post(ctx, "/guess", guessRequest{ID: c.id, Map: layout}, &resp); err != nil {
		return GuessResult{}, fmt.Errorf("judge: guess: %w", err)
	}
	return resp, nil
}

type spoilerRequest struct {
	ID string `json:"id"`
}

type spoilerResponse struct {
	Map *aedificium.Aedificium `json:"map"`
}

// Spoiler fetches the hidden graph directly. Only the mock server (pkg/
// mockserver) implements this endpoint; the real judge has no such route.
func (c *Client) Spoiler(ctx context.Context) (*aedificium.Aedificium, error) {
	var resp spoilerResponse
	if err := c.post(ctx, "/spoiler", spoilerRequest{ID: c.id}, &resp); err != nil {
		return nil, fmt.Errorf("judge: spoiler: %w", err)
	}
	return resp.Map, nil
}

// post issues a JSON POST to baseURL+path, decoding a JSON response into
// out. A non-2xx status is reported with the response body as context.
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
