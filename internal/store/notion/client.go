// Package notion adapts the canonical renovation model to Notion's
// typed-property page model: every field is wrapped in a property kind
// (title, rich_text, select, date, relation, number, url, multi_select)
// and list queries use a structured filter/sort grammar rather than
// formula strings.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/oakbuilt/renoplan/internal/store"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"

	// apiVersion pins the wire format; Notion rejects unversioned calls.
	apiVersion = "2022-06-28"
)

// Client is a minimal Notion REST client.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a client with sane defaults.
func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// richText is one fragment of a title or rich_text property.
// Reads use plain_text; writes populate text.content.
type richText struct {
	PlainText string `json:"plain_text,omitempty"`
	Text      *struct {
		Content string `json:"content"`
	} `json:"text,omitempty"`
}

type selectOption struct {
	Name string `json:"name"`
}

type dateValue struct {
	Start string `json:"start"`
}

type relationRef struct {
	ID string `json:"id"`
}

// property is the union of every property shape this adapter reads.
// Exactly one member is populated per property; the rest decode empty.
type property struct {
	Title       []richText     `json:"title,omitempty"`
	RichText    []richText     `json:"rich_text,omitempty"`
	Select      *selectOption  `json:"select,omitempty"`
	Date        *dateValue     `json:"date,omitempty"`
	Relation    []relationRef  `json:"relation,omitempty"`
	Number      *float64       `json:"number,omitempty"`
	URL         string         `json:"url,omitempty"`
	MultiSelect []selectOption `json:"multi_select,omitempty"`
}

// page is Notion's storage unit as this adapter sees it.
type page struct {
	ID             string              `json:"id"`
	CreatedTime    time.Time           `json:"created_time"`
	LastEditedTime time.Time           `json:"last_edited_time"`
	Properties     map[string]property `json:"properties"`
}

type queryRequest struct {
	Filter      map[string]any `json:"filter,omitempty"`
	Sorts       []sortSpec     `json:"sorts,omitempty"`
	StartCursor string         `json:"start_cursor,omitempty"`
}

type queryResponse struct {
	Results    []page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

type createPageRequest struct {
	Parent     parentRef      `json:"parent"`
	Properties map[string]any `json:"properties"`
}

type parentRef struct {
	DatabaseID string `json:"database_id"`
}

type updatePageRequest struct {
	Properties map[string]any `json:"properties"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Notion-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("notion request: %w: %v", store.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reason := http.StatusText(resp.StatusCode)
		var envelope apiError
		if json.NewDecoder(resp.Body).Decode(&envelope) == nil && envelope.Message != "" {
			reason = envelope.Message
		}
		return &store.RequestError{
			Backend: "notion",
			Status:  resp.StatusCode,
			Reason:  reason,
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// queryDatabase runs a structured query, following cursors until the
// listing is exhausted.
func (c *Client) queryDatabase(ctx context.Context, databaseID string, req queryRequest) ([]page, error) {
	var all []page
	for {
		var resp queryResponse
		path := fmt.Sprintf("/databases/%s/query", databaseID)
		if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
			return nil, err
		}
		all = append(all, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			return all, nil
		}
		req.StartCursor = resp.NextCursor
	}
}

func (c *Client) createPage(ctx context.Context, databaseID string, properties map[string]any) (*page, error) {
	var pg page
	req := createPageRequest{
		Parent:     parentRef{DatabaseID: databaseID},
		Properties: properties,
	}
	if err := c.do(ctx, http.MethodPost, "/pages", req, &pg); err != nil {
		return nil, err
	}
	return &pg, nil
}

func (c *Client) updatePage(ctx context.Context, pageID string, properties map[string]any) (*page, error) {
	var pg page
	req := updatePageRequest{Properties: properties}
	if err := c.do(ctx, http.MethodPatch, "/pages/"+pageID, req, &pg); err != nil {
		return nil, err
	}
	return &pg, nil
}

func (c *Client) getPage(ctx context.Context, pageID string) (*page, error) {
	var pg page
	if err := c.do(ctx, http.MethodGet, "/pages/"+pageID, nil, &pg); err != nil {
		return nil, err
	}
	return &pg, nil
}
