// Package airtable adapts the canonical renovation model to Airtable's
// flat-record API: one base, five fixed tables, human-readable column
// names and boolean-formula filters.
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/oakbuilt/renoplan/internal/store"
)

const defaultBaseURL = "https://api.airtable.com/v0"

// Client is a minimal Airtable REST client scoped to one base.
type Client struct {
	BaseURL    string
	APIKey     string
	BaseID     string
	HTTPClient *http.Client
}

// NewClient creates a client with sane defaults for the given base.
func NewClient(apiKey, baseID string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		APIKey:  apiKey,
		BaseID:  baseID,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// record is Airtable's wire shape: an opaque id, the server-assigned
// creation time, and a flat field-name → value object.
type record struct {
	ID          string         `json:"id"`
	CreatedTime time.Time      `json:"createdTime"`
	Fields      map[string]any `json:"fields"`
}

type recordPage struct {
	Records []record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

type writeRequest struct {
	Fields map[string]any `json:"fields"`
}

// apiError is Airtable's error envelope. The error field is either a
// string or an object; keep it raw and extract best-effort.
type apiError struct {
	Error json.RawMessage `json:"error"`
}

func (c *Client) do(ctx context.Context, method, table, recordID string, query url.Values, body any, out any) error {
	u := fmt.Sprintf("%s/%s/%s", c.BaseURL, c.BaseID, url.PathEscape(table))
	if recordID != "" {
		u += "/" + url.PathEscape(recordID)
	}
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

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

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("airtable request: %w: %v", store.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &store.RequestError{
			Backend: "airtable",
			Status:  resp.StatusCode,
			Reason:  errorReason(resp),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// errorReason extracts a human-readable message from an error response,
// falling back to the status text.
func errorReason(resp *http.Response) string {
	var envelope apiError
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && len(envelope.Error) > 0 {
		var s string
		if json.Unmarshal(envelope.Error, &s) == nil && s != "" {
			return s
		}
		var obj struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		}
		if json.Unmarshal(envelope.Error, &obj) == nil && obj.Message != "" {
			return obj.Message
		}
	}
	return http.StatusText(resp.StatusCode)
}

// list fetches every record matching the formula, following the offset
// token until the listing is exhausted.
func (c *Client) list(ctx context.Context, table, formula, sortColumn string, ascending bool) ([]record, error) {
	direction := "desc"
	if ascending {
		direction = "asc"
	}

	var all []record
	offset := ""
	for {
		query := url.Values{}
		if formula != "" {
			query.Set("filterByFormula", formula)
		}
		if sortColumn != "" {
			query.Set("sort[0][field]", sortColumn)
			query.Set("sort[0][direction]", direction)
		}
		if offset != "" {
			query.Set("offset", offset)
		}

		var page recordPage
		if err := c.do(ctx, http.MethodGet, table, "", query, nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Records...)

		if page.Offset == "" {
			return all, nil
		}
		offset = page.Offset
	}
}

// create inserts one record and returns it with its assigned id.
func (c *Client) create(ctx context.Context, table string, fields map[string]any) (*record, error) {
	var rec record
	if err := c.do(ctx, http.MethodPost, table, "", nil, writeRequest{Fields: fields}, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// update patches the named fields of one record. Unrecognized field
// names are rejected by the backend, not filtered here.
func (c *Client) update(ctx context.Context, table, id string, fields map[string]any) (*record, error) {
	var rec record
	if err := c.do(ctx, http.MethodPatch, table, id, nil, writeRequest{Fields: fields}, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// find fetches one record by id.
func (c *Client) find(ctx context.Context, table, id string) (*record, error) {
	var rec record
	if err := c.do(ctx, http.MethodGet, table, id, nil, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
