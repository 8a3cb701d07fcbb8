// Package client is a typed HTTP client for the person record API.
//
// Server error envelopes are decoded back into coded domain errors, so
// callers can tell validation failures, missing records, and transport
// faults apart with dErrors.HasCode instead of matching on status codes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	dErrors "peoplebook/pkg/domain-errors"
)

// DateLayout is the wire format for date_of_birth (DD-MM-YYYY).
const DateLayout = "02-01-2006"

// RecordFields is the user-supplied portion of a record, the request body
// for create and update.
type RecordFields struct {
	FirstName   string `json:"first_Name"`
	LastName    string `json:"last_Name"`
	DateOfBirth string `json:"date_of_birth"`
	Email       string `json:"email"`
	Gender      string `json:"gender"`
	Country     string `json:"country"`
	State       string `json:"state"`
	City        string `json:"city"`
	Address     string `json:"address"`
	Pincode     string `json:"pincode"`
}

// Record is a persisted person record. The identifier is opaque on this
// side of the wire; only the server assigns and interprets it.
type Record struct {
	ID string `json:"id"`
	RecordFields
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Client talks to a peoplebook server.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. to set a timeout
// policy or to point tests at an httptest server transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New constructs a client for the server at baseURL (no trailing slash
// required).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListUsers fetches the full collection.
func (c *Client) ListUsers(ctx context.Context) ([]Record, error) {
	var records []Record
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetUser fetches one record by identifier.
func (c *Client) GetUser(ctx context.Context, id string) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodGet, "/api/users/"+id, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateUser persists a new record and returns it with the server-assigned
// identifier and timestamps.
func (c *Client) CreateUser(ctx context.Context, f RecordFields) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodPost, "/api/users", f, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateUser replaces the user-supplied fields of an existing record.
func (c *Client) UpdateUser(ctx context.Context, id string, f RecordFields) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodPut, "/api/users/"+id, f, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// DeleteUser removes a record permanently.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+id, nil, nil)
}

// do performs one JSON request/response cycle. Non-2xx responses are turned
// into coded errors from the server's error envelope.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "decode response body")
	}
	return nil
}

// decodeError rebuilds a coded error from the server's envelope, falling
// back to the HTTP status when the body is not an envelope.
func decodeError(resp *http.Response) error {
	var envelope struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error == "" {
		return dErrors.Newf(dErrors.CodeInternal, "unexpected status %d", resp.StatusCode)
	}

	code := dErrors.Code(envelope.Error)
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeNotFound, dErrors.CodeConflict, dErrors.CodeInternal:
	default:
		code = dErrors.CodeInternal
	}
	msg := envelope.Description
	if msg == "" {
		msg = envelope.Error
	}
	return dErrors.New(code, msg)
}
