package mx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const apiPrefix = "/_matrix/client/v3"

// Client is a thin request/response wrapper over the Matrix client-server
// API. It holds no protocol state beyond the credentials it sends.
type Client struct {
	Homeserver string
	UserID     string

	token string
	http  *http.Client
}

// New returns a client for the given homeserver. httpClient may be nil, in
// which case http.DefaultClient is used.
func New(homeserver, userID, accessToken string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		Homeserver: strings.TrimRight(homeserver, "/"),
		UserID:     userID,
		token:      accessToken,
		http:       httpClient,
	}
}

// APIError is a non-2xx response decoded from the standard Matrix error body.
type APIError struct {
	StatusCode int
	Code       string // e.g. M_NOT_FOUND
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("matrix: %s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("matrix: HTTP %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a Matrix 404.
func IsNotFound(err error) bool {
	var api *APIError
	return errors.As(err, &api) && api.StatusCode == http.StatusNotFound
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.Homeserver + apiPrefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var wire struct {
			Code    string `json:"errcode"`
			Message string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&wire); decodeErr == nil {
			apiErr.Code = wire.Code
			apiErr.Message = wire.Message
		}
		if apiErr.Message == "" {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, in, out)
}
