package shop

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

	"github.com/google/uuid"
)

// API is the remote surface the stores depend on. *Client implements it;
// tests substitute fakes.
type API interface {
	ListProducts(ctx context.Context) ([]Product, error)
	AddToCart(ctx context.Context, token string, req CartRequest) error
	UpdateCart(ctx context.Context, token string, req CartRequest) error
	GetCart(ctx context.Context, token string) (CartData, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the storefront HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBackendURL = "127.0.0.1:4000"
	defaultUserAgent  = "storefront/0.1"
	requestTimeout    = 10 * time.Second

	// TokenHeader carries the session token on cart calls.
	TokenHeader = "token"
	// RequestIDHeader correlates a call with its log lines.
	RequestIDHeader = "X-Request-ID"
)

// NewClient builds a Client for the given backend URL or host:port value.
func NewClient(backendURL string) (*Client, error) {
	base, err := parseBaseURL(backendURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// ListProducts retrieves the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload ProductListResponse
	if err := c.do(ctx, http.MethodGet, "/api/product/list", "", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Products, nil
}

// AddToCart increments a cart line on the server.
func (c *Client) AddToCart(ctx context.Context, token string, req CartRequest) error {
	return c.cartCall(ctx, "/api/cart/add", token, req)
}

// UpdateCart sets a cart line on the server; quantity 0 deletes it.
func (c *Client) UpdateCart(ctx context.Context, token string, req CartRequest) error {
	return c.cartCall(ctx, "/api/cart/update", token, req)
}

// GetCart fetches the cart of the user the token belongs to.
func (c *Client) GetCart(ctx context.Context, token string) (CartData, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("token required")
	}
	var payload CartResponse
	if err := c.do(ctx, http.MethodPost, "/api/cart/get", token, cartGetRequest{}, &payload); err != nil {
		return nil, err
	}
	if payload.CartData == nil {
		return CartData{}, nil
	}
	return payload.CartData, nil
}

func (c *Client) cartCall(ctx context.Context, path, token string, req CartRequest) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("token required")
	}
	var payload Status
	return c.do(ctx, http.MethodPost, path, token, req, &payload)
}

func (c *Client) do(ctx context.Context, method, path, token string, body any, dest enveloped) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		// Error bodies usually carry {success:false, message}.
		var failure Status
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		return &APIError{Path: path, StatusCode: resp.StatusCode, Message: strings.TrimSpace(failure.Message)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if st := dest.status(); !st.Success {
		return &APIError{Path: path, StatusCode: resp.StatusCode, Message: strings.TrimSpace(st.Message)}
	}
	return nil
}

func parseBaseURL(backendURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(backendURL)
	if trimmed == "" {
		trimmed = defaultBackendURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse backend url %q: %w", backendURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
