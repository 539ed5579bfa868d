package foodikal

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
	"time"

	"github.com/google/uuid"
)

// API defines the remote menu/order/promo service used by the client.
// This interface is implemented by *Client and can be used for testing.
type API interface {
	FetchMenu(ctx context.Context) (Catalog, error)
	FetchBanners(ctx context.Context) ([]Banner, error)
	ValidatePromo(ctx context.Context, code string, items []OrderItem) (PromoResult, error)
	CreateOrder(ctx context.Context, req CreateOrderRequest) (OrderConfirmation, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the foodikal HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	// DefaultBaseURL is the production CORS wrapper in front of the order service.
	DefaultBaseURL   = "https://foodikal-ny-cors-wrapper.x-gs-x.workers.dev"
	defaultUserAgent = "foodikal/0.1"
	requestTimeout   = 10 * time.Second

	defaultPromoError = "Failed to validate promo code"
	defaultOrderError = "Failed to create order"
)

// APIError is an application-level failure: the service answered with
// success=false.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Details    map[string]string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("api %s failed (status %d): %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api %s failed: %s", e.Endpoint, e.Message)
}

// Detail returns the field-level message for key, if the service sent one.
func (e *APIError) Detail(key string) (string, bool) {
	if e == nil || e.Details == nil {
		return "", false
	}
	msg, ok := e.Details[key]
	if !ok || strings.TrimSpace(msg) == "" {
		return "", false
	}
	return msg, true
}

// NewClient builds a Client for the given base URL.
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
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

// BaseURL returns the normalized service root.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// FetchMenu retrieves the current catalog.
func (c *Client) FetchMenu(ctx context.Context) (Catalog, error) {
	if c == nil {
		return Catalog{}, fmt.Errorf("client is nil")
	}
	var payload MenuResponse
	if _, err := c.do(ctx, http.MethodGet, "/api/menu", nil, &payload, true); err != nil {
		return Catalog{}, err
	}
	if !payload.Success || payload.Data == nil {
		msg := payload.Error
		if msg == "" {
			msg = "Invalid menu data"
		}
		return Catalog{}, &APIError{Endpoint: "/api/menu", Message: msg}
	}
	return *payload.Data, nil
}

// FetchBanners retrieves the carousel banners in display order.
func (c *Client) FetchBanners(ctx context.Context) ([]Banner, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload BannersResponse
	if _, err := c.do(ctx, http.MethodGet, "/api/banners", nil, &payload, true); err != nil {
		return nil, err
	}
	if !payload.Success || payload.Banners == nil {
		msg := payload.Error
		if msg == "" {
			msg = "Invalid banner data"
		}
		return nil, &APIError{Endpoint: "/api/banners", Message: msg}
	}
	return payload.Banners, nil
}

// ValidatePromo asks the service whether code applies to the given items.
// A success=false payload is an invalid code, not an error; only transport
// and decoding failures return an error.
func (c *Client) ValidatePromo(ctx context.Context, code string, items []OrderItem) (PromoResult, error) {
	if c == nil {
		return PromoResult{}, fmt.Errorf("client is nil")
	}
	if items == nil {
		items = []OrderItem{}
	}
	body := ValidatePromoRequest{PromoCode: code, OrderItems: items}
	var payload ValidatePromoResponse
	if _, err := c.do(ctx, http.MethodPost, "/api/validate_promo", body, &payload, false); err != nil {
		return PromoResult{}, err
	}
	if !payload.Success {
		msg := payload.Error
		if msg == "" {
			msg = defaultPromoError
		}
		return PromoResult{Valid: false, Message: msg}, nil
	}
	return PromoResult{
		Valid:          payload.Valid,
		Subtotal:       amount(payload.Subtotal),
		DiscountAmount: amount(payload.DiscountAmount),
		FinalTotal:     amount(payload.FinalTotal),
		Message:        payload.Error,
	}, nil
}

// CreateOrder submits an order. Rejections come back as *APIError carrying
// the service's per-field details.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (OrderConfirmation, error) {
	if c == nil {
		return OrderConfirmation{}, fmt.Errorf("client is nil")
	}
	if req.OrderItems == nil {
		req.OrderItems = []OrderItem{}
	}
	var payload CreateOrderResponse
	status, err := c.do(ctx, http.MethodPost, "/api/create_order", req, &payload, false)
	if err != nil {
		return OrderConfirmation{}, err
	}
	if !payload.Success {
		msg := payload.Error
		if msg == "" {
			msg = defaultOrderError
		}
		return OrderConfirmation{}, &APIError{
			Endpoint:   "/api/create_order",
			StatusCode: status,
			Message:    msg,
			Details:    payload.Details,
		}
	}
	return OrderConfirmation{
		OrderID:    string(payload.OrderID),
		TotalPrice: amount(payload.TotalPrice),
		Message:    payload.Message,
	}, nil
}

// do executes a JSON request. When requireOK is false a non-2xx response is
// still decoded, because the service reports application failures in the body.
func (c *Client) do(ctx context.Context, method, path string, body, dest any, requireOK bool) (int, error) {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if requireOK && resp.StatusCode >= 400 {
		return resp.StatusCode, fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
	}
	if dest == nil {
		return resp.StatusCode, nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		if resp.StatusCode >= 400 {
			return resp.StatusCode, fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
		}
		if errors.Is(err, io.EOF) {
			return resp.StatusCode, fmt.Errorf("decode response: empty body")
		}
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base_url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
