package foodikal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("url = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "example.com:1234" {
		t.Fatalf("url = %q, want http://example.com:1234", u.String())
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchMenuKeepsCategoryOrder(t *testing.T) {
	t.Parallel()

	var gotUserAgent, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-ID")
		if r.URL.Path != "/api/menu" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{
			"Салаты":[{"id":37,"name":"Винегрет","category":"Салаты","description":"d","price":175}],
			"Брускетты":[{"id":9,"name":"Брускетта","description":"b","price":300,"image":""}]
		}}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	catalog, err := c.FetchMenu(ctx)
	if err != nil {
		t.Fatalf("FetchMenu returned error: %v", err)
	}
	names := catalog.Names()
	if len(names) != 2 || names[0] != "Салаты" || names[1] != "Брускетты" {
		t.Fatalf("category order = %v, want [Салаты Брускетты]", names)
	}
	item, ok := catalog.Lookup(9)
	if !ok || item.Category != "Брускетты" || item.Price != 300 {
		t.Fatalf("Lookup(9) = %#v, %v; want category filled from key", item, ok)
	}
	if err := catalog.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if !strings.HasPrefix(gotUserAgent, "foodikal/") {
		t.Fatalf("User-Agent = %q, want foodikal/*", gotUserAgent)
	}
	if gotRequestID == "" {
		t.Fatalf("X-Request-ID header missing")
	}
}

func TestClient_FetchMenuApplicationError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"maintenance"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchMenu(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("FetchMenu error = %v, want *APIError", err)
	}
	if apiErr.Message != "maintenance" {
		t.Fatalf("APIError.Message = %q, want maintenance", apiErr.Message)
	}
}

func TestClient_FetchBanners(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(BannersResponse{Success: true, Banners: []Banner{
			{ID: 2, Name: "Тарталетки", ItemLink: "https://x/#Тарталетки", ImageURL: "a.jpg", DisplayOrder: 1},
			{ID: 1, Name: "Шуба", ItemLink: "https://x/#39", ImageURL: "b.jpg", DisplayOrder: 2},
		}})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	banners, err := c.FetchBanners(context.Background())
	if err != nil {
		t.Fatalf("FetchBanners returned error: %v", err)
	}
	if len(banners) != 2 || banners[0].ID != 2 {
		t.Fatalf("banners = %#v, want 2 banners starting with id 2", banners)
	}
	if got := banners[1].Target(); got != "39" {
		t.Fatalf("Target() = %q, want 39", got)
	}
}

func TestClient_ValidatePromo(t *testing.T) {
	t.Parallel()

	var gotBody ValidatePromoRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		switch gotBody.PromoCode {
		case "SALE10":
			_, _ = w.Write([]byte(`{"success":true,"valid":true,"subtotal":437,"discount_amount":37,"final_total":400}`))
		case "NOPE":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"error":"Промокод не найден"}`))
		default:
			_, _ = w.Write([]byte(`{"success":false}`))
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	res, err := c.ValidatePromo(context.Background(), "SALE10", []OrderItem{{ItemID: 9, Quantity: 1}})
	if err != nil {
		t.Fatalf("ValidatePromo returned error: %v", err)
	}
	if !res.Valid || res.FinalTotal != 400 || res.DiscountAmount != 37 {
		t.Fatalf("ValidatePromo = %#v, want valid 400/37", res)
	}
	if len(gotBody.OrderItems) != 1 || gotBody.OrderItems[0].ItemID != 9 {
		t.Fatalf("request items = %#v, want item 9", gotBody.OrderItems)
	}

	res, err = c.ValidatePromo(context.Background(), "NOPE", nil)
	if err != nil {
		t.Fatalf("ValidatePromo returned error: %v", err)
	}
	if res.Valid || res.Message != "Промокод не найден" {
		t.Fatalf("ValidatePromo = %#v, want invalid with server message", res)
	}

	res, err = c.ValidatePromo(context.Background(), "OTHER", nil)
	if err != nil {
		t.Fatalf("ValidatePromo returned error: %v", err)
	}
	if res.Valid || res.Message != defaultPromoError {
		t.Fatalf("ValidatePromo = %#v, want default message", res)
	}
}

func TestClient_CreateOrder(t *testing.T) {
	t.Parallel()

	var got CreateOrderRequest
	var raw map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body json.RawMessage
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.Unmarshal(body, &got)
		_ = json.Unmarshal(body, &raw)
		if got.PromoCode == "BAD" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"error":"Validation failed","details":{"promo_code":"Промокод истёк"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"order_id":17,"total_price":400,"message":"ok"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	conf, err := c.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerName:    "Анна",
		CustomerContact: "@anna",
		DeliveryAddress: "Белград, ул. 1",
		DeliveryDate:    "2026-12-31",
		OrderItems:      []OrderItem{{ItemID: 9, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if conf.OrderID != "17" || conf.TotalPrice != 400 {
		t.Fatalf("CreateOrder = %#v, want id 17 total 400", conf)
	}
	if _, present := raw["promo_code"]; present {
		t.Fatalf("promo_code sent without an applied code: %v", raw)
	}

	_, err = c.CreateOrder(context.Background(), CreateOrderRequest{PromoCode: "BAD"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("CreateOrder error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("StatusCode = %d, want 400", apiErr.StatusCode)
	}
	if msg, ok := apiErr.Detail("promo_code"); !ok || msg != "Промокод истёк" {
		t.Fatalf("Detail(promo_code) = %q, %v", msg, ok)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/menu":
			_, _ = w.Write([]byte("{not-json"))
		case "/api/banners":
			http.Error(w, "nope", http.StatusInternalServerError)
		case "/api/validate_promo":
			http.Error(w, "bad gateway", http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchMenu(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchMenu error = %v, want decode response error", err)
	}

	_, err = c.FetchBanners(context.Background())
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("FetchBanners error = %v, want status 500 error", err)
	}

	_, err = c.ValidatePromo(context.Background(), "SALE10", nil)
	if err == nil || !strings.Contains(err.Error(), "returned status 502") {
		t.Fatalf("ValidatePromo error = %v, want status 502 error", err)
	}
}

func TestNilClientReturnsError(t *testing.T) {
	var c *Client
	if _, err := c.FetchMenu(context.Background()); err == nil {
		t.Fatalf("FetchMenu on nil client returned nil error")
	}
	if _, err := c.CreateOrder(context.Background(), CreateOrderRequest{}); err == nil {
		t.Fatalf("CreateOrder on nil client returned nil error")
	}
}
