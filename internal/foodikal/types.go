package foodikal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// MenuItem mirrors a single product entry in /api/menu.
type MenuItem struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description" yaml:"description"`
	Price       int    `json:"price" yaml:"price"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
}

// Category is one menu tab with its items in display order.
type Category struct {
	Name  string     `yaml:"name"`
	Items []MenuItem `yaml:"items"`
}

// Catalog is the full categorized listing. The service encodes it as a JSON
// object whose key order is the display order, so decoding keeps that order.
type Catalog struct {
	Categories []Category
}

// UnmarshalJSON decodes a category-name -> items object preserving key order.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}
	if tok == nil {
		c.Categories = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decode catalog: expected object, got %v", tok)
	}

	var categories []Category
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode catalog: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("decode catalog: unexpected key %v", keyTok)
		}
		var items []MenuItem
		if err := dec.Decode(&items); err != nil {
			return fmt.Errorf("decode category %q: %w", name, err)
		}
		for i := range items {
			if items[i].Category == "" {
				items[i].Category = name
			}
		}
		categories = append(categories, Category{Name: name, Items: items})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}
	c.Categories = categories
	return nil
}

// MarshalJSON encodes the catalog back into the service's object shape.
func (c Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range c.Categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cat.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		items := cat.Items
		if items == nil {
			items = []MenuItem{}
		}
		val, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Names returns the category names in display order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		names = append(names, cat.Name)
	}
	return names
}

// Category returns the named category.
func (c Catalog) Category(name string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return Category{}, false
}

// Lookup finds an item by product id.
func (c Catalog) Lookup(id int) (MenuItem, bool) {
	item, _, ok := c.Locate(id)
	return item, ok
}

// Locate finds an item by product id along with the category holding it.
func (c Catalog) Locate(id int) (MenuItem, string, bool) {
	for _, cat := range c.Categories {
		for _, item := range cat.Items {
			if item.ID == id {
				return item, cat.Name, true
			}
		}
	}
	return MenuItem{}, "", false
}

// Len returns the total number of items across categories.
func (c Catalog) Len() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Items)
	}
	return n
}

// Clone returns a deep copy.
func (c Catalog) Clone() Catalog {
	if c.Categories == nil {
		return Catalog{}
	}
	out := Catalog{Categories: make([]Category, len(c.Categories))}
	for i, cat := range c.Categories {
		items := make([]MenuItem, len(cat.Items))
		copy(items, cat.Items)
		out.Categories[i] = Category{Name: cat.Name, Items: items}
	}
	return out
}

// Validate checks that every item sits under its own category and that
// product ids are unique across the catalog.
func (c Catalog) Validate() error {
	seen := make(map[int]string)
	for _, cat := range c.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return fmt.Errorf("category with empty name")
		}
		for _, item := range cat.Items {
			if item.Category != cat.Name {
				return fmt.Errorf("item %d has category %q, listed under %q", item.ID, item.Category, cat.Name)
			}
			if item.Price < 0 {
				return fmt.Errorf("item %d has negative price %d", item.ID, item.Price)
			}
			if prev, dup := seen[item.ID]; dup {
				return fmt.Errorf("item %d listed under both %q and %q", item.ID, prev, cat.Name)
			}
			seen[item.ID] = cat.Name
		}
	}
	return nil
}

// Banner mirrors a carousel entry from /api/banners.
type Banner struct {
	ID           int    `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	ItemLink     string `json:"item_link" yaml:"item_link"`
	ImageURL     string `json:"image_url" yaml:"image_url"`
	DisplayOrder int    `json:"display_order" yaml:"display_order"`
}

// Target extracts the deep-link fragment (product id or category name) from
// the banner's item link.
func (b Banner) Target() string {
	_, frag, ok := strings.Cut(b.ItemLink, "#")
	if !ok {
		return ""
	}
	return frag
}

// MenuResponse mirrors /api/menu.
type MenuResponse struct {
	Success bool     `json:"success"`
	Data    *Catalog `json:"data,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// BannersResponse mirrors /api/banners.
type BannersResponse struct {
	Success bool     `json:"success"`
	Banners []Banner `json:"banners,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// OrderItem is the wire form of a cart line.
type OrderItem struct {
	ItemID   int `json:"item_id"`
	Quantity int `json:"quantity"`
}

// ValidatePromoRequest is the body of POST /api/validate_promo.
type ValidatePromoRequest struct {
	PromoCode  string      `json:"promo_code"`
	OrderItems []OrderItem `json:"order_items"`
}

// ValidatePromoResponse mirrors /api/validate_promo.
type ValidatePromoResponse struct {
	Success        bool    `json:"success"`
	Valid          bool    `json:"valid"`
	Subtotal       float64 `json:"subtotal,omitempty"`
	DiscountAmount float64 `json:"discount_amount,omitempty"`
	FinalTotal     float64 `json:"final_total,omitempty"`
	Error          string  `json:"error,omitempty"`
}

// PromoResult is the outcome of a promo validation call that reached the
// service. Application-level failures are reported as Valid=false.
type PromoResult struct {
	Valid          bool
	Subtotal       int
	DiscountAmount int
	FinalTotal     int
	Message        string
}

// CreateOrderRequest is the body of POST /api/create_order.
type CreateOrderRequest struct {
	CustomerName    string      `json:"customer_name"`
	CustomerContact string      `json:"customer_contact"`
	DeliveryAddress string      `json:"delivery_address"`
	DeliveryDate    string      `json:"delivery_date"`
	Comments        string      `json:"comments"`
	OrderItems      []OrderItem `json:"order_items"`
	PromoCode       string      `json:"promo_code,omitempty"`
}

// CreateOrderResponse mirrors /api/create_order.
type CreateOrderResponse struct {
	Success    bool              `json:"success"`
	OrderID    OrderID           `json:"order_id,omitempty"`
	TotalPrice float64           `json:"total_price,omitempty"`
	Message    string            `json:"message,omitempty"`
	Error      string            `json:"error,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
}

// OrderID accepts both numeric and string order identifiers.
type OrderID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *OrderID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*id = OrderID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("order id: %w", err)
	}
	*id = OrderID(n.String())
	return nil
}

// OrderConfirmation is returned for an accepted order.
type OrderConfirmation struct {
	OrderID    string
	TotalPrice int
	Message    string
}

func amount(v float64) int {
	return int(math.Round(v))
}
