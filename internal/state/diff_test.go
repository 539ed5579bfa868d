package state

import (
	"testing"

	"github.com/five82/foodikal/internal/foodikal"
)

func TestCatalogChanged(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*foodikal.Catalog)
		want   bool
	}{
		{"identical", func(*foodikal.Catalog) {}, false},
		{"category order only", func(c *foodikal.Catalog) {
			c.Categories[0], c.Categories[1] = c.Categories[1], c.Categories[0]
		}, false},
		{"image only", func(c *foodikal.Catalog) { c.Categories[0].Items[0].Image = "x.jpg" }, false},
		{"renamed category", func(c *foodikal.Catalog) {
			c.Categories[1].Name = "Салаты!"
			c.Categories[1].Items[0].Category = "Салаты!"
		}, true},
		{"extra category", func(c *foodikal.Catalog) {
			c.Categories = append(c.Categories, foodikal.Category{Name: "Горячее"})
		}, true},
		{"item removed", func(c *foodikal.Catalog) { c.Categories[0].Items = c.Categories[0].Items[:1] }, true},
		{"items swapped", func(c *foodikal.Catalog) {
			items := c.Categories[0].Items
			items[0], items[1] = items[1], items[0]
		}, true},
		{"price", func(c *foodikal.Catalog) { c.Categories[0].Items[1].Price++ }, true},
		{"name", func(c *foodikal.Catalog) { c.Categories[0].Items[1].Name += " (шт)" }, true},
		{"description", func(c *foodikal.Catalog) { c.Categories[1].Items[0].Description = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fresh := sampleCatalog()
			tt.mutate(&fresh)
			if got := CatalogChanged(sampleCatalog(), fresh); got != tt.want {
				t.Fatalf("CatalogChanged = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBannersChanged(t *testing.T) {
	base := []foodikal.Banner{{ID: 1, Name: "a", ImageURL: "a.jpg", ItemLink: "x#1"}}
	if BannersChanged(base, []foodikal.Banner{{ID: 1, Name: "a", ImageURL: "a.jpg", ItemLink: "x#2"}}) {
		t.Fatalf("item link alone should not count as a change")
	}
	if !BannersChanged(base, nil) {
		t.Fatalf("length change not detected")
	}
	if !BannersChanged(base, []foodikal.Banner{{ID: 2, Name: "a", ImageURL: "a.jpg"}}) {
		t.Fatalf("id change not detected")
	}
	if BannersChanged(nil, []foodikal.Banner{}) {
		t.Fatalf("nil and empty should be equal")
	}
}

func TestLoadFallback(t *testing.T) {
	fb, err := LoadFallback()
	if err != nil {
		t.Fatalf("LoadFallback returned error: %v", err)
	}
	catalog := fb.Catalog()
	if got := catalog.Names(); len(got) != 6 || got[0] != "Брускетты" {
		t.Fatalf("fallback categories = %v, want 6 starting with Брускетты", got)
	}
	item, cat, ok := catalog.Locate(39)
	if !ok || cat != "Салаты" || item.Price != 2100 || item.Image == "" {
		t.Fatalf("Locate(39) = %#v in %q", item, cat)
	}
	if len(fb.Banners) != 7 || fb.Banners[0].ID != 2 {
		t.Fatalf("fallback banners = %#v", fb.Banners)
	}
	if fb.Updated != "2025-12-04" {
		t.Fatalf("Updated = %q", fb.Updated)
	}
}

func TestParseFallback_RejectsDuplicateIDs(t *testing.T) {
	data := []byte(`
categories:
  - name: A
    items:
      - {id: 1, name: x, price: 1}
  - name: B
    items:
      - {id: 1, name: y, price: 2}
`)
	if _, err := parseFallback(data); err == nil {
		t.Fatalf("parseFallback accepted duplicate ids")
	}
}
