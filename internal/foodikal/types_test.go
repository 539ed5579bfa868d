package foodikal

import (
	"encoding/json"
	"testing"
)

func TestCatalog_MarshalRoundTripKeepsOrder(t *testing.T) {
	in := Catalog{Categories: []Category{
		{Name: "Канапе", Items: []MenuItem{{ID: 29, Name: "Канапе овощное", Category: "Канапе", Price: 75}}},
		{Name: "Горячее", Items: nil},
	}}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	want := `{"Канапе":[{"id":29,"name":"Канапе овощное","category":"Канапе","description":"","price":75}],"Горячее":[]}`
	if string(data) != want {
		t.Fatalf("Marshal = %s, want %s", data, want)
	}

	var out Catalog
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if names := out.Names(); len(names) != 2 || names[0] != "Канапе" || names[1] != "Горячее" {
		t.Fatalf("Names() = %v", names)
	}
}

func TestCatalog_UnmarshalRejectsArrays(t *testing.T) {
	var c Catalog
	if err := json.Unmarshal([]byte(`[1,2]`), &c); err == nil {
		t.Fatalf("Unmarshal returned nil error for array input")
	}
}

func TestCatalog_ValidateAndLocate(t *testing.T) {
	c := Catalog{Categories: []Category{
		{Name: "A", Items: []MenuItem{{ID: 1, Category: "A"}, {ID: 2, Category: "A"}}},
		{Name: "B", Items: []MenuItem{{ID: 3, Category: "B"}}},
	}}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if _, cat, ok := c.Locate(3); !ok || cat != "B" {
		t.Fatalf("Locate(3) = %q, %v; want B", cat, ok)
	}
	if _, ok := c.Lookup(99); ok {
		t.Fatalf("Lookup(99) found an item")
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}

	mismatched := Catalog{Categories: []Category{{Name: "A", Items: []MenuItem{{ID: 1, Category: "B"}}}}}
	if err := mismatched.Validate(); err == nil {
		t.Fatalf("Validate accepted an item under the wrong category")
	}
	dup := Catalog{Categories: []Category{
		{Name: "A", Items: []MenuItem{{ID: 1, Category: "A"}}},
		{Name: "B", Items: []MenuItem{{ID: 1, Category: "B"}}},
	}}
	if err := dup.Validate(); err == nil {
		t.Fatalf("Validate accepted duplicate ids")
	}
}

func TestCatalog_CloneIsIndependent(t *testing.T) {
	c := Catalog{Categories: []Category{{Name: "A", Items: []MenuItem{{ID: 1, Name: "x", Category: "A"}}}}}
	dup := c.Clone()
	dup.Categories[0].Items[0].Name = "changed"
	if c.Categories[0].Items[0].Name != "x" {
		t.Fatalf("Clone shares item storage")
	}
}

func TestOrderID_AcceptsNumbersAndStrings(t *testing.T) {
	var resp CreateOrderResponse
	if err := json.Unmarshal([]byte(`{"success":true,"order_id":42}`), &resp); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if resp.OrderID != "42" {
		t.Fatalf("OrderID = %q, want 42", resp.OrderID)
	}
	if err := json.Unmarshal([]byte(`{"success":true,"order_id":"NY-7"}`), &resp); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if resp.OrderID != "NY-7" {
		t.Fatalf("OrderID = %q, want NY-7", resp.OrderID)
	}
}
