package state

import (
	"slices"

	"github.com/five82/foodikal/internal/foodikal"
)

// CatalogChanged reports whether fresh differs from current: a different set
// of category names, a different item count in some category, or a
// different id, name, price or description at some position. Category order
// alone and image changes do not count.
func CatalogChanged(current, fresh foodikal.Catalog) bool {
	oldNames := current.Names()
	newNames := fresh.Names()
	if len(oldNames) != len(newNames) {
		return true
	}
	slices.Sort(oldNames)
	slices.Sort(newNames)
	if !slices.Equal(oldNames, newNames) {
		return true
	}

	for _, name := range oldNames {
		oldCat, _ := current.Category(name)
		newCat, _ := fresh.Category(name)
		if len(oldCat.Items) != len(newCat.Items) {
			return true
		}
		for i := range oldCat.Items {
			o, n := oldCat.Items[i], newCat.Items[i]
			if o.ID != n.ID || o.Name != n.Name || o.Price != n.Price || o.Description != n.Description {
				return true
			}
		}
	}
	return false
}

// BannersChanged compares banners position by position on id, name and image.
func BannersChanged(current, fresh []foodikal.Banner) bool {
	if len(current) != len(fresh) {
		return true
	}
	for i := range current {
		o, n := current[i], fresh[i]
		if o.ID != n.ID || o.Name != n.Name || o.ImageURL != n.ImageURL {
			return true
		}
	}
	return false
}

// Change reports which parts of the store a refresh swapped.
type Change struct {
	Catalog bool
	Banners bool
}

// Any reports whether anything was swapped.
func (c Change) Any() bool {
	return c.Catalog || c.Banners
}
