package ui

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/five82/foodikal/internal/foodikal"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestWriteCatalog(t *testing.T) {
	catalog := foodikal.Catalog{Categories: []foodikal.Category{
		{Name: "Супы", Items: []foodikal.MenuItem{
			{ID: 1, Name: "Борщ", Category: "Супы", Price: 450},
			{ID: 2, Name: "Солянка", Category: "Супы", Price: 520},
		}},
		{Name: "Десерты"},
		{Name: "Напитки", Items: []foodikal.MenuItem{
			{ID: 10, Name: "Морс", Category: "Напитки", Price: 150},
		}},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteCatalog(&buf, catalog))
	newGoldie(t).Assert(t, "catalog", buf.Bytes())
}

func TestWriteBanners(t *testing.T) {
	banners := []foodikal.Banner{
		{ID: 1, Name: "Новогоднее меню", ItemLink: "menu.html#Новый год"},
		{ID: 2, Name: "Морс дня", ItemLink: "menu.html#10"},
		{ID: 3, Name: "Без ссылки", ItemLink: "menu.html"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBanners(&buf, banners))
	newGoldie(t).Assert(t, "banners", buf.Bytes())
}

func TestWritePromo(t *testing.T) {
	tests := []struct {
		name string
		code string
		res  foodikal.PromoResult
	}{
		{"promo_valid", "NY2026", foodikal.PromoResult{Valid: true, Subtotal: 1500, DiscountAmount: 50, FinalTotal: 1450}},
		{"promo_invalid", "BAD", foodikal.PromoResult{Valid: false, Message: "Промокод истек"}},
	}
	g := newGoldie(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WritePromo(&buf, tt.code, tt.res))
			g.Assert(t, tt.name, buf.Bytes())
		})
	}
}
