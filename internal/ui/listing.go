package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/foodikal/internal/foodikal"
	"github.com/five82/foodikal/internal/promo"
	"github.com/five82/foodikal/internal/shop"
)

// WriteCatalog prints the catalog as plain text, one category per block.
func WriteCatalog(w io.Writer, c foodikal.Catalog) error {
	nameWidth := 0
	for _, cat := range c.Categories {
		for _, item := range cat.Items {
			nameWidth = max(nameWidth, lipgloss.Width(item.Name))
		}
	}

	var b strings.Builder
	for i, cat := range c.Categories {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n", cat.Name)
		if len(cat.Items) == 0 {
			fmt.Fprintf(&b, "  %s\n", shop.MsgEmptyCategory)
			continue
		}
		for _, item := range cat.Items {
			fmt.Fprintf(&b, "  %4d  %s  %8s\n", item.ID, padRight(item.Name, nameWidth), formatRSD(item.Price))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteBanners prints banners in display order with their link targets.
func WriteBanners(w io.Writer, banners []foodikal.Banner) error {
	var b strings.Builder
	for i, banner := range banners {
		fmt.Fprintf(&b, "%d. %s", i+1, banner.Name)
		if target := banner.Target(); target != "" {
			fmt.Fprintf(&b, " -> #%s", target)
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WritePromo prints the result of a single promo validation.
func WritePromo(w io.Writer, code string, res foodikal.PromoResult) error {
	var b strings.Builder
	if !res.Valid {
		msg := res.Message
		if msg == "" {
			msg = promo.MsgInvalid
		}
		fmt.Fprintf(&b, "%s: ✗ %s\n", code, msg)
	} else {
		fmt.Fprintf(&b, "%s: ✓ %s\n", code, promo.MsgApplied)
		fmt.Fprintf(&b, "  Сумма:   %s\n", formatRSD(res.Subtotal))
		fmt.Fprintf(&b, "  Скидка: -%s\n", formatRSD(res.DiscountAmount))
		fmt.Fprintf(&b, "  Итого:   %s\n", formatRSD(res.FinalTotal))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
