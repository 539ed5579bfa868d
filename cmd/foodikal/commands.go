package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/foodikal/internal/app"
	"github.com/five82/foodikal/internal/foodikal"
	"github.com/five82/foodikal/internal/promo"
	"github.com/five82/foodikal/internal/shop"
	"github.com/five82/foodikal/internal/ui"
)

func newMenuCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "menu",
		Short:         "Print the current menu",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(rootOpts)
			if err != nil {
				return err
			}
			catalog, err := client.FetchMenu(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch menu: %w", err)
			}
			return ui.WriteCatalog(cmd.OutOrStdout(), catalog)
		},
	}
}

func newBannersCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "banners",
		Short:         "Print the carousel banners",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(rootOpts)
			if err != nil {
				return err
			}
			banners, err := client.FetchBanners(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch banners: %w", err)
			}
			return ui.WriteBanners(cmd.OutOrStdout(), banners)
		},
	}
}

func newPromoCommand(rootOpts *rootOptions) *cobra.Command {
	var items []string

	cmd := &cobra.Command{
		Use:   "promo <code>",
		Short: "Check a promo code against a cart",
		Long: `Check a promo code against a cart.

Example:
  foodikal promo NY2026 --item 16:2 --item 37:1`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			code := promo.Normalize(args[0])
			if msg := promo.CheckFormat(code); msg != "" {
				return fmt.Errorf("%s: %s", args[0], msg)
			}
			orderItems, err := parseItems(items)
			if err != nil {
				return err
			}
			if len(orderItems) == 0 {
				return errors.New(promo.MsgNeedsItems)
			}
			if len(orderItems) > shop.MaxPromoItems {
				orderItems = orderItems[:shop.MaxPromoItems]
			}

			client, err := newClient(rootOpts)
			if err != nil {
				return err
			}
			res, err := client.ValidatePromo(cmd.Context(), code, orderItems)
			if err != nil {
				return fmt.Errorf("%s: %w", promo.MsgFailed, err)
			}
			return ui.WritePromo(cmd.OutOrStdout(), code, res)
		},
	}

	cmd.Flags().StringArrayVar(&items, "item", nil, "cart line as product_id:quantity (repeatable)")
	return cmd
}

func newClient(rootOpts *rootOptions) (*foodikal.Client, error) {
	cfg, err := app.LoadConfig(rootOpts.Options)
	if err != nil {
		return nil, err
	}
	client, err := foodikal.NewClient(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("init foodikal client: %w", err)
	}
	return client, nil
}

// parseItems turns id:qty pairs into order items, merging repeated ids.
func parseItems(values []string) ([]foodikal.OrderItem, error) {
	var out []foodikal.OrderItem
	index := make(map[int]int)
	for _, v := range values {
		idText, qtyText, ok := strings.Cut(v, ":")
		if !ok {
			qtyText = "1"
		}
		id, err := strconv.Atoi(strings.TrimSpace(idText))
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid item %q: bad product id", v)
		}
		qty, err := strconv.Atoi(strings.TrimSpace(qtyText))
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("invalid item %q: bad quantity", v)
		}
		if i, seen := index[id]; seen {
			out[i].Quantity += qty
			continue
		}
		index[id] = len(out)
		out = append(out, foodikal.OrderItem{ItemID: id, Quantity: qty})
	}
	return out, nil
}
