package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/sareecustoms/storefront-api/cart"
	"github.com/sareecustoms/storefront-api/catalog"
	"github.com/sareecustoms/storefront-api/checkout"
	"github.com/sareecustoms/storefront-api/client"
	"github.com/sareecustoms/storefront-api/models"
)

type app struct {
	api      *client.Client
	out      io.Writer
	errOut   io.Writer
	openCart func(ctx context.Context) *cart.Cart
}

func (a *app) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func (a *app) products(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("products", pflag.ContinueOnError)
	flags.SetOutput(a.errOut)
	colors := flags.StringSlice("color", nil, "colors to include")
	fabrics := flags.StringSlice("fabric", nil, "fabrics to include")
	occasions := flags.StringSlice("occasion", nil, "occasions to include")
	styles := flags.StringSlice("style", nil, "styles to include")
	dressTypes := flags.StringSlice("dress-type", nil, "dress types to include")
	minPrice := flags.String("min-price", "", "lowest price")
	maxPrice := flags.String("max-price", "", "highest price")
	query := flags.StringP("query", "q", "", "search name, fabric, color and occasion")
	if err := flags.Parse(args); err != nil {
		return err
	}

	values := url.Values{
		catalog.ParamColor:     *colors,
		catalog.ParamFabric:    *fabrics,
		catalog.ParamOccasion:  *occasions,
		catalog.ParamStyle:     *styles,
		catalog.ParamDressType: *dressTypes,
	}
	values.Set(catalog.ParamMinPrice, *minPrice)
	values.Set(catalog.ParamMaxPrice, *maxPrice)
	values.Set(catalog.ParamQuery, *query)

	criteria, q, err := catalog.ParseCriteria(values)
	if err != nil {
		return err
	}
	products, err := a.api.ListProducts(ctx, criteria, q)
	if err != nil {
		return err
	}

	w := a.table()
	fmt.Fprintln(w, "ID\tNAME\tFABRIC\tCOLOR\tOCCASION\tPRICE\tSTOCK\tTAGS")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			p.ID, p.Name, p.Fabric, p.Color, p.Occasion, p.Price.StringFixed(2), p.Stock, tagNames(p.Tags))
	}
	return w.Flush()
}

func tagNames(tags []models.Tag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return strings.Join(names, ",")
}

func (a *app) tags(ctx context.Context) error {
	tags, err := a.api.ListTags(ctx)
	if err != nil {
		return err
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tCOLOR")
	for _, t := range tags {
		hex := ""
		if t.ColorHex != nil {
			hex = *t.ColorHex
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Category, hex)
	}
	return w.Flush()
}

func (a *app) cart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"show"}
	}
	c := a.openCart(ctx)

	switch args[0] {
	case "show":
	case "add":
		if len(args) != 2 {
			return fmt.Errorf("%w: cart add <productId>", errUsage)
		}
		p, err := a.api.GetProduct(ctx, args[1])
		if err != nil {
			return err
		}
		if _, err := c.AddItem(ctx, *p); err != nil {
			return err
		}
	case "set":
		if len(args) != 3 {
			return fmt.Errorf("%w: cart set <itemId> <quantity>", errUsage)
		}
		q, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("%w: quantity must be a number", errUsage)
		}
		if err := c.UpdateQuantity(ctx, args[1], q); err != nil {
			return err
		}
	case "remove":
		if len(args) != 2 {
			return fmt.Errorf("%w: cart remove <itemId>", errUsage)
		}
		if err := c.RemoveItem(ctx, args[1]); err != nil {
			return err
		}
	case "clear":
		if err := c.Clear(ctx); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown cart command %q", args[0])
	}
	return a.printCart(c)
}

func (a *app) printCart(c *cart.Cart) error {
	if c.IsEmpty() {
		fmt.Fprintln(a.out, "Cart is empty.")
		return nil
	}
	w := a.table()
	fmt.Fprintln(w, "ITEM\tPRODUCT\tQTY\tPRICE\tLINE")
	for _, item := range c.Items() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			item.ID, item.Product.Name, item.Quantity, item.Product.Price.StringFixed(2), item.LineTotal().StringFixed(2))
	}
	fmt.Fprintf(w, "\t\t%d\t\t%s\n", c.Count(), c.Subtotal().StringFixed(2))
	return w.Flush()
}

func (a *app) checkout(ctx context.Context, args []string) error {
	var d checkout.Details
	flags := pflag.NewFlagSet("checkout", pflag.ContinueOnError)
	flags.SetOutput(a.errOut)
	flags.StringVar(&d.Name, "name", "", "full name (required)")
	flags.StringVar(&d.Phone, "phone", "", "phone number (required)")
	flags.StringVar(&d.Address, "address", "", "shipping address (required)")
	flags.StringVar(&d.Email, "email", "", "email address")
	flags.StringVar(&d.UserID, "user", "", "account uid")
	flags.StringVar(&d.Customization, "note", "", "customization request")
	if err := flags.Parse(args); err != nil {
		return err
	}

	c := a.openCart(ctx)
	order, err := checkout.Submit(ctx, c, d, a.api)
	if order == nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%w: %s", errUsage, verr.Error())
		}
		return err
	}

	fmt.Fprintf(a.out, "Order %s placed: %d items, total %s.\n", order.ID, len(order.Items), order.TotalAmount.StringFixed(2))
	if err != nil {
		fmt.Fprintf(a.errOut, "warning: %v\n", err)
	}
	return nil
}
