// storefront is a command-line shopper for the saree storefront API. The
// cart lives in a local file and survives between invocations.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sareecustoms/storefront-api/cart"
	"github.com/sareecustoms/storefront-api/client"
)

type globals struct {
	apiURL      string
	cartPath    string
	stockPolicy string
	token       string
	timeout     time.Duration
	verbose     bool
}

func usage(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprintf(w, `storefront - browse the catalog and place orders

Usage:
    storefront [options] <command> [arguments]

Commands:
    products [filters]          list products (see products --help)
    tags                        list tags
    cart show                   show the cart
    cart add <productId>        add one unit of a product
    cart set <itemId> <qty>     set a line's quantity
    cart remove <itemId>        remove a line
    cart clear                  empty the cart
    checkout [details]          place an order for the cart (see checkout --help)

Options:
`)
	flags.SetOutput(w)
	flags.PrintDefaults()
	fmt.Fprintf(w, `
Examples:
    storefront products --fabric Silk --max-price 20000
    storefront cart add p1
    storefront checkout --name Meera --phone "+91 90000 00000" --address "12 Temple Street"
`)
}

func defaultCartPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cart.json"
	}
	return filepath.Join(home, ".storefront", "cart.json")
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var g globals
	flags := pflag.NewFlagSet("storefront", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.SetInterspersed(false)
	flags.StringVarP(&g.apiURL, "api", "a", envOr("STOREFRONT_API", "http://localhost:8080"), "API base URL")
	flags.StringVarP(&g.cartPath, "cart", "c", envOr("STOREFRONT_CART", defaultCartPath()), "cart file")
	flags.StringVar(&g.stockPolicy, "stock-policy", "none", "stock check: none, add or checkout")
	flags.StringVar(&g.token, "token", os.Getenv("STOREFRONT_TOKEN"), "bearer token")
	flags.DurationVar(&g.timeout, "timeout", 30*time.Second, "request timeout")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "log cart storage problems")
	help := flags.BoolP("help", "h", false, "show help")
	flags.Usage = func() { usage(stderr, flags) }

	if err := flags.Parse(args); err != nil {
		return err
	}
	if *help || flags.NArg() == 0 {
		usage(stdout, flags)
		return nil
	}

	policy, err := cart.ParseStockPolicy(g.stockPolicy)
	if err != nil {
		return err
	}
	log := zap.NewNop()
	if g.verbose {
		if log, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer log.Sync()
	}

	opts := []client.Option{client.WithTimeout(g.timeout)}
	if g.token != "" {
		opts = append(opts, client.WithToken(g.token))
	}
	app := &app{
		api:    client.New(g.apiURL, opts...),
		out:    stdout,
		errOut: stderr,
		openCart: func(ctx context.Context) *cart.Cart {
			return cart.New(ctx, cart.NewFileStorage(g.cartPath), cart.WithStockPolicy(policy), cart.WithLogger(log))
		},
	}

	cmd, rest := flags.Arg(0), flags.Args()[1:]
	switch cmd {
	case "products":
		return app.products(ctx, rest)
	case "tags":
		return app.tags(ctx)
	case "cart":
		return app.cart(ctx, rest)
	case "checkout":
		return app.checkout(ctx, rest)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var errUsage = errors.New("invalid arguments")
