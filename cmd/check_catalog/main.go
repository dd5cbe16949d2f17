package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/light-bringer/decant-store/internal/app/product/domain"
	"github.com/light-bringer/decant-store/internal/app/product/queries/list_products"
	"github.com/light-bringer/decant-store/internal/app/product/search"
	"github.com/light-bringer/decant-store/internal/config"
	"github.com/light-bringer/decant-store/internal/pkg/logging"
	"github.com/light-bringer/decant-store/internal/services"
)

var rawQuery = flag.String("query", "", `Catalog query string, e.g. "brand=Dior&sortBy=price&sortOrder=asc"`)

func main() {
	flag.Parse()

	ctx := context.Background()
	logger := logging.New(os.Stderr, false, slog.LevelWarn)

	if err := run(ctx, logger, os.Stdout); err != nil {
		logger.Error("check failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, out io.Writer) error {
	values, err := url.ParseQuery(strings.TrimPrefix(*rawQuery, "?"))
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	serviceOpts, err := services.NewServiceOptions(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer serviceOpts.Close()

	query := list_products.NewQuery(serviceOpts.ReadModel, cfg.Database.QueryTimeout)
	result, err := query.Execute(ctx, &list_products.Request{Params: search.ParseSearchParams(values)})
	if err != nil {
		return err
	}

	return printResult(out, result)
}

func printResult(out io.Writer, result *list_products.Result) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSLUG\tBRAND\t2ML\t5ML\t10ML\tSTOCK")
	for i, p := range result.Products {
		stock := "out"
		if p.InStock {
			stock = "in"
			if low, _ := p.LowStock(); low {
				stock = "low"
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			result.Page.Offset()+i+1,
			p.Slug,
			p.Brand,
			domain.FormatPrice(p.Price2ml, domain.CurrencyEUR),
			domain.FormatPrice(p.Price5ml, domain.CurrencyEUR),
			domain.FormatPrice(p.Price10ml, domain.CurrencyEUR),
			stock,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(result.Products) == 0 {
		fmt.Fprintln(out, "No products found!")
	}
	_, err := fmt.Fprintf(out, "\nPage %d of %d, %d matching products\n", result.Page.Number, result.TotalPages, result.Total)
	return err
}
