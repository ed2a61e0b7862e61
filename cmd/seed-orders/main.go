package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"

	"github.com/karolwisniewski/strumienie-03/internal/jsonfile"
)

func main() {
	var (
		out       string
		count     int
		customers int
		days      int
		seed      uint64
	)

	flag.StringVar(&out, "out", "orders.json", "path of the generated dataset, a .gz suffix enables compression")
	flag.IntVar(&count, "count", 20, "number of orders to generate")
	flag.IntVar(&customers, "customers", 5, "number of distinct customers")
	flag.IntVar(&days, "days", 60, "orders are dated between today and today+days")
	flag.Uint64Var(&seed, "seed", 0, "random seed, 0 picks one from the clock")
	flag.Parse()

	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, out, generatorConfig{
		Orders:    count,
		Customers: customers,
		Days:      days,
		Seed:      seed,
		Today:     time.Now(),
	}); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, out string, cfg generatorConfig) error {
	slog.Info("generating orders",
		slog.Int("orders", cfg.Orders),
		slog.Int("customers", cfg.Customers),
		slog.Uint64("seed", cfg.Seed),
	)

	orders, err := generate(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "generate orders")
	}

	slog.Info("writing dataset", slog.String("path", out), slog.Int("count", len(orders)))

	if err := jsonfile.Save(out, orders); err != nil {
		return errors.Wrap(err, "save orders")
	}
	return nil
}
