package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/karolwisniewski/strumienie-03/internal/domain/customer"
	"github.com/karolwisniewski/strumienie-03/internal/domain/order"
	"github.com/karolwisniewski/strumienie-03/internal/domain/product"
)

type generatorConfig struct {
	Orders    int
	Customers int
	Days      int
	Seed      uint64
	Today     time.Time
}

var (
	firstNames = []string{"ANNA", "JAN", "MARIA", "PIOTR", "EWA", "TOMASZ", "KATARZYNA", "PAWEL", "ZOFIA", "ADAM"}
	lastNames  = []string{"NOWAK", "KOWALSKI", "WISNIEWSKI", "WOJCIK", "KAMINSKI", "LEWANDOWSKI", "ZIELINSKI"}
)

var catalog = []product.Draft{
	{Name: "LAPTOP", Price: decimal.RequireFromString("3499.99"), Category: product.CategoryElectronics},
	{Name: "HEADPHONES", Price: decimal.RequireFromString("249.50"), Category: product.CategoryElectronics},
	{Name: "NOVEL", Price: decimal.RequireFromString("39.90"), Category: product.CategoryBooks},
	{Name: "COOKBOOK", Price: decimal.RequireFromString("79.00"), Category: product.CategoryBooks},
	{Name: "JACKET", Price: decimal.RequireFromString("299.00"), Category: product.CategoryClothes},
	{Name: "SCARF", Price: decimal.RequireFromString("45.00"), Category: product.CategoryClothes},
	{Name: "COFFEE", Price: decimal.RequireFromString("32.49"), Category: product.CategoryFood},
	{Name: "CHOCOLATE", Price: decimal.RequireFromString("6.99"), Category: product.CategoryFood},
	{Name: "FOOTBALL", Price: decimal.RequireFromString("119.00"), Category: product.CategorySport},
	{Name: "PUZZLE", Price: decimal.RequireFromString("59.99"), Category: product.CategoryToys},
	{Name: "LAMP", Price: decimal.RequireFromString("149.00"), Category: product.CategoryHome},
}

// generate builds cfg.Orders valid orders dated between cfg.Today and
// cfg.Today+cfg.Days. Every order goes through the validating builders.
func generate(ctx context.Context, cfg generatorConfig) ([]order.Order, error) {
	if cfg.Orders < 0 || cfg.Customers < 1 || cfg.Days < 0 {
		return nil, errors.Errorf("invalid generator config: %+v", cfg)
	}

	rnd := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	customers := make([]customer.Customer, cfg.Customers)
	for i := range customers {
		first := firstNames[rnd.IntN(len(firstNames))]
		last := lastNames[rnd.IntN(len(lastNames))]
		c, err := customer.Draft{
			Name:    first,
			Surname: last,
			Age:     18 + rnd.IntN(50),
			Email:   fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), i+1),
		}.Build()
		if err != nil {
			return nil, errors.Wrapf(err, "customer %d", i)
		}
		customers[i] = c
	}

	products := make([]product.Product, len(catalog))
	for i, d := range catalog {
		p, err := d.Build()
		if err != nil {
			return nil, errors.Wrapf(err, "product %s", d.Name)
		}
		products[i] = p
	}

	orders := make([]order.Order, 0, cfg.Orders)
	for i := 0; i < cfg.Orders; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c := customers[rnd.IntN(len(customers))]
		p := products[rnd.IntN(len(products))]
		o, err := order.Draft{
			Customer:  &c,
			Product:   &p,
			Quantity:  decimal.NewFromInt(int64(1 + rnd.IntN(10))),
			OrderDate: cfg.Today.AddDate(0, 0, rnd.IntN(cfg.Days+1)),
		}.BuildAt(cfg.Today)
		if err != nil {
			return nil, errors.Wrapf(err, "order %d", i)
		}
		orders = append(orders, o)
	}
	return orders, nil
}
