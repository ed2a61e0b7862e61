package report_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karolwisniewski/strumienie-03/internal/domain/customer"
	"github.com/karolwisniewski/strumienie-03/internal/domain/product"
	"github.com/karolwisniewski/strumienie-03/internal/domain/order"
	"github.com/karolwisniewski/strumienie-03/internal/jsonfile"
	"github.com/karolwisniewski/strumienie-03/internal/report"
)

var today = time.Date(2030, time.January, 1, 9, 0, 0, 0, time.UTC)

func date(month time.Month, day int) time.Time {
	return time.Date(2030, month, day, 0, 0, 0, 0, time.UTC)
}

func newCustomer(t *testing.T, name string, age int) customer.Customer {
	t.Helper()
	c, err := customer.Draft{
		Name:    name,
		Surname: "KOWALSKI",
		Age:     age,
		Email:   "customer." + name + "@example.com",
	}.Build()
	require.NoError(t, err)
	return c
}

func newProduct(t *testing.T, name, price string, category product.Category) product.Product {
	t.Helper()
	p, err := product.Draft{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: category,
	}.Build()
	require.NoError(t, err)
	return p
}

func newOrder(t *testing.T, c customer.Customer, p product.Product, qty int64, on time.Time) order.Order {
	t.Helper()
	o, err := order.Draft{
		Customer:  &c,
		Product:   &p,
		Quantity:  decimal.NewFromInt(qty),
		OrderDate: on,
	}.BuildAt(today)
	require.NoError(t, err)
	return o
}

func newEngine(orders ...order.Order) *report.Engine {
	return report.NewEngine(orders, report.WithClock(func() time.Time { return today }))
}

// fixture is the three order dataset used by the end-to-end tests:
// A buys X@10.00 x3 and Y@20.00 x1 in January, B buys X@10.00 x5 in February.
type fixture struct {
	a, b   customer.Customer
	x, y   product.Product
	engine *report.Engine
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		a: newCustomer(t, "ANNA", 30),
		b: newCustomer(t, "BOLEK", 40),
		x: newProduct(t, "PEN", "10.00", product.CategoryHome),
		y: newProduct(t, "NOVEL", "20.00", product.CategoryBooks),
	}
	f.engine = newEngine(
		newOrder(t, f.a, f.x, 3, date(time.January, 10)),
		newOrder(t, f.a, f.y, 1, date(time.January, 20)),
		newOrder(t, f.b, f.x, 5, date(time.February, 3)),
	)
	return f
}

func TestEngine_EndToEnd(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []report.MonthCount{
		{Month: time.January, Count: 2},
		{Month: time.February, Count: 1},
	}, f.engine.OrdersPerMonth())

	assert.Equal(t, []report.MonthCategory{
		{Month: time.January, Category: product.CategoryHome},
		{Month: time.February, Category: product.CategoryHome},
	}, f.engine.MostPopularCategoryPerMonth())

	best, err := f.engine.CustomerWhoPaidMost()
	require.NoError(t, err)
	assert.Equal(t, f.a, best.Customer)
	assert.True(t, decimal.NewFromInt(50).Equal(best.Total), best.Total.String())

	totals := f.engine.CustomerTotals()
	require.Len(t, totals, 2)
	assert.True(t, decimal.NewFromInt(50).Equal(totals[1].Total))
}

func TestEngine_AveragePriceInRange(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name     string
		from, to time.Time
		want     string
	}{
		{name: "whole dataset", from: date(time.January, 1), to: date(time.December, 31), want: "13.3333333333333333333333333333333333"},
		{name: "inclusive bounds", from: date(time.January, 10), to: date(time.January, 20), want: "15"},
		{name: "single day", from: date(time.February, 3), to: date(time.February, 3), want: "10"},
		{name: "no matching orders", from: date(time.March, 1), to: date(time.March, 31), want: "0"},
		{
			name: "time of day is ignored",
			from: date(time.January, 20).Add(23 * time.Hour),
			to:   date(time.February, 3).Add(time.Hour),
			want: "15",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.engine.AveragePriceInRange(tt.from, tt.to)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)

			reversed, err := f.engine.AveragePriceInRange(tt.to, tt.from)
			require.NoError(t, err)
			assert.True(t, got.Equal(reversed), "reversed range got %s", reversed)
		})
	}

	t.Run("missing bound", func(t *testing.T) {
		_, err := f.engine.AveragePriceInRange(time.Time{}, date(time.January, 1))
		require.ErrorIs(t, err, report.ErrInvalidRange)
		_, err = f.engine.AveragePriceInRange(date(time.January, 1), time.Time{})
		require.ErrorIs(t, err, report.ErrInvalidRange)
	})
}

func TestEngine_AveragePriceInRangeIsNotRounded(t *testing.T) {
	c := newCustomer(t, "ANNA", 30)
	e := newEngine(
		newOrder(t, c, newProduct(t, "PEN", "10.00", product.CategoryHome), 1, date(time.May, 1)),
		newOrder(t, c, newProduct(t, "INK", "10.01", product.CategoryHome), 1, date(time.May, 2)),
		newOrder(t, c, newProduct(t, "PAD", "10.01", product.CategoryHome), 1, date(time.May, 3)),
	)

	got, err := e.AveragePriceInRange(date(time.May, 1), date(time.May, 31))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10.0066666666666666666666666666666667").Equal(got), "got %s", got)
	assert.Equal(t, "10.01", got.StringFixed(2))
}

func TestEngine_MostExpensiveProductPerCategory(t *testing.T) {
	c := newCustomer(t, "ANNA", 30)
	cheap := newProduct(t, "MUG", "5.00", product.CategoryHome)
	lamp := newProduct(t, "LAMP", "99.99", product.CategoryHome)
	chair := newProduct(t, "CHAIR", "99.990", product.CategoryHome)
	book := newProduct(t, "NOVEL", "20.00", product.CategoryBooks)

	e := newEngine(
		newOrder(t, c, cheap, 1, date(time.January, 2)),
		newOrder(t, c, book, 1, date(time.January, 2)),
		newOrder(t, c, lamp, 1, date(time.January, 3)),
		newOrder(t, c, chair, 1, date(time.January, 4)),
	)

	got := e.MostExpensiveProductPerCategory()
	require.Len(t, got, 2)
	assert.Equal(t, product.CategoryHome, got[0].Category)
	assert.Equal(t, "LAMP", got[0].Product.Name(), "equal prices keep the first product")
	assert.Equal(t, product.CategoryBooks, got[1].Category)
	assert.Equal(t, "NOVEL", got[1].Product.Name())

	assert.Equal(t, got, e.MostExpensiveProductPerCategory())
}

func TestEngine_CustomerProductSummaries(t *testing.T) {
	f := newFixture(t)

	got := f.engine.CustomerProductSummaries()
	require.Len(t, got, 2)

	assert.Equal(t, f.a, got[0].Customer)
	assert.Equal(t, []product.Product{f.x, f.y}, got[0].Products)
	assert.Equal(t, f.x.String()+"\n"+f.y.String(), got[0].Text)

	assert.Equal(t, f.b, got[1].Customer)
	assert.Equal(t, f.x.String(), got[1].Text)
}

func TestEngine_ProductSummaryMessages(t *testing.T) {
	c := newCustomer(t, "ANNA", 30)
	p := newProduct(t, "R&D KIT", "12.50", product.CategoryToys)
	e := newEngine(
		newOrder(t, c, p, 1, date(time.January, 2)),
		newOrder(t, c, p, 2, date(time.January, 3)),
	)

	msgs, err := e.ProductSummaryMessages("")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, c.Email(), msgs[0].To)
	assert.Equal(t, report.DefaultSubject, msgs[0].Subject)
	assert.Equal(t,
		"<h1>R&amp;D KIT [TOYS] 12.50\nR&amp;D KIT [TOYS] 12.50</h1>",
		msgs[0].HTMLBody,
	)

	msgs, err = e.ProductSummaryMessages("Your orders")
	require.NoError(t, err)
	assert.Equal(t, "Your orders", msgs[0].Subject)
}

func TestEngine_DatesWithMostAndLeastOrders(t *testing.T) {
	c := newCustomer(t, "ANNA", 30)
	p := newProduct(t, "PEN", "1.00", product.CategoryHome)

	tests := []struct {
		name      string
		dates     []time.Time
		wantMost  time.Time
		wantLeast time.Time
	}{
		{
			name:      "distinct counts",
			dates:     []time.Time{date(time.May, 1), date(time.May, 2), date(time.May, 2), date(time.May, 3), date(time.May, 2), date(time.May, 3)},
			wantMost:  date(time.May, 2),
			wantLeast: date(time.May, 1),
		},
		{
			name:      "ties resolve to first seen",
			dates:     []time.Time{date(time.June, 9), date(time.June, 1), date(time.June, 9), date(time.June, 1)},
			wantMost:  date(time.June, 9),
			wantLeast: date(time.June, 9),
		},
		{
			name:      "single order",
			dates:     []time.Time{date(time.July, 4)},
			wantMost:  date(time.July, 4),
			wantLeast: date(time.July, 4),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := make([]order.Order, len(tt.dates))
			for i, d := range tt.dates {
				orders[i] = newOrder(t, c, p, 1, d)
			}
			e := newEngine(orders...)

			most, err := e.DateWithMostOrders()
			require.NoError(t, err)
			assert.True(t, tt.wantMost.Equal(most), "most: %s", most)

			least, err := e.DateWithLeastOrders()
			require.NoError(t, err)
			assert.True(t, tt.wantLeast.Equal(least), "least: %s", least)
		})
	}
}

func TestEngine_SummaryPriceWithDiscount(t *testing.T) {
	hundred := newProduct(t, "DESK", "100.00", product.CategoryHome)
	odd := newProduct(t, "CUP", "3.33", product.CategoryHome)
	cent := newProduct(t, "STAMP", "0.01", product.CategoryHome)

	tests := []struct {
		name string
		age  int
		p    product.Product
		qty  int64
		on   time.Time
		want string
	}{
		{name: "youth discount wins over far date", age: 20, p: hundred, qty: 2, on: date(time.June, 1), want: "194"},
		{name: "youth discount wins over near date", age: 24, p: hundred, qty: 1, on: today, want: "97"},
		{name: "near date tomorrow", age: 30, p: hundred, qty: 2, on: today.AddDate(0, 0, 1), want: "196"},
		{name: "near date boundary", age: 30, p: hundred, qty: 1, on: today.AddDate(0, 0, 2), want: "98"},
		{name: "outside window", age: 30, p: hundred, qty: 2, on: today.AddDate(0, 0, 10), want: "200"},
		{name: "just outside window", age: 25, p: hundred, qty: 1, on: today.AddDate(0, 0, 3), want: "100"},
		{name: "keeps fractions of a cent", age: 20, p: odd, qty: 1, on: date(time.June, 1), want: "3.2301"},
		{name: "sub-cent total", age: 20, p: cent, qty: 1, on: date(time.June, 1), want: "0.0097"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCustomer(t, "ANNA", tt.age)
			e := newEngine(newOrder(t, c, tt.p, tt.qty, tt.on))

			got := e.SummaryPriceWithDiscount()
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}

	t.Run("sums every order", func(t *testing.T) {
		young := newCustomer(t, "ANNA", 20)
		old := newCustomer(t, "BOLEK", 50)
		e := newEngine(
			newOrder(t, young, hundred, 2, date(time.June, 1)),
			newOrder(t, old, hundred, 1, today.AddDate(0, 0, 1)),
			newOrder(t, old, hundred, 1, date(time.June, 1)),
		)
		got := e.SummaryPriceWithDiscount()
		assert.True(t, decimal.NewFromInt(392).Equal(got), "got %s", got)
	})
}

func TestEngine_CustomersWithMinimumQuantity(t *testing.T) {
	a := newCustomer(t, "ANNA", 30)
	b := newCustomer(t, "BOLEK", 30)
	c := newCustomer(t, "CELINA", 30)
	p := newProduct(t, "PEN", "1.00", product.CategoryHome)

	e := newEngine(
		newOrder(t, a, p, 5, date(time.March, 1)),
		newOrder(t, b, p, 7, date(time.March, 1)),
		newOrder(t, a, p, 9, date(time.March, 2)),
		newOrder(t, b, p, 4, date(time.March, 2)),
		newOrder(t, c, p, 6, date(time.March, 3)),
	)

	got, err := e.CustomersWithMinimumQuantity(5)
	require.NoError(t, err)
	assert.Equal(t, []customer.Customer{a, c}, got)

	got, err = e.CustomersWithMinimumQuantity(100)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	for _, x := range []int{0, -1} {
		_, err := e.CustomersWithMinimumQuantity(x)
		require.ErrorIs(t, err, report.ErrInvalidArgument, "x=%d", x)
	}
}

func TestEngine_SaveCustomersWithMinimumQuantity(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	saved, err := f.engine.SaveCustomersWithMinimumQuantity(dir, 3)
	require.NoError(t, err)
	assert.Equal(t,
		filepath.Join(dir, "customers_who_bought_at_least_3_quantity_of_products.json"),
		saved.Path,
	)
	assert.Equal(t, []customer.Customer{f.b}, saved.Customers)

	loaded, err := jsonfile.Load(saved.Path, customer.Decode)
	require.NoError(t, err)
	assert.Equal(t, saved.Customers, loaded)

	t.Run("invalid threshold writes nothing", func(t *testing.T) {
		_, err := f.engine.SaveCustomersWithMinimumQuantity(dir, 0)
		require.ErrorIs(t, err, report.ErrInvalidArgument)
		_, statErr := os.Stat(filepath.Join(dir, report.MinimumQuantityFileName(0)))
		assert.ErrorIs(t, statErr, os.ErrNotExist)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := f.engine.SaveCustomersWithMinimumQuantity(filepath.Join(dir, "missing"), 1)
		var writeErr *jsonfile.WriteError
		require.ErrorAs(t, err, &writeErr)
	})
}

func TestEngine_MostPopularCategory(t *testing.T) {
	c := newCustomer(t, "ANNA", 30)
	ball := newProduct(t, "BALL", "30.00", product.CategorySport)
	bread := newProduct(t, "BREAD", "3.00", product.CategoryFood)

	e := newEngine(
		newOrder(t, c, ball, 1, date(time.April, 1)),
		newOrder(t, c, bread, 1, date(time.April, 1)),
		newOrder(t, c, bread, 1, date(time.April, 2)),
	)
	got, err := e.MostPopularCategory()
	require.NoError(t, err)
	assert.Equal(t, product.CategoryFood, got)

	tie := newEngine(
		newOrder(t, c, ball, 1, date(time.April, 1)),
		newOrder(t, c, bread, 1, date(time.April, 1)),
	)
	got, err = tie.MostPopularCategory()
	require.NoError(t, err)
	assert.Equal(t, product.CategorySport, got)
}

func TestEngine_OrdersPerMonthAcrossYears(t *testing.T) {
	c := newCustomer(t, "ANNA", 30)
	p := newProduct(t, "PEN", "1.00", product.CategoryHome)

	e := newEngine(
		newOrder(t, c, p, 1, date(time.March, 1)),
		newOrder(t, c, p, 1, date(time.May, 1)),
		newOrder(t, c, p, 1, date(time.May, 2).AddDate(1, 0, 0)),
		newOrder(t, c, p, 1, date(time.April, 1)),
		newOrder(t, c, p, 1, date(time.March, 5).AddDate(2, 0, 0)),
		newOrder(t, c, p, 1, date(time.May, 9)),
	)
	assert.Equal(t, []report.MonthCount{
		{Month: time.May, Count: 3},
		{Month: time.March, Count: 2},
		{Month: time.April, Count: 1},
	}, e.OrdersPerMonth())
}

func TestEngine_EmptyDataset(t *testing.T) {
	e := newEngine()

	assert.Zero(t, e.Len())

	avg, err := e.AveragePriceInRange(date(time.January, 1), date(time.December, 31))
	require.NoError(t, err)
	assert.True(t, avg.IsZero())

	_, err = e.DateWithMostOrders()
	require.ErrorIs(t, err, report.ErrNoOrders)
	_, err = e.DateWithLeastOrders()
	require.ErrorIs(t, err, report.ErrNoOrders)
	_, err = e.CustomerWhoPaidMost()
	require.ErrorIs(t, err, report.ErrNoOrders)
	_, err = e.MostPopularCategory()
	require.ErrorIs(t, err, report.ErrNoOrders)

	assert.Empty(t, e.MostExpensiveProductPerCategory())
	assert.Empty(t, e.CustomerProductSummaries())
	assert.Empty(t, e.OrdersPerMonth())
	assert.Empty(t, e.MostPopularCategoryPerMonth())
	assert.True(t, e.SummaryPriceWithDiscount().IsZero())

	msgs, err := e.ProductSummaryMessages("")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestNewEngine_CopiesInput(t *testing.T) {
	c := newCustomer(t, "ANNA", 30)
	p := newProduct(t, "PEN", "1.00", product.CategoryHome)
	orders := []order.Order{newOrder(t, c, p, 1, date(time.March, 1))}

	e := newEngine(orders...)
	orders[0] = newOrder(t, c, p, 1, date(time.April, 1))

	assert.Equal(t, []report.MonthCount{{Month: time.March, Count: 1}}, e.OrdersPerMonth())
}
