// Package report answers analytical questions over a loaded order list.
//
// Every operation is a pure function of the orders held by the Engine. Groups
// are discovered in input order and ties always resolve to the group seen
// first. Mapping results are returned as slices of pairs in that discovery
// order unless stated otherwise.
package report

import (
	"cmp"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/karolwisniewski/strumienie-03/internal/discount"
	"github.com/karolwisniewski/strumienie-03/internal/domain"
	"github.com/karolwisniewski/strumienie-03/internal/domain/customer"
	"github.com/karolwisniewski/strumienie-03/internal/domain/order"
	"github.com/karolwisniewski/strumienie-03/internal/domain/product"
	"github.com/karolwisniewski/strumienie-03/internal/jsonfile"
)

// Sentinel errors for caller-supplied arguments and empty datasets.
var (
	ErrInvalidRange    = errors.New("invalid date range")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNoOrders        = errors.New("no orders")
)

// divisionScale is the number of decimal places kept when averaging.
const divisionScale = 34

// CategoryProduct pairs a category with its most expensive product.
type CategoryProduct struct {
	Category product.Category
	Product  product.Product
}

// CustomerSummary lists every product a customer ordered, one entry per order.
type CustomerSummary struct {
	Customer customer.Customer
	Products []product.Product
	Text     string
}

// CustomerTotal is the undiscounted amount a customer paid across orders.
type CustomerTotal struct {
	Customer customer.Customer
	Total    decimal.Decimal
}

// MonthCount is the number of orders placed in a month of the year.
type MonthCount struct {
	Month time.Month
	Count int
}

// MonthCategory is the most ordered category in a month of the year.
type MonthCategory struct {
	Month    time.Month
	Category product.Category
}

// Engine holds an immutable order list and computes reports over it.
type Engine struct {
	orders []order.Order
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the source of "today" used by discount selection.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an Engine over a private copy of orders.
func NewEngine(orders []order.Order, opts ...Option) *Engine {
	e := &Engine{
		orders: slices.Clone(orders),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Len returns the number of orders in the dataset.
func (e *Engine) Len() int {
	return len(e.orders)
}

// AveragePriceInRange returns the mean product price of orders dated within
// [from, to], inclusive, kept to 34 decimal places. The range is swapped
// when from is after to. Returns zero when no order matches and
// ErrInvalidRange when either bound is the zero time.
func (e *Engine) AveragePriceInRange(from, to time.Time) (decimal.Decimal, error) {
	if from.IsZero() || to.IsZero() {
		return decimal.Zero, ErrInvalidRange
	}
	from, to = domain.DateOf(from), domain.DateOf(to)
	if from.After(to) {
		from, to = to, from
	}

	sum := decimal.Zero
	var n int64
	for _, o := range e.orders {
		d := o.OrderDate()
		if d.Before(from) || d.After(to) {
			continue
		}
		sum = sum.Add(o.Product().Price())
		n++
	}
	if n == 0 {
		return decimal.Zero, nil
	}
	return sum.DivRound(decimal.NewFromInt(n), divisionScale), nil
}

// MostExpensiveProductPerCategory returns, for each category present, the
// ordered product with the highest price.
func (e *Engine) MostExpensiveProductPerCategory() []CategoryProduct {
	groups := groupBy(e.orders, byCategory)
	out := make([]CategoryProduct, 0, len(groups))
	for _, g := range groups {
		best := g.orders[0].Product()
		for _, o := range g.orders[1:] {
			if p := o.Product(); p.Price().GreaterThan(best.Price()) {
				best = p
			}
		}
		out = append(out, CategoryProduct{Category: g.key, Product: best})
	}
	return out
}

// CustomerProductSummaries returns, per customer, the products of all their
// orders in input order with a newline-joined textual listing.
func (e *Engine) CustomerProductSummaries() []CustomerSummary {
	groups := groupBy(e.orders, byCustomer)
	out := make([]CustomerSummary, 0, len(groups))
	for _, g := range groups {
		products := make([]product.Product, len(g.orders))
		lines := make([]string, len(g.orders))
		for i, o := range g.orders {
			products[i] = o.Product()
			lines[i] = o.Product().String()
		}
		out = append(out, CustomerSummary{
			Customer: g.key,
			Products: products,
			Text:     strings.Join(lines, "\n"),
		})
	}
	return out
}

// DateWithMostOrders returns the order date with the highest order count.
func (e *Engine) DateWithMostOrders() (time.Time, error) {
	return e.pickDate(larger[time.Time])
}

// DateWithLeastOrders returns the order date with the lowest order count.
func (e *Engine) DateWithLeastOrders() (time.Time, error) {
	return e.pickDate(smaller[time.Time])
}

func (e *Engine) pickDate(better func(a, b group[time.Time]) bool) (time.Time, error) {
	groups := groupBy(e.orders, byDate)
	i := pick(groups, better)
	if i < 0 {
		return time.Time{}, ErrNoOrders
	}
	return groups[i].key, nil
}

// CustomerTotals returns the sum of price × quantity per customer, without
// discounts.
func (e *Engine) CustomerTotals() []CustomerTotal {
	groups := groupBy(e.orders, byCustomer)
	out := make([]CustomerTotal, 0, len(groups))
	for _, g := range groups {
		total := decimal.Zero
		for _, o := range g.orders {
			total = total.Add(o.LineTotal())
		}
		out = append(out, CustomerTotal{Customer: g.key, Total: total})
	}
	return out
}

// CustomerWhoPaidMost returns the customer with the largest undiscounted total.
func (e *Engine) CustomerWhoPaidMost() (CustomerTotal, error) {
	totals := e.CustomerTotals()
	if len(totals) == 0 {
		return CustomerTotal{}, ErrNoOrders
	}
	best := totals[0]
	for _, t := range totals[1:] {
		if t.Total.GreaterThan(best.Total) {
			best = t
		}
	}
	return best, nil
}

// SummaryPriceWithDiscount returns the sum of all line totals, each reduced by
// at most one discount. The sum is exact.
func (e *Engine) SummaryPriceWithDiscount() decimal.Decimal {
	today := domain.DateOf(e.now())
	sum := decimal.Zero
	for _, o := range e.orders {
		d := discount.Select(o.Customer().Age(), o.OrderDate(), today)
		sum = sum.Add(d.Apply(o.LineTotal()))
	}
	return sum
}

// CustomersWithMinimumQuantity returns customers whose every order has a
// quantity of at least minQty. Returns ErrInvalidArgument when minQty <= 0.
func (e *Engine) CustomersWithMinimumQuantity(minQty int) ([]customer.Customer, error) {
	if minQty <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "minimum quantity %d must be positive", minQty)
	}
	threshold := decimal.NewFromInt(int64(minQty))

	out := make([]customer.Customer, 0)
	for _, g := range groupBy(e.orders, byCustomer) {
		if allAtLeast(g.orders, threshold) {
			out = append(out, g.key)
		}
	}
	return out, nil
}

func allAtLeast(orders []order.Order, threshold decimal.Decimal) bool {
	for _, o := range orders {
		if o.Quantity().LessThan(threshold) {
			return false
		}
	}
	return true
}

// MinimumQuantityFileName returns the file name used to persist the result of
// CustomersWithMinimumQuantity for minQty.
func MinimumQuantityFileName(minQty int) string {
	return "customers_who_bought_at_least_" + strconv.Itoa(minQty) + "_quantity_of_products.json"
}

// SavedCustomers describes a persisted customer list.
type SavedCustomers struct {
	Path      string
	Customers []customer.Customer
}

// SaveCustomersWithMinimumQuantity computes CustomersWithMinimumQuantity and
// writes the result into dir under MinimumQuantityFileName.
func (e *Engine) SaveCustomersWithMinimumQuantity(dir string, minQty int) (*SavedCustomers, error) {
	customers, err := e.CustomersWithMinimumQuantity(minQty)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, MinimumQuantityFileName(minQty))
	if err := jsonfile.Save(path, customers); err != nil {
		return nil, errors.Wrap(err, "save customers")
	}

	return &SavedCustomers{Path: path, Customers: customers}, nil
}

// MostPopularCategory returns the category with the most orders.
func (e *Engine) MostPopularCategory() (product.Category, error) {
	groups := groupBy(e.orders, byCategory)
	i := pick(groups, larger[product.Category])
	if i < 0 {
		return "", ErrNoOrders
	}
	return groups[i].key, nil
}

// OrdersPerMonth counts orders per month of the year, across years, sorted by
// count descending. Months with equal counts keep discovery order.
func (e *Engine) OrdersPerMonth() []MonthCount {
	groups := groupBy(e.orders, byMonth)
	out := make([]MonthCount, len(groups))
	for i, g := range groups {
		out[i] = MonthCount{Month: g.key, Count: len(g.orders)}
	}
	slices.SortStableFunc(out, func(a, b MonthCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}

// MostPopularCategoryPerMonth returns, for each month of the year present,
// the category ordered most often in that month.
func (e *Engine) MostPopularCategoryPerMonth() []MonthCategory {
	months := groupBy(e.orders, byMonth)
	out := make([]MonthCategory, 0, len(months))
	for _, m := range months {
		categories := groupBy(m.orders, byCategory)
		best := categories[pick(categories, larger[product.Category])]
		out = append(out, MonthCategory{Month: m.key, Category: best.key})
	}
	return out
}

func byCategory(o order.Order) product.Category { return o.Product().Category() }
func byCustomer(o order.Order) customer.Customer { return o.Customer() }
func byDate(o order.Order) time.Time { return o.OrderDate() }
func byMonth(o order.Order) time.Month { return o.OrderDate().Month() }
