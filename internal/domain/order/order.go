// Package order defines the validated Order entity linking a customer, a
// product, a quantity and an order date.
package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/karolwisniewski/strumienie-03/internal/domain"
	"github.com/karolwisniewski/strumienie-03/internal/domain/customer"
	"github.com/karolwisniewski/strumienie-03/internal/domain/product"
)

// Order is an immutable purchase of a quantity of one product by one customer.
type Order struct {
	customer  customer.Customer
	product   product.Product
	quantity  decimal.Decimal
	orderDate time.Time
}

// Draft accumulates order fields; validation happens only in Build.
type Draft struct {
	Customer  *customer.Customer `json:"customer" validate:"required"`
	Product   *product.Product   `json:"product" validate:"required"`
	Quantity  decimal.Decimal    `json:"quantity" validate:"gt=0"`
	OrderDate time.Time          `json:"orderDate"`
}

// Build validates the draft against the current date.
func (d Draft) Build() (Order, error) {
	return d.BuildAt(time.Now())
}

// BuildAt validates the draft treating now as the current instant. Fields
// are checked in order: customer, product, quantity, orderDate.
func (d Draft) BuildAt(now time.Time) (Order, error) {
	if err := domain.Validate("order", d); err != nil {
		return Order{}, err
	}

	date := domain.DateOf(d.OrderDate)
	if date.Before(domain.DateOf(now)) {
		return Order{}, &domain.BuildingError{
			Entity: "order",
			Field:  "orderDate",
			Reason: "can not be earlier than today",
		}
	}

	return Order{
		customer:  *d.Customer,
		product:   *d.Product,
		quantity:  d.Quantity,
		orderDate: date,
	}, nil
}

func (o Order) Customer() customer.Customer { return o.customer }
func (o Order) Product() product.Product { return o.product }
func (o Order) Quantity() decimal.Decimal { return o.quantity }

// OrderDate returns the calendar date of the order at midnight UTC.
func (o Order) OrderDate() time.Time { return o.orderDate }

// LineTotal returns price × quantity before any discount.
func (o Order) LineTotal() decimal.Decimal {
	return o.product.Price().Mul(o.quantity)
}

// Equal reports whether both orders reference equal customers and products
// and have numerically equal quantities on the same date.
func (o Order) Equal(other Order) bool {
	return o.customer == other.customer &&
		o.product.Equal(other.product) &&
		o.quantity.Equal(other.quantity) &&
		o.orderDate.Equal(other.orderDate)
}
