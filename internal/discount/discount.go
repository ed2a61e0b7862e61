// Package discount selects the single discount applied to an order line.
package discount

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/karolwisniewski/strumienie-03/internal/domain"
)

// Kind enumerates the supported discount strategies.
type Kind string

const (
	// KindNone leaves the line total unchanged.
	KindNone Kind = "none"
	// KindYouth applies to customers younger than YouthAgeLimit.
	KindYouth Kind = "youth"
	// KindNearDate applies to orders dated within NearDateDays of today.
	KindNearDate Kind = "near_date"
)

const (
	// YouthAgeLimit is the exclusive upper age bound for the youth discount.
	YouthAgeLimit = 25
	// NearDateDays is the inclusive distance in days for the near date discount.
	NearDateDays = 2
)

var (
	youthFactor    = decimal.RequireFromString("0.97")
	nearDateFactor = decimal.RequireFromString("0.98")
	one            = decimal.NewFromInt(1)
)

// Discount is a multiplicative factor applied to a line total.
type Discount struct {
	Kind   Kind
	Factor decimal.Decimal
}

// None is the identity discount.
var None = Discount{Kind: KindNone, Factor: one}

// Select returns the discount for a customer of the given age ordering on
// orderDate. Discounts never stack: the youth discount takes precedence over
// the near date discount.
func Select(age int, orderDate, today time.Time) Discount {
	if age < YouthAgeLimit {
		return Discount{Kind: KindYouth, Factor: youthFactor}
	}
	if daysBetween(orderDate, today) <= NearDateDays {
		return Discount{Kind: KindNearDate, Factor: nearDateFactor}
	}
	return None
}

// Apply returns total multiplied by the discount factor, unrounded.
func (d Discount) Apply(total decimal.Decimal) decimal.Decimal {
	if d.Factor.IsZero() && d.Kind == "" {
		return total
	}
	return total.Mul(d.Factor)
}

// daysBetween returns the absolute number of calendar days between a and b.
func daysBetween(a, b time.Time) int {
	diff := domain.DateOf(a).Sub(domain.DateOf(b))
	if diff < 0 {
		diff = -diff
	}
	return int(diff / (24 * time.Hour))
}
