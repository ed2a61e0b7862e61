package order

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/karolwisniewski/strumienie-03/internal/domain"
	"github.com/karolwisniewski/strumienie-03/internal/domain/customer"
	"github.com/karolwisniewski/strumienie-03/internal/domain/product"
)

// Encode writes the order as a JSON object with nested customer and product.
func (o Order) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("customer", o.customer.Encode)
		e.Field("product", o.product.Encode)
		e.Field("quantity", func(e *jx.Encoder) { domain.EncodeDecimal(e, o.quantity) })
		e.Field("orderDate", func(e *jx.Encoder) { e.Str(o.orderDate.Format(domain.DateLayout)) })
	})
}

// Decoder returns a decode function that builds orders validated against
// the instant returned by now.
func Decoder(now func() time.Time) func(d *jx.Decoder) (Order, error) {
	return func(d *jx.Decoder) (Order, error) {
		var draft Draft
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			var err error
			switch key {
			case "customer":
				var c customer.Customer
				if c, err = customer.Decode(d); err == nil {
					draft.Customer = &c
				}
			case "product":
				var p product.Product
				if p, err = product.Decode(d); err == nil {
					draft.Product = &p
				}
			case "quantity":
				draft.Quantity, err = domain.DecodeDecimal(d)
			case "orderDate":
				var s string
				if s, err = d.Str(); err == nil {
					draft.OrderDate, err = domain.ParseDate(s)
				}
			default:
				err = d.Skip()
			}
			if err != nil {
				return errors.Wrapf(err, "field %q", key)
			}
			return nil
		}); err != nil {
			return Order{}, errors.Wrap(err, "decode order")
		}
		return draft.BuildAt(now())
	}
}

// Decode reads a JSON object and builds an Order validated against the
// current time.
func Decode(d *jx.Decoder) (Order, error) {
	return Decoder(time.Now)(d)
}
