package product

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/karolwisniewski/strumienie-03/internal/domain"
)

// Encode writes the product as a JSON object.
func (p Product) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("name", func(e *jx.Encoder) { e.Str(p.name) })
		e.Field("price", func(e *jx.Encoder) { domain.EncodeDecimal(e, p.price) })
		e.Field("category", func(e *jx.Encoder) { e.Str(string(p.category)) })
	})
}

// Decode reads a JSON object and builds a validated Product from it.
func Decode(d *jx.Decoder) (Product, error) {
	var draft Draft
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			draft.Name, err = d.Str()
		case "price":
			draft.Price, err = domain.DecodeDecimal(d)
		case "category":
			var s string
			s, err = d.Str()
			draft.Category = Category(s)
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
		return nil
	}); err != nil {
		return Product{}, errors.Wrap(err, "decode product")
	}
	return draft.Build()
}
