package customer

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Encode writes the customer as a JSON object.
func (c Customer) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("name", func(e *jx.Encoder) { e.Str(c.name) })
		e.Field("surname", func(e *jx.Encoder) { e.Str(c.surname) })
		e.Field("age", func(e *jx.Encoder) { e.Int(c.age) })
		e.Field("email", func(e *jx.Encoder) { e.Str(c.email) })
	})
}

// Decode reads a JSON object and builds a validated Customer from it.
// Unknown keys are skipped.
func Decode(d *jx.Decoder) (Customer, error) {
	var draft Draft
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			draft.Name, err = d.Str()
		case "surname":
			draft.Surname, err = d.Str()
		case "age":
			draft.Age, err = d.Int()
		case "email":
			draft.Email, err = d.Str()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
		return nil
	}); err != nil {
		return Customer{}, errors.Wrap(err, "decode customer")
	}
	return draft.Build()
}
