// Package customer defines the validated Customer entity.
package customer

import (
	"fmt"

	"github.com/karolwisniewski/strumienie-03/internal/domain"
)

// Customer is an immutable, validated buyer. Customers compare equal by value
// and are used directly as grouping keys.
type Customer struct {
	name    string
	surname string
	age     int
	email   string
}

// Draft accumulates customer fields; validation happens only in Build.
type Draft struct {
	Name    string `json:"name" validate:"upperwords"`
	Surname string `json:"surname" validate:"upperwords"`
	Age     int    `json:"age" validate:"gte=18"`
	Email   string `json:"email" validate:"mailbox"`
}

// Build validates the draft and returns the sealed Customer. It returns a
// *domain.BuildingError naming the first invalid field.
func (d Draft) Build() (Customer, error) {
	if err := domain.Validate("customer", d); err != nil {
		return Customer{}, err
	}
	return Customer{
		name:    d.Name,
		surname: d.Surname,
		age:     d.Age,
		email:   d.Email,
	}, nil
}

func (c Customer) Name() string { return c.name }
func (c Customer) Surname() string { return c.surname }
func (c Customer) Age() int { return c.age }
func (c Customer) Email() string { return c.email }

// Draft returns the customer's fields as an editable draft.
func (c Customer) Draft() Draft {
	return Draft{Name: c.name, Surname: c.surname, Age: c.age, Email: c.email}
}

func (c Customer) String() string {
	return fmt.Sprintf("%s %s (%d, %s)", c.name, c.surname, c.age, c.email)
}
