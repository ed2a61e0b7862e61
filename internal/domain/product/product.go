// Package product defines the validated Product entity and its Category.
package product

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/karolwisniewski/strumienie-03/internal/domain"
)

// Category is the closed set of product classifications.
type Category string

const (
	CategoryElectronics Category = "ELECTRONICS"
	CategoryBooks       Category = "BOOKS"
	CategoryClothes     Category = "CLOTHES"
	CategoryFood        Category = "FOOD"
	CategorySport       Category = "SPORT"
	CategoryToys        Category = "TOYS"
	CategoryHome        Category = "HOME"
)

// Categories lists every Category in declaration order.
var Categories = []Category{
	CategoryElectronics,
	CategoryBooks,
	CategoryClothes,
	CategoryFood,
	CategorySport,
	CategoryToys,
	CategoryHome,
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product represents a catalog item with an exact decimal price.
type Product struct {
	name     string
	price    decimal.Decimal
	category Category
}

// Draft accumulates product fields; validation happens only in Build.
type Draft struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	Category Category        `json:"category" validate:"oneof=ELECTRONICS BOOKS CLOTHES FOOD SPORT TOYS HOME"`
}

// Build validates the draft and returns the sealed Product.
func (d Draft) Build() (Product, error) {
	if err := domain.Validate("product", d); err != nil {
		return Product{}, err
	}
	return Product{
		name:     d.Name,
		price:    d.Price,
		category: d.Category,
	}, nil
}

func (p Product) Name() string { return p.name }
func (p Product) Price() decimal.Decimal { return p.price }
func (p Product) Category() Category { return p.category }

// Equal reports whether both products have the same name, category and
// numerically equal price.
func (p Product) Equal(other Product) bool {
	return p.name == other.name &&
		p.category == other.category &&
		p.price.Equal(other.price)
}

func (p Product) String() string {
	return fmt.Sprintf("%s [%s] %s", p.name, p.category, p.price.StringFixed(2))
}
