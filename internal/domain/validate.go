package domain

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	upperWords = regexp.MustCompile(`^[A-Z]+( [A-Z]+)*$`)
	mailbox    = regexp.MustCompile(`^[a-zA-Z0-9!#$%&'*+\-/=?^_` + "`" + `{|}.~]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*\.[a-zA-Z]{2,}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names so errors read the same as the data files.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	// Decimals are validated by sign, so `gt=0` means strictly positive.
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		if d, ok := f.Interface().(decimal.Decimal); ok {
			return d.Sign()
		}
		return nil
	}, decimal.Decimal{})

	mustRegister(v, "upperwords", func(fl validator.FieldLevel) bool {
		return upperWords.MatchString(fl.Field().String())
	})
	mustRegister(v, "mailbox", func(fl validator.FieldLevel) bool {
		return mailbox.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Validate checks draft against its `validate` struct tags and converts the
// first failing field into a *BuildingError for entity.
func Validate(entity string, draft any) error {
	err := validate.Struct(draft)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrapf(err, "validate %s", entity)
	}

	fe := verrs[0]
	return &BuildingError{
		Entity: entity,
		Field:  fe.Field(),
		Reason: reason(fe),
	}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "upperwords":
		return "must be one or more space-separated uppercase words"
	case "mailbox":
		return "incorrect email address format"
	case "gte":
		return "must be at least " + fe.Param()
	case "gt":
		if fe.Param() == "0" {
			return "must be greater than zero"
		}
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
