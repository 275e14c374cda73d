package holidaze

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type RegisterInput struct {
	Name         string `json:"name" validate:"required,min=3"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	VenueManager bool   `json:"venueManager"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type VenueInput struct {
	Name        string    `json:"name" validate:"required,min=3"`
	Description string    `json:"description" validate:"required,min=10"`
	Media       []Media   `json:"media" validate:"required,min=1,dive"`
	Price       float64   `json:"price" validate:"gte=1"`
	MaxGuests   int       `json:"maxGuests" validate:"gte=1,lte=100"`
	Meta        *Meta     `json:"meta,omitempty"`
	Location    *Location `json:"location,omitempty"`
}

// VenueUpdate only sends the fields that are set.
type VenueUpdate struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=3"`
	Description *string   `json:"description,omitempty" validate:"omitempty,min=10"`
	Media       []Media   `json:"media,omitempty" validate:"omitempty,dive"`
	Price       *float64  `json:"price,omitempty" validate:"omitempty,gte=1"`
	MaxGuests   *int      `json:"maxGuests,omitempty" validate:"omitempty,gte=1,lte=100"`
	Meta        *Meta     `json:"meta,omitempty"`
	Location    *Location `json:"location,omitempty"`
}

type BookingUpdate struct {
	DateFrom *string `json:"dateFrom,omitempty"`
	DateTo   *string `json:"dateTo,omitempty"`
	Guests   *int    `json:"guests,omitempty"`
}

// VenueQuery pages through the venue list. Q filters the fetched page by
// name and is never sent upstream.
type VenueQuery struct {
	Q         string
	Limit     int
	Page      int
	Sort      string
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// InputError lists every problem found in a payload.
type InputError struct {
	Problems []string
}

func (e *InputError) Error() string { return strings.Join(e.Problems, "; ") }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Check validates a payload and converts failures to an *InputError.
func Check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err
	}
	out := &InputError{}
	for _, fe := range fields {
		out.Problems = append(out.Problems, problem(fe))
	}
	return out
}

func problem(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "min", "gte":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		case reflect.Slice:
			return fmt.Sprintf("%s needs at least %s entry", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}
