package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	ErrRequired       = "is required"
	ErrMinValue       = "must be at least %s"
	ErrMaxValue       = "must be at most %s"
	ErrMinLength      = "must be at least %s characters long"
	ErrMaxLength      = "must be at most %s characters long"
	ErrMinItems       = "must contain at least %s item(s)"
	ErrMaxItems       = "must contain at most %s item(s)"
	ErrUniqueItems    = "must not contain duplicate values"
	ErrCouponCode     = "must contain only letters, digits, '-' or '_'"
	ErrDefaultInvalid = "is invalid"
)

var couponCodeRgx = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("coupon_code", validateCouponCode)

	// Report json field names so messages match the request body.
	validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return validator
}

func validateCouponCode(fl validator.FieldLevel) bool {
	return couponCodeRgx.MatchString(fl.Field().String())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	kind := err.Kind()

	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		switch kind {
		case reflect.String:
			return fmt.Sprintf(ErrMinLength, err.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf(ErrMinItems, err.Param())
		default:
			return fmt.Sprintf(ErrMinValue, err.Param())
		}
	case "max":
		switch kind {
		case reflect.String:
			return fmt.Sprintf(ErrMaxLength, err.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf(ErrMaxItems, err.Param())
		default:
			return fmt.Sprintf(ErrMaxValue, err.Param())
		}
	case "unique":
		return ErrUniqueItems
	case "coupon_code":
		return ErrCouponCode
	default:
		return ErrDefaultInvalid
	}
}
