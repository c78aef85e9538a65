package middleware

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "tourismfx/internal/errors"
)

var (
	yearMonthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])(-\d{2})?$`)
	currencyPattern  = regexp.MustCompile(`^[A-Za-z]{3}$`)
)

// QueryValidator validates query parameters bound into structs with `query`
// and `validate` tags.
type QueryValidator struct {
	validator *validator.Validate
}

// NewQueryValidator creates a validator with the custom "yearmonth" and
// "currency" tags registered.
func NewQueryValidator() *QueryValidator {
	v := validator.New()
	v.RegisterValidation("yearmonth", isYearMonth)
	v.RegisterValidation("currency", isCurrency)

	// Use query tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &QueryValidator{validator: v}
}

// Bind copies query values into the string fields of dst that carry a
// `query` tag and validates the result.
func (m *QueryValidator) Bind(values url.Values, dst interface{}) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bind target must be a pointer to a struct, got %T", dst)
	}
	elem := rv.Elem()
	for i := 0; i < elem.NumField(); i++ {
		field := elem.Type().Field(i)
		name := strings.SplitN(field.Tag.Get("query"), ",", 2)[0]
		if name == "" || name == "-" || field.Type.Kind() != reflect.String {
			continue
		}
		if v, ok := values[name]; ok && len(v) > 0 {
			elem.Field(i).SetString(strings.TrimSpace(v[0]))
		}
	}
	return m.ValidateStruct(dst)
}

// ValidateStruct validates a struct and returns validation errors
func (m *QueryValidator) ValidateStruct(v interface{}) error {
	err := m.validator.Struct(v)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	validationErrors := make([]apierrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		validationErrors = append(validationErrors, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: formatValidationError(fe),
		})
	}
	return apierrors.NewValidationErrors(validationErrors)
}

// formatValidationError formats validation error messages
func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "yearmonth":
		return fmt.Sprintf("%s must be a month as YYYY-MM or a date as YYYY-MM-DD", field)
	case "currency":
		return fmt.Sprintf("%s must be a three-letter currency code", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

// Custom validators

func isYearMonth(fl validator.FieldLevel) bool {
	return yearMonthPattern.MatchString(fl.Field().String())
}

func isCurrency(fl validator.FieldLevel) bool {
	return currencyPattern.MatchString(fl.Field().String())
}
