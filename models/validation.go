package models

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/copier"
	"github.com/yeremiapane/table-reservation/store"
	"github.com/yeremiapane/table-reservation/utils"
)

// ValidationError carries the first violated rule of an input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// pesan error memakai label (mis. "Table number") bukan nama field Go
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})

	if err := v.RegisterValidation("weburl", isWebURL); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("isodate", isISODate); err != nil {
		panic(err)
	}
	return v
}

// Validate runs the struct rules of input and returns a *ValidationError for the first violation.
func Validate(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	fe := fieldErrs[0]
	return &ValidationError{Field: fe.StructField(), Message: message(fe)}
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "min":
		if isString {
			if fe.Param() == "1" {
				return label + " is required."
			}
			return fmt.Sprintf("%s must be at least %s characters long.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters long.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return label + " must be a valid email address."
	case "weburl":
		return label + " must be a valid http(s) URL."
	case "isodate":
		return label + " must be a valid date."
	}
	return label + " is invalid."
}

// isWebURL -> hanya http/https dengan host
func isWebURL(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" && !strings.ContainsAny(raw, " \t\n")
}

func isISODate(fl validator.FieldLevel) bool {
	_, ok := utils.ParseDate(fl.Field().String())
	return ok
}

// copyInto maps an input onto an entity. Empty input fields leave the entity defaults alone;
// date strings are parsed into time.Time.
func copyInto(to, from interface{}) error {
	return copier.CopyWithOption(to, from, copier.Option{
		IgnoreEmpty: true,
		Converters: []copier.TypeConverter{{
			SrcType: "",
			DstType: time.Time{},
			Fn: func(src interface{}) (interface{}, error) {
				t, ok := utils.ParseDate(src.(string))
				if !ok {
					return nil, fmt.Errorf("invalid date %q", src)
				}
				return t, nil
			},
		}},
	})
}

func sanitize(s string) string {
	return utils.SanitizeString(s)
}

func sanitizePtr(s *string) {
	if s != nil {
		*s = utils.SanitizeString(*s)
	}
}

func setIf[V any](fields store.Fields, key string, v *V) {
	if v != nil {
		fields[key] = *v
	}
}
