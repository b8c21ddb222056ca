package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sangkips/backoffice-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// SetupValidator reports JSON field names in binding errors and lets numeric
// tags (gt, gte, lte) compare decimal.Decimal fields.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// FieldErrors converts validator errors into API field errors. It returns nil
// for errors that did not come from validation, such as malformed JSON.
func FieldErrors(err error) []apperror.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make([]apperror.FieldError, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, apperror.FieldError{
			Field:   fieldPath(e),
			Message: validationMessage(e),
		})
	}
	return out
}

// fieldPath drops the root struct name: "InvoiceRequest.tasks[0].hours"
// becomes "tasks[0].hours".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if e.Kind() == reflect.String {
			return "must be at least " + e.Param() + " characters"
		}
		return "must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "must be at most " + e.Param() + " characters"
		}
		return "must be at most " + e.Param()
	case "len":
		return "must be exactly " + e.Param() + " characters"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must not be less than " + e.Param()
	case "lte":
		return "must not be greater than " + e.Param()
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "uuid":
		return "must be a valid UUID"
	default:
		return "is invalid"
	}
}
