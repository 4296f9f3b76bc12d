package validation

import (
	stderrors "errors"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/utilkit/errors"
)

// tagMessages maps a validator tag to the text reported for it. Entries
// ending in a space get the tag parameter appended.
var tagMessages = map[string]string{
	"required":      "is required",
	"min":           "must be at least ",
	"max":           "must be at most ",
	"gte":           "must be >= ",
	"lte":           "must be <= ",
	"oneof":         "must be one of: ",
	"hostname_port": "must be host:port",
	"url":           "must be a valid URL",
}

var engine = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	return v
})

// Validate checks s against its `validate` struct tags. Failures come
// back as one INVALID_INPUT error naming fields by their mapstructure
// or json key.
func Validate(s any) error {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Validation("validation failed").WithCause(err)
	}
	failed := make([]FieldError, len(verrs))
	for i, fe := range verrs {
		failed[i] = FieldError{Field: fe.Field(), Message: describe(fe)}
	}
	return invalid(failed)
}

func describe(fe validator.FieldError) string {
	msg, ok := tagMessages[fe.Tag()]
	if !ok {
		return "is invalid"
	}
	if strings.HasSuffix(msg, " ") {
		return msg + fe.Param()
	}
	return msg
}

func fieldName(f reflect.StructField) string {
	for _, tag := range [...]string{"mapstructure", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return toSnakeCase(f.Name)
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
