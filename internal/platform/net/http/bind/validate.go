// Package bind decodes query strings into DTOs and validates them
package bind

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	perr "storefront/internal/platform/errors"
	"storefront/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel is what custom validation funcs receive
type FieldLevel = validator.FieldLevel

var (
	once  sync.Once
	valid *validator.Validate
	trans ut.Translator
)

// resourceType matches lower case path segments such as catalog or product/property
var resourceType = regexp.MustCompile(`^[a-z][a-z0-9_]*(/[a-z][a-z0-9_]*)*$`)

// messages replace the stock english texts; {0} is the field, {1} the tag param
var messages = map[string]string{
	"min":   "{0} must be at least {1}",
	"max":   "{0} must be at most {1}",
	"rtype": "{0} must be a resource type such as catalog or product/property",
}

func setup() {
	loc := en.New()
	trans, _ = ut.New(loc, loc).GetTranslator("en")

	valid = validator.New(validator.WithRequiredStructEnabled())
	valid.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"query", "json"} {
			if name, ok := tagName(f, key); ok {
				return name
			}
		}
		return f.Name
	})
	_ = entrans.RegisterDefaultTranslations(valid, trans)
	_ = valid.RegisterValidation("rtype", func(fl validator.FieldLevel) bool {
		return resourceType.MatchString(fl.Field().String())
	})

	for tag, text := range messages {
		_ = valid.RegisterTranslation(tag, trans,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(tag, fe.Field(), fe.Param())
				return msg
			},
		)
	}
}

func validate() *validator.Validate {
	once.Do(setup)
	return valid
}

// RegisterValidation adds or replaces a custom tag
func RegisterValidation(tag string, fn func(FieldLevel) bool) error {
	return validate().RegisterValidation(tag, fn)
}

// Validate checks v's struct tags; the first failure becomes a validation error naming its field
func Validate(v any) error {
	err := validate().Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Named("bind").Error().Err(inv).Msg("validator misuse")
		return perr.Internalf("validation error")
	}
	field, msg := FirstFailure(err)
	return perr.WithField(perr.New(perr.ErrorCodeValidation, msg), field)
}

// FirstFailure is the field and translated message of the first validation failure
// other errors yield no field and their own text
func FirstFailure(err error) (field, msg string) {
	var verrs validator.ValidationErrors
	switch {
	case err == nil:
		return "", ""
	case errors.As(err, &verrs) && len(verrs) > 0:
		once.Do(setup)
		return verrs[0].Field(), verrs[0].Translate(trans)
	}
	return "", err.Error()
}

func tagName(f reflect.StructField, key string) (string, bool) {
	name, _, _ := strings.Cut(f.Tag.Get(key), ",")
	if name == "" || name == "-" {
		return "", false
	}
	return name, true
}
