// Package validation wraps go-playground/validator with English messages
// keyed by the struct tag that names fields on the wire or in config files.
package validation

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// FieldViolation is one failed rule, with Field as the tag name path.
type FieldViolation struct {
	Field       string
	Description string
}

type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New returns a Validator naming fields after the given struct tag
// ("mapstructure" for config, "json" for requests and model output).
func New(tagName string) (*Validator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get(tagName), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("file", isFileReadable); err != nil {
		return nil, fmt.Errorf("failed to register file validation: %w", err)
	}
	if err := validate.RegisterTranslation("file", trans, func(ut ut.Translator) error {
		return ut.Add("file", "{0} must be an existing and readable file", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("file", trimRoot(fe.Namespace()))
		return t
	}); err != nil {
		return nil, fmt.Errorf("failed to register file translation: %w", err)
	}
	if err := validate.RegisterValidation("notblank", isNotBlank); err != nil {
		return nil, fmt.Errorf("failed to register notblank validation: %w", err)
	}
	if err := validate.RegisterTranslation("notblank", trans, func(ut ut.Translator) error {
		return ut.Add("notblank", "{0} must not be blank", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("notblank", fe.Field())
		return t
	}); err != nil {
		return nil, fmt.Errorf("failed to register notblank translation: %w", err)
	}

	return &Validator{validate: validate, translator: trans}, nil
}

// Struct validates s and returns its violations. Errors other than rule
// failures, such as passing a non-struct, are returned as err.
func (v *Validator) Struct(s any) ([]FieldViolation, error) {
	err := v.validate.Struct(s)
	if err == nil {
		return nil, nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, err
	}
	violations := make([]FieldViolation, 0, len(validationErrors))
	for _, e := range validationErrors {
		violations = append(violations, FieldViolation{
			Field:       trimRoot(e.Namespace()),
			Description: e.Translate(v.translator),
		})
	}
	return violations, nil
}

// Join renders violations as a single message.
func Join(violations []FieldViolation) string {
	msgs := make([]string, 0, len(violations))
	for _, v := range violations {
		msgs = append(msgs, v.Description)
	}
	return strings.Join(msgs, ", ")
}

// trimRoot drops the top-level struct name from a namespace like "Config.database.path".
func trimRoot(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func isFileReadable(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return false
	}

	// Check if the owner has read permission
	return info.Mode().Perm()&(1<<(uint(7))) != 0
}
