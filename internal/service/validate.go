package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"goals-platform/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	// report json names so messages match what the caller sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// validateInput returns a *domain.ValidationError for the first failing field.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return &domain.ValidationError{Message: err.Error()}
	}
	fe := ves[0]
	return &domain.ValidationError{Field: fe.Field(), Message: describe(fe)}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "failed '" + fe.Tag() + "' check"
	}
}

// checkNormalizedLen rejects text that outgrew its column when normalized
// (upper-casing "ß" yields "SS").
func checkNormalizedLen(field, s string, max int) error {
	if utf8.RuneCountInString(s) > max {
		return &domain.ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters once upper-cased", max)}
	}
	return nil
}

func normalizeGoalText(title, description string) (string, string, error) {
	t, d := domain.NormalizeText(title), domain.NormalizeText(description)
	if err := checkNormalizedLen("title", t, domain.MaxTitleLen); err != nil {
		return "", "", err
	}
	if err := checkNormalizedLen("description", d, domain.MaxDescriptionLen); err != nil {
		return "", "", err
	}
	return t, d, nil
}
