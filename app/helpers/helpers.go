package helpers

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

type contextKey string

const (
	ContextKeyUserEmail   contextKey = "userEmail"
	ContextKeyDashboardID contextKey = "dashboardID"
	ContextKeyLanguage    contextKey = "language"
)

// FormatValidationErrors keys each failure by field name. With a
// translator the registered message is used, otherwise a built-in English one.
func FormatValidationErrors(errs validator.ValidationErrors, trans ut.Translator) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		if trans != nil {
			errorMessages[field] = err.Translate(trans)
			continue
		}
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required.", err.Field())
		case "email":
			errorMessages[field] = fmt.Sprintf("%s must be a valid email address.", err.Field())
		case "numeric", "number":
			errorMessages[field] = fmt.Sprintf("%s must be a number.", err.Field())
		case "amount":
			errorMessages[field] = fmt.Sprintf("%s must be a non-negative amount.", err.Field())
		case "oneof":
			errorMessages[field] = fmt.Sprintf("%s must be one of %s.", err.Field(), err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("%s failed on the %s rule.", err.Field(), err.Tag())
		}
	}
	return errorMessages
}

func CapitalizeFirstLetter(s string) string {
	if len(s) == 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "_", " ")
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}
