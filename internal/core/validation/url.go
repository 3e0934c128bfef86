package validation

import (
	"regexp"

	"github.com/99minutos/user-management/internal/core/domain"
)

// urlPattern is a permissive shape check, not an RFC 3986 parser.
var urlPattern = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)

const reasonInvalidURL = "Invalid URL format"

// ValidateURL accepts a nil value untouched and otherwise requires an
// http(s) URL shape.
func ValidateURL(field string, value *string) error {
	if value == nil {
		return nil
	}
	if !urlPattern.MatchString(*value) {
		return domain.NewValidationError(field, reasonInvalidURL)
	}
	return nil
}

type urlField struct {
	name  string
	value *string
}

func validateURLs(fields ...urlField) error {
	for _, f := range fields {
		if err := ValidateURL(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}
