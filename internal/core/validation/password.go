package validation

import (
	"regexp"
	"unicode/utf8"

	"github.com/99minutos/user-management/internal/core/domain"
)

const (
	passwordMinLength = 8
	passwordMaxLength = 128
	passwordMaxRun    = 2
)

var (
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	digitPattern   = regexp.MustCompile(`[0-9]`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

const (
	ReasonPasswordTooShort  = "Password must be at least 8 characters long."
	ReasonPasswordTooLong   = "Password must be at most 128 characters long."
	ReasonPasswordRepeated  = "Password contains repeated characters (e.g., aaa or 111)."
	ReasonPasswordNoUpper   = "Password must include at least one uppercase letter."
	ReasonPasswordNoLower   = "Password must include at least one lowercase letter."
	ReasonPasswordNoDigit   = "Password must include at least one number."
	ReasonPasswordNoSpecial = "Password must include at least one special character."
)

// ValidatePassword applies the strength policy and reports the first rule
// violated. Length is counted in characters, not bytes.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	switch {
	case n < passwordMinLength:
		return passwordError(ReasonPasswordTooShort)
	case n > passwordMaxLength:
		return passwordError(ReasonPasswordTooLong)
	case hasRepeatedRun(password):
		return passwordError(ReasonPasswordRepeated)
	case !upperPattern.MatchString(password):
		return passwordError(ReasonPasswordNoUpper)
	case !lowerPattern.MatchString(password):
		return passwordError(ReasonPasswordNoLower)
	case !digitPattern.MatchString(password):
		return passwordError(ReasonPasswordNoDigit)
	case !specialPattern.MatchString(password):
		return passwordError(ReasonPasswordNoSpecial)
	}
	return nil
}

// hasRepeatedRun reports whether any character occurs three or more times in
// a row. RE2 has no back-references, so (.)\1{2,} is done by hand; like
// the dot in that pattern, newlines never count.
func hasRepeatedRun(s string) bool {
	var prev rune
	run := 0
	for i, r := range s {
		if i > 0 && r == prev && r != '\n' {
			run++
			if run >= passwordMaxRun {
				return true
			}
			continue
		}
		prev = r
		run = 0
	}
	return false
}

func passwordError(reason string) error {
	return domain.NewValidationError("password", reason)
}
