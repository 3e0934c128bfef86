package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/user-management/internal/core/domain"
)

func TestValidatePassword_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		password string
		reason   string
	}{
		{"too short", "short", ReasonPasswordTooShort},
		{"short and missing every class", "abc", ReasonPasswordTooShort},
		{"short but otherwise strong", "Short1!", ReasonPasswordTooShort},
		{"too long", "Aa1!" + strings.Repeat("xy", 63), ReasonPasswordTooLong},
		{"repeated run despite all classes", "Aaa1111!", ReasonPasswordRepeated},
		{"repeated letters", "aaaaaaaA!", ReasonPasswordRepeated},
		{"lowercase only", "password", ReasonPasswordNoUpper},
		{"no uppercase", "pass1234!", ReasonPasswordNoUpper},
		{"no uppercase long", "nouppercase1!", ReasonPasswordNoUpper},
		{"no lowercase", "PASSWORD1!", ReasonPasswordNoLower},
		{"no lowercase with digits", "PASS1234!", ReasonPasswordNoLower},
		{"no digit", "Password!", ReasonPasswordNoDigit},
		{"no digit or special", "Password", ReasonPasswordNoDigit},
		{"no special", "Password123", ReasonPasswordNoSpecial},
		{"no special long", "NoSpecialChar1", ReasonPasswordNoSpecial},
		{"non-ascii letters are not lowercase", "ÉÉÀ12345!", ReasonPasswordNoUpper},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			require.Error(t, err)

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, "password", ve.Field)
			assert.Equal(t, tt.reason, ve.Reason)
		})
	}
}

func TestValidatePassword_Accepts(t *testing.T) {
	for _, pw := range []string{
		"Secure*1234",
		"Val1dP@ssword!",
		"Str0ng#PassW0rd",
		"MyTestP@ss123",
		"Aa1!" + strings.Repeat("xy", 62),
	} {
		assert.NoError(t, ValidatePassword(pw), pw)
	}
}

func TestValidatePassword_LengthCountsCharacters(t *testing.T) {
	// 7 characters, 10 bytes.
	assert.Error(t, ValidatePassword("Ab1!ééé"))
	// 8 characters with a two-byte rune.
	assert.NoError(t, ValidatePassword("Ab1!xyzé"))
}

func TestHasRepeatedRun(t *testing.T) {
	assert.False(t, hasRepeatedRun(""))
	assert.False(t, hasRepeatedRun("aabbaa"))
	assert.True(t, hasRepeatedRun("xaaa"))
	assert.True(t, hasRepeatedRun("111x"))
	assert.True(t, hasRepeatedRun("ééé"))
	assert.False(t, hasRepeatedRun("a\n\n\nb"))
}
