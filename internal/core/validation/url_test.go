package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/user-management/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func TestValidateURL(t *testing.T) {
	tests := []struct {
		value   *string
		wantErr bool
	}{
		{nil, false},
		{strPtr("https://example.com/x"), false},
		{strPtr("http://linkedin.com/in/johndoe"), false},
		{strPtr("https://github.com/johndoe?tab=repositories"), false},
		{strPtr("not a url"), true},
		{strPtr(""), true},
		{strPtr("ftp://example.com"), true},
		{strPtr("https:///example.com"), true},
		{strPtr("https://.example.com"), true},
		{strPtr("https://example.com/has space"), true},
	}

	for _, tt := range tests {
		name := "<nil>"
		if tt.value != nil {
			name = *tt.value
		}
		t.Run(name, func(t *testing.T) {
			err := ValidateURL("github_profile_url", tt.value)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, "github_profile_url", ve.Field)
			assert.Equal(t, "Invalid URL format", ve.Reason)
		})
	}
}
