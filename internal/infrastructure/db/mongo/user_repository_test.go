package mongo

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/user-management/internal/core/domain"
)

func duplicateKey(index string) error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{
		Code:    11000,
		Message: "E11000 duplicate key error collection: app.users index: " + index + "_1 dup key",
	}}}
}

func TestMapWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"duplicate email", duplicateKey("email"), domain.ErrUserExists},
		{"duplicate nickname", duplicateKey("nickname"), domain.ErrNicknameTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapWriteError("insert user", tt.err); !errors.Is(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMapWriteError_WrapsOtherErrors(t *testing.T) {
	cause := errors.New("connection reset")

	got := mapWriteError("update user", cause)
	if !errors.Is(got, cause) {
		t.Fatalf("expected wrapped cause, got %v", got)
	}
	if got.Error() != "update user: connection reset" {
		t.Fatalf("unexpected message: %q", got.Error())
	}
}
