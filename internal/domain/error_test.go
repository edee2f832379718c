package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"domain error", ErrCartNotFound, ENOTFOUND},
		{"wrapped domain error", fmt.Errorf("context: %w", ErrInvalidQuantity), EINVALID},
		{"plain error", errors.New("boom"), EINTERNAL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.want {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"domain error", ErrDuplicateItem, "Product is already in the cart; update its count instead"},
		{"internal hides cause", Internal(errors.New("pq: timeout"), "cart.get", "failed"), "An internal error occurred. Please try again later."},
		{"plain error hidden", errors.New("pq: timeout"), "An internal error occurred. Please try again later."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.want {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	inner := errors.New("row not found")
	err := &Error{Code: ENOTFOUND, Message: "Cart not found", Op: "cart.get", Err: inner}

	if got, want := err.Error(), "cart.get: Cart not found: row not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is() does not see the wrapped error")
	}
}

func TestIsCode(t *testing.T) {
	if !IsCode(ErrCartNotFound, ENOTFOUND) {
		t.Error("IsCode(ErrCartNotFound, ENOTFOUND) = false")
	}
	if IsCode(ErrCartNotFound, EINVALID) {
		t.Error("IsCode(ErrCartNotFound, EINVALID) = true")
	}
}
