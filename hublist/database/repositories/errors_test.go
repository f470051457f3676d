package repositories

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"listing not found", ErrListingNotFound, true},
		{"profile not found wrapped", fmt.Errorf("loading profile: %w", ErrProfileNotFound), true},
		{"review not found", ErrReviewNotFound, true},
		{"follow not found", ErrFollowNotFound, true},
		{"ownership error", ErrNotListingOwner, false},
		{"self follow", ErrSelfFollow, false},
		{"invalid rating", ErrInvalidRating, false},
		{"unrelated error", errors.New("connection refused"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.want {
				t.Errorf("IsNotFound(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
