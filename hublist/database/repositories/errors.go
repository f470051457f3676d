package repositories

import "errors"

// IsNotFound reports whether err is any repository not-found error,
// wrapped or not.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrListingNotFound) ||
		errors.Is(err, ErrProfileNotFound) ||
		errors.Is(err, ErrReviewNotFound) ||
		errors.Is(err, ErrFollowNotFound)
}
