package bump

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrAuthenticationRequired means no acting user was supplied.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrExternalIdentityRequired means the acting user has no linked Discord
	// account. The cooldown key is the linked Discord ID, so unlinked accounts
	// cannot bump at all.
	ErrExternalIdentityRequired = errors.New("linked Discord account required")

	// ErrListingNotEligible means the listing is not active.
	ErrListingNotEligible = errors.New("listing is not eligible for bumping")
)

// CooldownActiveError is returned when the (user, listing) pair is still
// within its cooldown window.
type CooldownActiveError struct {
	Remaining time.Duration
}

func (e *CooldownActiveError) Error() string {
	return fmt.Sprintf("bump cooldown active, %s remaining", FormatWait(e.Remaining))
}
