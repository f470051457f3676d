package bump

import (
	"fmt"
	"time"

	"github.com/hublist/hublist/hublist/config"
	"github.com/hublist/hublist/hublist/database/models"
)

// cooldownByTier is the single source of truth for tier cooldowns.
// Gold sits between free and platinum; see DESIGN.md for the decision record.
var cooldownByTier = map[string]time.Duration{
	models.TierFree:     config.BumpCooldownFree,
	models.TierGold:     config.BumpCooldownGold,
	models.TierPlatinum: config.BumpCooldownPlatinum,
	models.TierPremium:  config.BumpCooldownPremium,
}

// CooldownDuration returns the bump cooldown for a subscription tier.
// Unknown tiers fall back to the free cooldown.
func CooldownDuration(tier string) time.Duration {
	if d, ok := cooldownByTier[tier]; ok {
		return d
	}
	return config.BumpCooldownFree
}

// CanBump reports whether a bump is allowed given the last bump time for a
// (user, listing) pair. A nil lastBumpAt means the pair has never bumped and
// is always eligible. When not eligible, the remaining wait is returned.
func CanBump(lastBumpAt *time.Time, tier string, now time.Time) (bool, time.Duration) {
	if lastBumpAt == nil {
		return true, 0
	}

	cooldown := CooldownDuration(tier)
	elapsed := now.Sub(*lastBumpAt)
	if elapsed >= cooldown {
		return true, 0
	}
	return false, cooldown - elapsed
}

// FormatWait renders a remaining wait as whole hours and minutes,
// flooring both components. 125 minutes becomes "2h 5m".
func FormatWait(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
