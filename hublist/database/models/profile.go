package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	TierFree     = "free"
	TierGold     = "gold"
	TierPlatinum = "platinum"
	TierPremium  = "premium"
)

// Profile is a directory user account. DiscordID is empty until the user
// links their Discord account; several features (bumping in particular)
// require the link.
type Profile struct {
	bun.BaseModel `bun:"table:profiles,alias:p"`

	ID               int64  `bun:"id,pk,autoincrement" json:"id"`
	DiscordID        string `bun:"discord_id,nullzero" json:"discord_id,omitempty"`
	Username         string `bun:"username,notnull" json:"username"`
	AvatarURL        string `bun:"avatar_url" json:"avatar_url"`
	Bio              string `bun:"bio" json:"bio"`
	SubscriptionTier string `bun:"subscription_tier,notnull,default:'free'" json:"subscription_tier"`
	IsAdmin          bool   `bun:"is_admin,notnull,default:false" json:"is_admin"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// HasLinkedDiscord reports whether the profile has a linked Discord account.
func (p *Profile) HasLinkedDiscord() bool {
	return p.DiscordID != ""
}
