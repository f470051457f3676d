package models

import (
	"time"

	"github.com/uptrace/bun"
)

type ListingType string

const (
	ListingTypeServer ListingType = "server"
	ListingTypeBot    ListingType = "bot"
)

type ListingStatus string

const (
	ListingStatusPending   ListingStatus = "pending"
	ListingStatusActive    ListingStatus = "active"
	ListingStatusSuspended ListingStatus = "suspended"
)

// Listing is a directory entry for a Discord server or bot.
// Only active listings are shown publicly or may be bumped.
type Listing struct {
	bun.BaseModel `bun:"table:listings,alias:l"`

	ID           int64         `bun:"id,pk,autoincrement" json:"id"`
	OwnerID      int64         `bun:"owner_id,notnull" json:"owner_id"`
	Name         string        `bun:"name,notnull" json:"name"`
	Description  string        `bun:"description" json:"description"`
	InviteURL    string        `bun:"invite_url,notnull" json:"invite_url"`
	IconURL      string        `bun:"icon_url" json:"icon_url"`
	BannerURL    string        `bun:"banner_url" json:"banner_url"`
	Type         ListingType   `bun:"type,notnull" json:"type"`
	Status       ListingStatus `bun:"status,notnull,default:'pending'" json:"status"`
	Featured     bool          `bun:"featured,notnull,default:false" json:"featured"`
	MemberCount  int           `bun:"member_count,notnull,default:0" json:"member_count"`
	BumpCount    int           `bun:"bump_count,notnull,default:0" json:"bump_count"`
	LastBumpedAt *time.Time    `bun:"last_bumped_at" json:"last_bumped_at,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// IsActive reports whether the listing is publicly visible and bumpable.
func (l *Listing) IsActive() bool {
	return l.Status == ListingStatusActive
}
