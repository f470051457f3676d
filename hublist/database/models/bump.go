package models

import (
	"time"

	"github.com/uptrace/bun"
)

const BumpTypeManual = "manual"

// Bump is an append-only audit record of a successful bump.
type Bump struct {
	bun.BaseModel `bun:"table:bumps,alias:b"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	ListingID int64     `bun:"listing_id,notnull" json:"listing_id"`
	UserID    int64     `bun:"user_id,notnull" json:"user_id"`
	BumpType  string    `bun:"bump_type,notnull" json:"bump_type"`
	BumpedAt  time.Time `bun:"bumped_at,notnull" json:"bumped_at"`
}

// BumpCooldown tracks the most recent bump per (linked Discord account,
// listing) pair. The pair is unique; every new bump overwrites the row.
// The key is the user's linked Discord ID, not the internal account id:
// users without a linked Discord account cannot bump at all.
type BumpCooldown struct {
	bun.BaseModel `bun:"table:bump_cooldowns,alias:bc"`

	ID            int64     `bun:"id,pk,autoincrement"`
	UserDiscordID string    `bun:"user_discord_id,notnull"`
	ListingID     int64     `bun:"listing_id,notnull"`
	LastBumpAt    time.Time `bun:"last_bump_at,notnull"`
}
