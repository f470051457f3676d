package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Review is a user rating of a listing, one per (listing, author) pair.
type Review struct {
	bun.BaseModel `bun:"table:reviews,alias:r"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	ListingID int64     `bun:"listing_id,notnull" json:"listing_id"`
	AuthorID  int64     `bun:"author_id,notnull" json:"author_id"`
	Rating    int       `bun:"rating,notnull" json:"rating"`
	Comment   string    `bun:"comment" json:"comment"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
