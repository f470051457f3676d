package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Follow links a follower to a followee, one row per pair.
type Follow struct {
	bun.BaseModel `bun:"table:follows,alias:f"`

	ID         int64     `bun:"id,pk,autoincrement" json:"id"`
	FollowerID int64     `bun:"follower_id,notnull" json:"follower_id"`
	FolloweeID int64     `bun:"followee_id,notnull" json:"followee_id"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
