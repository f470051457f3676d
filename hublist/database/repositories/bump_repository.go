package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hublist/hublist/hublist/bump"
	"github.com/hublist/hublist/hublist/database/models"
	"github.com/uptrace/bun"
)

// BumpRepository exposes bump history on top of the bump.Store surface the
// bump service needs.
type BumpRepository interface {
	bump.Store
	GetListingBumps(ctx context.Context, listingID int64, limit int) ([]*models.Bump, error)
	CountBumpsInPeriod(ctx context.Context, userID int64, since time.Time) (int, error)
}

type bumpRepository struct {
	db *bun.DB
}

func NewBumpRepository(db *bun.DB) BumpRepository {
	return &bumpRepository{db: db}
}

func (r *bumpRepository) GetListing(ctx context.Context, listingID int64) (*models.Listing, error) {
	listing := new(models.Listing)
	err := r.db.NewSelect().
		Model(listing).
		Where("id = ?", listingID).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, err
	}
	return listing, nil
}

func (r *bumpRepository) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	profile := new(models.Profile)
	err := r.db.NewSelect().
		Model(profile).
		Where("id = ?", userID).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// GetCooldown returns nil when the pair has never bumped.
func (r *bumpRepository) GetCooldown(ctx context.Context, userDiscordID string, listingID int64) (*models.BumpCooldown, error) {
	row := new(models.BumpCooldown)
	err := r.db.NewSelect().
		Model(row).
		Where("user_discord_id = ?", userDiscordID).
		Where("listing_id = ?", listingID).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// ApplyBump records a bump atomically: cooldown upsert, listing update and
// audit insert commit or roll back together. The cooldown row is locked and
// re-checked inside the transaction so two concurrent attempts from the same
// (user, listing) pair cannot both pass the eligibility check.
func (r *bumpRepository) ApplyBump(ctx context.Context, req bump.ApplyRequest) (int, error) {
	var newCount int

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		existing := new(models.BumpCooldown)
		err := tx.NewSelect().
			Model(existing).
			Where("user_discord_id = ?", req.UserDiscordID).
			Where("listing_id = ?", req.ListingID).
			For("UPDATE").
			Scan(ctx)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			// First bump by this pair
		case err != nil:
			return fmt.Errorf("failed to lock cooldown row: %w", err)
		default:
			if elapsed := req.Now.Sub(existing.LastBumpAt); elapsed < req.Cooldown {
				return &bump.CooldownActiveError{Remaining: req.Cooldown - elapsed}
			}
		}

		cooldown := &models.BumpCooldown{
			UserDiscordID: req.UserDiscordID,
			ListingID:     req.ListingID,
			LastBumpAt:    req.Now,
		}
		_, err = tx.NewInsert().
			Model(cooldown).
			On("CONFLICT (user_discord_id, listing_id) DO UPDATE").
			Set("last_bump_at = EXCLUDED.last_bump_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to upsert cooldown: %w", err)
		}

		err = tx.NewUpdate().
			Model((*models.Listing)(nil)).
			Set("bump_count = bump_count + 1").
			Set("last_bumped_at = ?", req.Now).
			Set("updated_at = ?", req.Now).
			Where("id = ?", req.ListingID).
			Returning("bump_count").
			Scan(ctx, &newCount)
		if err != nil {
			return fmt.Errorf("failed to update listing: %w", err)
		}

		record := &models.Bump{
			ListingID: req.ListingID,
			UserID:    req.UserID,
			BumpType:  models.BumpTypeManual,
			BumpedAt:  req.Now,
		}
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert bump record: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return newCount, nil
}

func (r *bumpRepository) GetListingBumps(ctx context.Context, listingID int64, limit int) ([]*models.Bump, error) {
	var bumps []*models.Bump
	err := r.db.NewSelect().
		Model(&bumps).
		Where("listing_id = ?", listingID).
		Order("bumped_at DESC").
		Limit(limit).
		Scan(ctx)

	if err != nil {
		return nil, err
	}
	return bumps, nil
}

func (r *bumpRepository) CountBumpsInPeriod(ctx context.Context, userID int64, since time.Time) (int, error) {
	count, err := r.db.NewSelect().
		Model((*models.Bump)(nil)).
		Where("user_id = ?", userID).
		Where("bumped_at > ?", since).
		Count(ctx)

	if err != nil {
		return 0, fmt.Errorf("failed to count bumps: %w", err)
	}
	return count, nil
}
