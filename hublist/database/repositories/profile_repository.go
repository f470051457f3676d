package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hublist/hublist/hublist/database/models"
	"github.com/uptrace/bun"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Profile, error)
	GetByDiscordID(ctx context.Context, discordID string) (*models.Profile, error)
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)
	GetOrCreateByDiscord(ctx context.Context, discordID, username, avatarURL string) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	LinkDiscord(ctx context.Context, id int64, discordID string) error
	SetTier(ctx context.Context, id int64, tier string) error
	SetAdmin(ctx context.Context, id int64, isAdmin bool) error
}

type profileRepository struct {
	db *bun.DB
}

func NewProfileRepository(db *bun.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	profile := new(models.Profile)
	err := r.db.NewSelect().
		Model(profile).
		Where("id = ?", id).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) GetByDiscordID(ctx context.Context, discordID string) (*models.Profile, error) {
	profile := new(models.Profile)
	err := r.db.NewSelect().
		Model(profile).
		Where("discord_id = ?", discordID).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	profile := new(models.Profile)
	err := r.db.NewSelect().
		Model(profile).
		Where("username = ?", username).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// GetOrCreateByDiscord upserts the profile on sign-in, refreshing the
// username and avatar Discord reports.
func (r *profileRepository) GetOrCreateByDiscord(ctx context.Context, discordID, username, avatarURL string) (*models.Profile, error) {
	profile := &models.Profile{
		DiscordID:        discordID,
		Username:         username,
		AvatarURL:        avatarURL,
		SubscriptionTier: models.TierFree,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	_, err := r.db.NewInsert().
		Model(profile).
		On("CONFLICT (discord_id) WHERE discord_id IS NOT NULL DO UPDATE").
		Set("username = EXCLUDED.username").
		Set("avatar_url = EXCLUDED.avatar_url").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("*").
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	profile.UpdatedAt = time.Now()

	result, err := r.db.NewUpdate().
		Model(profile).
		Column("username", "avatar_url", "bio", "updated_at").
		Where("id = ?", profile.ID).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) LinkDiscord(ctx context.Context, id int64, discordID string) error {
	result, err := r.db.NewUpdate().
		Model((*models.Profile)(nil)).
		Set("discord_id = ?", discordID).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to link Discord account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) SetTier(ctx context.Context, id int64, tier string) error {
	result, err := r.db.NewUpdate().
		Model((*models.Profile)(nil)).
		Set("subscription_tier = ?", tier).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to set subscription tier: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) SetAdmin(ctx context.Context, id int64, isAdmin bool) error {
	result, err := r.db.NewUpdate().
		Model((*models.Profile)(nil)).
		Set("is_admin = ?", isAdmin).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to set admin flag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
