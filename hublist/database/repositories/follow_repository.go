package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hublist/hublist/hublist/database/models"
	"github.com/uptrace/bun"
)

var (
	ErrFollowNotFound = errors.New("follow not found")
	ErrSelfFollow     = errors.New("cannot follow yourself")
)

type FollowRepository interface {
	Follow(ctx context.Context, followerID, followeeID int64) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error
	IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error)
	GetFollowers(ctx context.Context, followeeID int64) ([]*models.Profile, error)
	GetFollowing(ctx context.Context, followerID int64) ([]*models.Profile, error)
	CountFollowers(ctx context.Context, followeeID int64) (int, error)
}

type followRepository struct {
	db *bun.DB
}

func NewFollowRepository(db *bun.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Follow(ctx context.Context, followerID, followeeID int64) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}

	follow := &models.Follow{
		FollowerID: followerID,
		FolloweeID: followeeID,
		CreatedAt:  time.Now(),
	}

	// Following twice is a no-op
	_, err := r.db.NewInsert().
		Model(follow).
		On("CONFLICT (follower_id, followee_id) DO NOTHING").
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to create follow: %w", err)
	}
	return nil
}

func (r *followRepository) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	result, err := r.db.NewDelete().
		Model((*models.Follow)(nil)).
		Where("follower_id = ?", followerID).
		Where("followee_id = ?", followeeID).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrFollowNotFound
	}
	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	return r.db.NewSelect().
		Model((*models.Follow)(nil)).
		Where("follower_id = ?", followerID).
		Where("followee_id = ?", followeeID).
		Exists(ctx)
}

func (r *followRepository) GetFollowers(ctx context.Context, followeeID int64) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := r.db.NewSelect().
		Model(&profiles).
		Join("JOIN follows AS f ON f.follower_id = p.id").
		Where("f.followee_id = ?", followeeID).
		Order("f.created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *followRepository) GetFollowing(ctx context.Context, followerID int64) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := r.db.NewSelect().
		Model(&profiles).
		Join("JOIN follows AS f ON f.followee_id = p.id").
		Where("f.follower_id = ?", followerID).
		Order("f.created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, followeeID int64) (int, error) {
	count, err := r.db.NewSelect().
		Model((*models.Follow)(nil)).
		Where("followee_id = ?", followeeID).
		Count(ctx)

	if err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return count, nil
}
