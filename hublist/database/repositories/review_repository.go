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

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
)

type ReviewRepository interface {
	Upsert(ctx context.Context, review *models.Review) error
	GetByListing(ctx context.Context, listingID int64, limit, offset int) ([]*models.Review, error)
	GetAverageRating(ctx context.Context, listingID int64) (float64, int, error)
	Delete(ctx context.Context, listingID, authorID int64) error
}

type reviewRepository struct {
	db *bun.DB
}

func NewReviewRepository(db *bun.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Upsert writes the author's review for a listing, replacing any previous
// one. One review per (listing, author) pair.
func (r *reviewRepository) Upsert(ctx context.Context, review *models.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return ErrInvalidRating
	}

	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(review).
		On("CONFLICT (listing_id, author_id) DO UPDATE").
		Set("rating = EXCLUDED.rating").
		Set("comment = EXCLUDED.comment").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to upsert review: %w", err)
	}
	return nil
}

func (r *reviewRepository) GetByListing(ctx context.Context, listingID int64, limit, offset int) ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.db.NewSelect().
		Model(&reviews).
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)

	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) GetAverageRating(ctx context.Context, listingID int64) (float64, int, error) {
	var result struct {
		Average sql.NullFloat64
		Count   int
	}

	err := r.db.NewSelect().
		Model((*models.Review)(nil)).
		ColumnExpr("AVG(rating) AS average").
		ColumnExpr("COUNT(*) AS count").
		Where("listing_id = ?", listingID).
		Scan(ctx, &result.Average, &result.Count)

	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	return result.Average.Float64, result.Count, nil
}

func (r *reviewRepository) Delete(ctx context.Context, listingID, authorID int64) error {
	result, err := r.db.NewDelete().
		Model((*models.Review)(nil)).
		Where("listing_id = ?", listingID).
		Where("author_id = ?", authorID).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}
