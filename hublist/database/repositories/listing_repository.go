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
	ErrListingNotFound = errors.New("listing not found")
	ErrNotListingOwner = errors.New("user does not own this listing")
)

type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id int64) (*models.Listing, error)
	GetByOwnerID(ctx context.Context, ownerID int64) ([]*models.Listing, error)
	GetActive(ctx context.Context) ([]*models.Listing, error)
	GetActiveByType(ctx context.Context, listingType models.ListingType) ([]*models.Listing, error)
	GetPending(ctx context.Context) ([]*models.Listing, error)
	Update(ctx context.Context, listing *models.Listing) error
	UpdateStatus(ctx context.Context, id int64, status models.ListingStatus) error
	SetFeatured(ctx context.Context, id int64, featured bool) error
	Delete(ctx context.Context, id int64, ownerID int64) error
}

// listingRepository does no caching of its own; the listings service caches
// filtered result sets and invalidates after every directory write, bumps
// included.
type listingRepository struct {
	db *bun.DB
}

func NewListingRepository(db *bun.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) error {
	listing.Status = models.ListingStatusPending
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = time.Now()

	_, err := r.db.NewInsert().Model(listing).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

func (r *listingRepository) GetByID(ctx context.Context, id int64) (*models.Listing, error) {
	listing := new(models.Listing)
	err := r.db.NewSelect().
		Model(listing).
		Where("id = ?", id).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, err
	}
	return listing, nil
}

func (r *listingRepository) GetByOwnerID(ctx context.Context, ownerID int64) ([]*models.Listing, error) {
	var listings []*models.Listing
	err := r.db.NewSelect().
		Model(&listings).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) GetActive(ctx context.Context) ([]*models.Listing, error) {
	var listings []*models.Listing
	err := r.db.NewSelect().
		Model(&listings).
		Where("status = ?", models.ListingStatusActive).
		Order("last_bumped_at DESC NULLS LAST").
		Scan(ctx)

	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) GetActiveByType(ctx context.Context, listingType models.ListingType) ([]*models.Listing, error) {
	var listings []*models.Listing
	err := r.db.NewSelect().
		Model(&listings).
		Where("status = ?", models.ListingStatusActive).
		Where("type = ?", listingType).
		Order("last_bumped_at DESC NULLS LAST").
		Scan(ctx)

	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) GetPending(ctx context.Context) ([]*models.Listing, error) {
	var listings []*models.Listing
	err := r.db.NewSelect().
		Model(&listings).
		Where("status = ?", models.ListingStatusPending).
		Order("created_at ASC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) Update(ctx context.Context, listing *models.Listing) error {
	listing.UpdatedAt = time.Now()

	result, err := r.db.NewUpdate().
		Model(listing).
		Column("name", "description", "invite_url", "icon_url", "banner_url", "type", "member_count", "updated_at").
		Where("id = ?", listing.ID).
		Where("owner_id = ?", listing.OwnerID).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotListingOwner
	}
	return nil
}

func (r *listingRepository) UpdateStatus(ctx context.Context, id int64, status models.ListingStatus) error {
	result, err := r.db.NewUpdate().
		Model((*models.Listing)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to update listing status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (r *listingRepository) SetFeatured(ctx context.Context, id int64, featured bool) error {
	result, err := r.db.NewUpdate().
		Model((*models.Listing)(nil)).
		Set("featured = ?", featured).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to set featured flag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (r *listingRepository) Delete(ctx context.Context, id int64, ownerID int64) error {
	result, err := r.db.NewDelete().
		Model((*models.Listing)(nil)).
		Where("id = ?", id).
		Where("owner_id = ?", ownerID).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotListingOwner
	}
	return nil
}
