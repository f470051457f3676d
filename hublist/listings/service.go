package listings

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/hublist/hublist/hublist/bump"
	"github.com/hublist/hublist/hublist/config"
	"github.com/hublist/hublist/hublist/database/models"
	"github.com/hublist/hublist/hublist/database/repositories"
	"github.com/hublist/hublist/hublist/utils"
	"golang.org/x/sync/errgroup"
)

// cachedResult is a filtered and sorted listing set with its fetch time.
type cachedResult struct {
	listings  []*models.Listing
	fetchedAt time.Time
}

// Service answers directory queries: active listings filtered, sorted and
// paginated, with an optional per-user bump eligibility annotation.
type Service struct {
	repo        repositories.ListingRepository
	bumper      *bump.Service
	cache       *lru.Cache
	cacheExpiry time.Duration
}

func NewService(repo repositories.ListingRepository, bumper *bump.Service) *Service {
	cache, _ := lru.New(config.CacheSize)
	return &Service{
		repo:        repo,
		bumper:      bumper,
		cache:       cache,
		cacheExpiry: config.CacheExpiration,
	}
}

func filterCacheKey(filters utils.ListingFilters) string {
	return fmt.Sprintf("%s|%s|%s|%t|%s",
		filters.Query, filters.Type, filters.MemberBucket, filters.Featured, filters.SortBy)
}

// GetFilteredListings returns the whole active directory for the given
// filters, sorted and cached per filter combination.
func (s *Service) GetFilteredListings(ctx context.Context, filters utils.ListingFilters) ([]*models.Listing, error) {
	key := filterCacheKey(filters)

	if entry, ok := s.cache.Get(key); ok {
		cached := entry.(cachedResult)
		if time.Since(cached.fetchedAt) < s.cacheExpiry {
			return cached.listings, nil
		}
		s.cache.Remove(key)
	}

	var (
		active []*models.Listing
		err    error
	)
	if filters.Type != "" {
		active, err = s.repo.GetActiveByType(ctx, models.ListingType(filters.Type))
	} else {
		active, err = s.repo.GetActive(ctx)
	}
	if err != nil {
		return nil, err
	}

	filtered := utils.ApplyFilters(active, filters)
	utils.SortListings(filtered, filters.SortBy)

	s.cache.Add(key, cachedResult{listings: filtered, fetchedAt: time.Now()})
	return filtered, nil
}

// GetActiveListings returns one page of the active directory for the given
// filters, plus the total page count.
func (s *Service) GetActiveListings(ctx context.Context, filters utils.ListingFilters, page int) ([]*models.Listing, int, error) {
	filtered, err := s.GetFilteredListings(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	result, totalPages := utils.PaginateListings(filtered, page, config.ListingsPerPage)
	return result, totalPages, nil
}

// GetListing returns a single listing by id.
func (s *Service) GetListing(ctx context.Context, id int64) (*models.Listing, error) {
	return s.repo.GetByID(ctx, id)
}

// AnnotateEligibility resolves the bump status of each listing for userID,
// in the input order. Listings the user cannot bump at all (not active, no
// linked Discord account) come back as ineligible with zero remaining wait.
func (s *Service) AnnotateEligibility(ctx context.Context, userID int64, listings []*models.Listing) ([]*bump.Status, error) {
	statuses := make([]*bump.Status, len(listings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.ParallelQueries)

	for i, listing := range listings {
		i, listing := i, listing
		g.Go(func() error {
			status, err := s.bumper.CheckBump(gctx, userID, listing.ID)
			if err != nil {
				if errors.Is(err, bump.ErrListingNotEligible) ||
					errors.Is(err, bump.ErrExternalIdentityRequired) ||
					errors.Is(err, bump.ErrAuthenticationRequired) {
					statuses[i] = &bump.Status{Eligible: false}
					return nil
				}
				return err
			}
			statuses[i] = status
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return statuses, nil
}

// InvalidateCache drops every cached filter result, called after writes that
// change the directory.
func (s *Service) InvalidateCache() {
	s.cache.Purge()
}
