package listings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hublist/hublist/hublist/bump"
	"github.com/hublist/hublist/hublist/database/models"
	"github.com/hublist/hublist/hublist/utils"
)

type fakeListingRepo struct {
	listings []*models.Listing
	calls    int
}

func (f *fakeListingRepo) Create(context.Context, *models.Listing) error { return nil }

func (f *fakeListingRepo) GetByID(_ context.Context, id int64) (*models.Listing, error) {
	for _, l := range f.listings {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, errors.New("listing not found")
}

func (f *fakeListingRepo) GetByOwnerID(context.Context, int64) ([]*models.Listing, error) {
	return nil, nil
}

func (f *fakeListingRepo) GetActive(context.Context) ([]*models.Listing, error) {
	f.calls++
	var active []*models.Listing
	for _, l := range f.listings {
		if l.IsActive() {
			active = append(active, l)
		}
	}
	return active, nil
}

func (f *fakeListingRepo) GetActiveByType(ctx context.Context, listingType models.ListingType) ([]*models.Listing, error) {
	active, _ := f.GetActive(ctx)
	var out []*models.Listing
	for _, l := range active {
		if l.Type == listingType {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeListingRepo) GetPending(context.Context) ([]*models.Listing, error) { return nil, nil }
func (f *fakeListingRepo) Update(context.Context, *models.Listing) error         { return nil }
func (f *fakeListingRepo) UpdateStatus(context.Context, int64, models.ListingStatus) error {
	return nil
}
func (f *fakeListingRepo) SetFeatured(context.Context, int64, bool) error { return nil }
func (f *fakeListingRepo) Delete(context.Context, int64, int64) error     { return nil }

type fakeStore struct {
	listings map[int64]*models.Listing
	profile  *models.Profile
	lastBump map[int64]time.Time
}

func (f *fakeStore) GetListing(_ context.Context, id int64) (*models.Listing, error) {
	l, ok := f.listings[id]
	if !ok {
		return nil, errors.New("listing not found")
	}
	return l, nil
}

func (f *fakeStore) GetProfile(context.Context, int64) (*models.Profile, error) {
	return f.profile, nil
}

func (f *fakeStore) GetCooldown(_ context.Context, _ string, listingID int64) (*models.BumpCooldown, error) {
	last, ok := f.lastBump[listingID]
	if !ok {
		return nil, nil
	}
	return &models.BumpCooldown{ListingID: listingID, LastBumpAt: last}, nil
}

func (f *fakeStore) ApplyBump(context.Context, bump.ApplyRequest) (int, error) {
	return 0, errors.New("not implemented")
}

func directoryListings() []*models.Listing {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]*models.Listing, 0, 30)
	for i := 1; i <= 30; i++ {
		l := &models.Listing{
			ID:          int64(i),
			Name:        "Community",
			Type:        models.ListingTypeServer,
			Status:      models.ListingStatusActive,
			MemberCount: i * 10,
			BumpCount:   i,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		}
		out = append(out, l)
	}
	// One non-active entry that must never appear
	out = append(out, &models.Listing{ID: 99, Name: "Hidden", Status: models.ListingStatusPending})
	return out
}

func TestService_GetActiveListings(t *testing.T) {
	repo := &fakeListingRepo{listings: directoryListings()}
	s := NewService(repo, nil)

	page, totalPages, err := s.GetActiveListings(context.Background(), utils.ListingFilters{SortBy: utils.SortByMostBumped}, 0)
	if err != nil {
		t.Fatalf("GetActiveListings() unexpected error: %v", err)
	}
	if len(page) != 12 {
		t.Errorf("page size = %d, want 12", len(page))
	}
	if totalPages != 3 {
		t.Errorf("totalPages = %d, want 3", totalPages)
	}
	if page[0].BumpCount != 30 {
		t.Errorf("first listing bump count = %d, want 30", page[0].BumpCount)
	}
	for _, l := range page {
		if !l.IsActive() {
			t.Errorf("non-active listing %d in results", l.ID)
		}
	}

	// Second call with the same filters is served from cache.
	if _, _, err := s.GetActiveListings(context.Background(), utils.ListingFilters{SortBy: utils.SortByMostBumped}, 1); err != nil {
		t.Fatalf("cached GetActiveListings() unexpected error: %v", err)
	}
	if repo.calls != 1 {
		t.Errorf("repo calls = %d, want 1 (second page should hit the cache)", repo.calls)
	}

	// Different filters miss the cache.
	if _, _, err := s.GetActiveListings(context.Background(), utils.ListingFilters{}, 0); err != nil {
		t.Fatalf("GetActiveListings() unexpected error: %v", err)
	}
	if repo.calls != 2 {
		t.Errorf("repo calls = %d, want 2", repo.calls)
	}

	s.InvalidateCache()
	if _, _, err := s.GetActiveListings(context.Background(), utils.ListingFilters{}, 0); err != nil {
		t.Fatalf("GetActiveListings() unexpected error: %v", err)
	}
	if repo.calls != 3 {
		t.Errorf("repo calls after purge = %d, want 3", repo.calls)
	}
}

func TestService_BumpVisibleInNextQuery(t *testing.T) {
	listing := &models.Listing{
		ID:        1,
		Name:      "Community",
		Type:      models.ListingTypeServer,
		Status:    models.ListingStatusActive,
		BumpCount: 3,
	}
	repo := &fakeListingRepo{listings: []*models.Listing{listing}}
	s := NewService(repo, nil)

	before, err := s.GetFilteredListings(context.Background(), utils.ListingFilters{})
	if err != nil {
		t.Fatalf("GetFilteredListings() unexpected error: %v", err)
	}
	if before[0].BumpCount != 3 {
		t.Fatalf("bump count before = %d, want 3", before[0].BumpCount)
	}

	// A successful bump writes the new count and purges the filter cache.
	// The next query must hit the repository and see the updated row.
	listing.BumpCount = 4
	s.InvalidateCache()

	after, err := s.GetFilteredListings(context.Background(), utils.ListingFilters{})
	if err != nil {
		t.Fatalf("GetFilteredListings() unexpected error: %v", err)
	}
	if after[0].BumpCount != 4 {
		t.Errorf("bump count after invalidation = %d, want 4", after[0].BumpCount)
	}
	if repo.calls != 2 {
		t.Errorf("repo calls = %d, want 2 (invalidation must force a re-query)", repo.calls)
	}
}

func TestService_AnnotateEligibility(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	active := &models.Listing{ID: 1, Status: models.ListingStatusActive}
	onCooldown := &models.Listing{ID: 2, Status: models.ListingStatusActive}
	suspended := &models.Listing{ID: 3, Status: models.ListingStatusSuspended}

	store := &fakeStore{
		listings: map[int64]*models.Listing{1: active, 2: onCooldown, 3: suspended},
		profile:  &models.Profile{ID: 7, DiscordID: "123", SubscriptionTier: models.TierFree},
		lastBump: map[int64]time.Time{2: now.Add(-time.Hour)},
	}
	bumper := bump.NewService(store, bump.NopNotifier{}, bump.WithClock(func() time.Time { return now }))
	s := NewService(&fakeListingRepo{}, bumper)

	statuses, err := s.AnnotateEligibility(context.Background(), 7, []*models.Listing{active, onCooldown, suspended})
	if err != nil {
		t.Fatalf("AnnotateEligibility() unexpected error: %v", err)
	}

	if !statuses[0].Eligible {
		t.Error("fresh listing should be eligible")
	}
	if statuses[1].Eligible {
		t.Error("listing on cooldown should not be eligible")
	}
	if got := bump.FormatWait(statuses[1].Remaining); got != "5h 0m" {
		t.Errorf("remaining = %q, want %q", got, "5h 0m")
	}
	if statuses[2].Eligible {
		t.Error("suspended listing should not be eligible")
	}
}
