package bump_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hublist/hublist/hublist/bump"
	"github.com/hublist/hublist/hublist/bump/mock"
	"github.com/hublist/hublist/hublist/database/models"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func activeListing() *models.Listing {
	return &models.Listing{
		ID:      1,
		OwnerID: 42,
		Name:    "Gopher Hangout",
		Type:    models.ListingTypeServer,
		Status:  models.ListingStatusActive,
	}
}

func linkedProfile(tier string) *models.Profile {
	return &models.Profile{
		ID:               7,
		DiscordID:        "123456789012345678",
		Username:         "gopher",
		SubscriptionTier: tier,
	}
}

func Test_Service_PerformBump(t *testing.T) {
	tests := []struct {
		name      string
		userID    int64
		setup     func(store *mock.MockStore)
		wantCount int
		wantErr   error
	}{
		{
			name:    "anonymous user",
			userID:  0,
			setup:   func(store *mock.MockStore) {},
			wantErr: bump.ErrAuthenticationRequired,
		},
		{
			name:   "pending listing",
			userID: 7,
			setup: func(store *mock.MockStore) {
				l := activeListing()
				l.Status = models.ListingStatusPending
				store.EXPECT().GetListing(gomock.Any(), int64(1)).Return(l, nil)
			},
			wantErr: bump.ErrListingNotEligible,
		},
		{
			name:   "suspended listing",
			userID: 7,
			setup: func(store *mock.MockStore) {
				l := activeListing()
				l.Status = models.ListingStatusSuspended
				store.EXPECT().GetListing(gomock.Any(), int64(1)).Return(l, nil)
			},
			wantErr: bump.ErrListingNotEligible,
		},
		{
			name:   "no linked discord account",
			userID: 7,
			setup: func(store *mock.MockStore) {
				p := linkedProfile(models.TierFree)
				p.DiscordID = ""
				store.EXPECT().GetListing(gomock.Any(), int64(1)).Return(activeListing(), nil)
				store.EXPECT().GetProfile(gomock.Any(), int64(7)).Return(p, nil)
			},
			wantErr: bump.ErrExternalIdentityRequired,
		},
		{
			name:   "first bump succeeds",
			userID: 7,
			setup: func(store *mock.MockStore) {
				store.EXPECT().GetListing(gomock.Any(), int64(1)).Return(activeListing(), nil)
				store.EXPECT().GetProfile(gomock.Any(), int64(7)).Return(linkedProfile(models.TierFree), nil)
				store.EXPECT().GetCooldown(gomock.Any(), "123456789012345678", int64(1)).Return(nil, nil)
				store.EXPECT().ApplyBump(gomock.Any(), bump.ApplyRequest{
					UserID:        7,
					UserDiscordID: "123456789012345678",
					ListingID:     1,
					Cooldown:      6 * time.Hour,
					Now:           testNow,
				}).Return(1, nil)
			},
			wantCount: 1,
		},
		{
			name:   "cooldown active",
			userID: 7,
			setup: func(store *mock.MockStore) {
				last := testNow.Add(-time.Hour)
				store.EXPECT().GetListing(gomock.Any(), int64(1)).Return(activeListing(), nil)
				store.EXPECT().GetProfile(gomock.Any(), int64(7)).Return(linkedProfile(models.TierFree), nil)
				store.EXPECT().GetCooldown(gomock.Any(), "123456789012345678", int64(1)).
					Return(&models.BumpCooldown{UserDiscordID: "123456789012345678", ListingID: 1, LastBumpAt: last}, nil)
			},
			wantErr: &bump.CooldownActiveError{Remaining: 5 * time.Hour},
		},
		{
			name:   "store failure propagates",
			userID: 7,
			setup: func(store *mock.MockStore) {
				store.EXPECT().GetListing(gomock.Any(), int64(1)).Return(activeListing(), nil)
				store.EXPECT().GetProfile(gomock.Any(), int64(7)).Return(linkedProfile(models.TierPremium), nil)
				store.EXPECT().GetCooldown(gomock.Any(), "123456789012345678", int64(1)).Return(nil, nil)
				store.EXPECT().ApplyBump(gomock.Any(), gomock.Any()).Return(0, errors.New("connection reset"))
			},
			wantErr: errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mock.NewMockStore(gomock.NewController(t))
			tt.setup(store)

			s := bump.NewService(store, bump.NopNotifier{}, bump.WithClock(fixedClock(testNow)))

			got, err := s.PerformBump(context.Background(), tt.userID, 1)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("PerformBump() error = nil, want %v", tt.wantErr)
				}
				var wantCooldown *bump.CooldownActiveError
				if errors.As(tt.wantErr, &wantCooldown) {
					var gotCooldown *bump.CooldownActiveError
					if !errors.As(err, &gotCooldown) {
						t.Fatalf("PerformBump() error = %v, want CooldownActiveError", err)
					}
					if gotCooldown.Remaining != wantCooldown.Remaining {
						t.Errorf("CooldownActiveError.Remaining = %v, want %v", gotCooldown.Remaining, wantCooldown.Remaining)
					}
					return
				}
				if !errors.Is(err, tt.wantErr) && err.Error() != tt.wantErr.Error() {
					t.Errorf("PerformBump() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("PerformBump() unexpected error: %v", err)
			}
			if got.BumpCount != tt.wantCount {
				t.Errorf("PerformBump() BumpCount = %d, want %d", got.BumpCount, tt.wantCount)
			}
			if got.NextBumpAt != testNow.Add(got.Cooldown) {
				t.Errorf("PerformBump() NextBumpAt = %v, want %v", got.NextBumpAt, testNow.Add(got.Cooldown))
			}
		})
	}
}

func Test_Service_CheckBump(t *testing.T) {
	store := mock.NewMockStore(gomock.NewController(t))
	last := testNow.Add(-125 * time.Minute)
	store.EXPECT().GetListing(gomock.Any(), int64(1)).Return(activeListing(), nil)
	store.EXPECT().GetProfile(gomock.Any(), int64(7)).Return(linkedProfile(models.TierFree), nil)
	store.EXPECT().GetCooldown(gomock.Any(), "123456789012345678", int64(1)).
		Return(&models.BumpCooldown{UserDiscordID: "123456789012345678", ListingID: 1, LastBumpAt: last}, nil)

	s := bump.NewService(store, bump.NopNotifier{}, bump.WithClock(fixedClock(testNow)))

	status, err := s.CheckBump(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("CheckBump() unexpected error: %v", err)
	}
	if status.Eligible {
		t.Error("CheckBump() eligible = true, want false")
	}
	// 6h - 125m = 235m = 3h 55m
	if got := bump.FormatWait(status.Remaining); got != "3h 55m" {
		t.Errorf("FormatWait(remaining) = %q, want %q", got, "3h 55m")
	}
}

// fakeBumpStore is a stateful in-memory store with the same transactional
// re-check behavior the real repository performs.
type fakeBumpStore struct {
	listing   *models.Listing
	profile   *models.Profile
	cooldowns map[string]time.Time
	records   int
}

func newFakeBumpStore(listing *models.Listing, profile *models.Profile) *fakeBumpStore {
	return &fakeBumpStore{
		listing:   listing,
		profile:   profile,
		cooldowns: make(map[string]time.Time),
	}
}

func cooldownKey(discordID string, listingID int64) string {
	return fmt.Sprintf("%s:%d", discordID, listingID)
}

func (f *fakeBumpStore) GetListing(_ context.Context, listingID int64) (*models.Listing, error) {
	if f.listing == nil || f.listing.ID != listingID {
		return nil, errors.New("listing not found")
	}
	return f.listing, nil
}

func (f *fakeBumpStore) GetProfile(_ context.Context, userID int64) (*models.Profile, error) {
	if f.profile == nil || f.profile.ID != userID {
		return nil, errors.New("profile not found")
	}
	return f.profile, nil
}

func (f *fakeBumpStore) GetCooldown(_ context.Context, discordID string, listingID int64) (*models.BumpCooldown, error) {
	last, ok := f.cooldowns[cooldownKey(discordID, listingID)]
	if !ok {
		return nil, nil
	}
	return &models.BumpCooldown{UserDiscordID: discordID, ListingID: listingID, LastBumpAt: last}, nil
}

func (f *fakeBumpStore) ApplyBump(_ context.Context, req bump.ApplyRequest) (int, error) {
	key := cooldownKey(req.UserDiscordID, req.ListingID)
	if last, ok := f.cooldowns[key]; ok {
		if elapsed := req.Now.Sub(last); elapsed < req.Cooldown {
			return 0, &bump.CooldownActiveError{Remaining: req.Cooldown - elapsed}
		}
	}
	f.cooldowns[key] = req.Now
	f.listing.BumpCount++
	now := req.Now
	f.listing.LastBumpedAt = &now
	f.records++
	return f.listing.BumpCount, nil
}

func Test_Service_PerformBump_CooldownCycle(t *testing.T) {
	listing := activeListing()
	profile := linkedProfile(models.TierFree)
	store := newFakeBumpStore(listing, profile)

	clock := testNow
	s := bump.NewService(store, bump.NopNotifier{}, bump.WithClock(func() time.Time { return clock }))

	ctx := context.Background()

	// First bump with no prior cooldown row succeeds.
	res, err := s.PerformBump(ctx, profile.ID, listing.ID)
	if err != nil {
		t.Fatalf("first PerformBump() unexpected error: %v", err)
	}
	if res.BumpCount != 1 {
		t.Errorf("first bump count = %d, want 1", res.BumpCount)
	}
	if listing.LastBumpedAt == nil || !listing.LastBumpedAt.Equal(testNow) {
		t.Errorf("listing.LastBumpedAt = %v, want %v", listing.LastBumpedAt, testNow)
	}

	// A minute later the retry must report the remaining wait.
	clock = testNow.Add(time.Minute)
	_, err = s.PerformBump(ctx, profile.ID, listing.ID)
	var ce *bump.CooldownActiveError
	if !errors.As(err, &ce) {
		t.Fatalf("second PerformBump() error = %v, want CooldownActiveError", err)
	}
	if got := bump.FormatWait(ce.Remaining); got != "5h 59m" {
		t.Errorf("remaining wait = %q, want %q", got, "5h 59m")
	}
	if listing.BumpCount != 1 {
		t.Errorf("bump count after rejected retry = %d, want 1", listing.BumpCount)
	}

	// Past the full cooldown the next bump succeeds.
	clock = testNow.Add(6*time.Hour + time.Minute)
	res, err = s.PerformBump(ctx, profile.ID, listing.ID)
	if err != nil {
		t.Fatalf("third PerformBump() unexpected error: %v", err)
	}
	if res.BumpCount != 2 {
		t.Errorf("third bump count = %d, want 2", res.BumpCount)
	}
	if store.records != 2 {
		t.Errorf("audit records = %d, want 2", store.records)
	}
}
