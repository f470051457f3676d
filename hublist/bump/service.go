package bump

import (
	"context"
	"log/slog"
	"time"

	"github.com/hublist/hublist/hublist/database/models"
)

// ApplyRequest carries everything the store needs to record a bump atomically.
type ApplyRequest struct {
	UserID        int64
	UserDiscordID string
	ListingID     int64
	Cooldown      time.Duration
	Now           time.Time
}

// Store is the persistence surface the bump service depends on.
// ApplyBump must run the cooldown upsert, the listing update and the audit
// insert in one transaction, re-checking eligibility inside it. Two
// concurrent bumps from the same pair must not both succeed.
type Store interface {
	GetListing(ctx context.Context, listingID int64) (*models.Listing, error)
	GetProfile(ctx context.Context, userID int64) (*models.Profile, error)
	GetCooldown(ctx context.Context, userDiscordID string, listingID int64) (*models.BumpCooldown, error)
	ApplyBump(ctx context.Context, req ApplyRequest) (int, error)
}

// Status is the result of an eligibility check without side effects.
type Status struct {
	Eligible  bool
	Remaining time.Duration
	Cooldown  time.Duration
}

// Result is returned after a successful bump.
type Result struct {
	Listing    *models.Listing
	BumpCount  int
	Cooldown   time.Duration
	NextBumpAt time.Time
}

// Service applies the bump policy uniformly for every caller, whether the
// request came from a slash command or the web API.
type Service struct {
	store    Store
	notifier Notifier
	now      func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source, used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(store Store, notifier Notifier, opts ...Option) *Service {
	s := &Service{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckBump reports whether userID may bump listingID right now.
// It performs no writes.
func (s *Service) CheckBump(ctx context.Context, userID, listingID int64) (*Status, error) {
	if userID == 0 {
		return nil, ErrAuthenticationRequired
	}

	listing, err := s.store.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !listing.IsActive() {
		return nil, ErrListingNotEligible
	}

	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.HasLinkedDiscord() {
		return nil, ErrExternalIdentityRequired
	}

	cooldown := CooldownDuration(profile.SubscriptionTier)

	row, err := s.store.GetCooldown(ctx, profile.DiscordID, listingID)
	if err != nil {
		return nil, err
	}

	var lastBumpAt *time.Time
	if row != nil {
		lastBumpAt = &row.LastBumpAt
	}

	eligible, remaining := CanBump(lastBumpAt, profile.SubscriptionTier, s.now())
	return &Status{
		Eligible:  eligible,
		Remaining: remaining,
		Cooldown:  cooldown,
	}, nil
}

// PerformBump validates eligibility and records the bump. The cooldown
// upsert, listing update and audit insert happen in a single transaction;
// the transaction re-checks the cooldown so concurrent attempts from the
// same (user, listing) pair cannot both win. The announcement afterwards is
// fire and forget.
func (s *Service) PerformBump(ctx context.Context, userID, listingID int64) (*Result, error) {
	if userID == 0 {
		return nil, ErrAuthenticationRequired
	}

	listing, err := s.store.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !listing.IsActive() {
		return nil, ErrListingNotEligible
	}

	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.HasLinkedDiscord() {
		return nil, ErrExternalIdentityRequired
	}

	cooldown := CooldownDuration(profile.SubscriptionTier)
	now := s.now()

	row, err := s.store.GetCooldown(ctx, profile.DiscordID, listingID)
	if err != nil {
		return nil, err
	}
	var lastBumpAt *time.Time
	if row != nil {
		lastBumpAt = &row.LastBumpAt
	}
	if eligible, remaining := CanBump(lastBumpAt, profile.SubscriptionTier, now); !eligible {
		return nil, &CooldownActiveError{Remaining: remaining}
	}

	newCount, err := s.store.ApplyBump(ctx, ApplyRequest{
		UserID:        userID,
		UserDiscordID: profile.DiscordID,
		ListingID:     listingID,
		Cooldown:      cooldown,
		Now:           now,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Listing bumped",
		slog.String("type", "cmd"),
		slog.Int64("listing_id", listingID),
		slog.Int64("user_id", userID),
		slog.Int("bump_count", newCount),
	)

	if s.notifier != nil {
		go func() {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.notifier.NotifyBump(notifyCtx, listing, models.BumpTypeManual); err != nil {
				slog.Warn("Bump announcement failed",
					slog.Int64("listing_id", listingID),
					slog.Any("error", err),
				)
			}
		}()
	}

	return &Result{
		Listing:    listing,
		BumpCount:  newCount,
		Cooldown:   cooldown,
		NextBumpAt: now.Add(cooldown),
	}, nil
}
