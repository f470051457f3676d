package models

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/hublist/hublist/hublist/bump"
	"github.com/hublist/hublist/hublist/config"
	"github.com/hublist/hublist/hublist/database/models"
)

// UserSession represents a user session for web authentication
type UserSession struct {
	ProfileID int64     `json:"profile_id"`
	DiscordID string    `json:"discord_id"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	Tier      string    `json:"tier"`
	IsAdmin   bool      `json:"is_admin"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ListingDTO represents a listing for web clients
type ListingDTO struct {
	ID           int64      `json:"id"`
	OwnerID      int64      `json:"owner_id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	InviteURL    string     `json:"invite_url"`
	IconURL      string     `json:"icon_url,omitempty"`
	BannerURL    string     `json:"banner_url,omitempty"`
	Type         string     `json:"type"`
	Status       string     `json:"status"`
	Featured     bool       `json:"featured"`
	MemberCount  int        `json:"member_count"`
	BumpCount    int        `json:"bump_count"`
	LastBumpedAt *time.Time `json:"last_bumped_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`

	// BumpStatus is only populated for authenticated listing queries.
	BumpStatus *BumpStatusDTO `json:"bump_status,omitempty"`
}

// BumpStatusDTO reports per-user bump eligibility for a listing
type BumpStatusDTO struct {
	Eligible         bool   `json:"eligible"`
	RemainingSeconds int64  `json:"remaining_seconds"`
	RemainingText    string `json:"remaining_text,omitempty"`
}

// ProfileDTO represents a public profile for web clients
type ProfileDTO struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Tier      string    `json:"tier"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewDTO represents a review for web clients
type ReviewDTO struct {
	ID        int64     `json:"id"`
	ListingID int64     `json:"listing_id"`
	AuthorID  int64     `json:"author_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListingCreateRequest represents a request to create a new listing
type ListingCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InviteURL   string `json:"invite_url"`
	Type        string `json:"type"`
	MemberCount int    `json:"member_count"`
}

// ListingUpdateRequest represents a request to update a listing
type ListingUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	InviteURL   *string `json:"invite_url,omitempty"`
	MemberCount *int    `json:"member_count,omitempty"`
}

// ReviewRequest represents a request to create or replace a review
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ListingSearchRequest represents listing query parameters
type ListingSearchRequest struct {
	Query        string `query:"query"`
	Type         string `query:"type"`
	MemberBucket string `query:"members"`
	Featured     bool   `query:"featured"`
	SortBy       string `query:"sort"`
	Page         int    `query:"page"`
	Limit        int    `query:"limit"`
}

// Validate normalizes the search request in place.
func (r *ListingSearchRequest) Validate() error {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > config.MaxPageSize {
		r.Limit = config.ListingsPerPage
	}
	if r.Type != "" &&
		r.Type != string(models.ListingTypeServer) &&
		r.Type != string(models.ListingTypeBot) {
		return fmt.Errorf("type must be 'server' or 'bot'")
	}
	return nil
}

// Validate validates the listing create request
func (r *ListingCreateRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.InviteURL = strings.TrimSpace(r.InviteURL)

	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(r.Name) > config.MaxListingNameLength {
		return fmt.Errorf("name must be at most %d characters", config.MaxListingNameLength)
	}
	if len(r.Description) > config.MaxDescriptionLength {
		return fmt.Errorf("description must be at most %d characters", config.MaxDescriptionLength)
	}
	if r.Type != string(models.ListingTypeServer) && r.Type != string(models.ListingTypeBot) {
		return fmt.Errorf("type must be 'server' or 'bot'")
	}
	if r.InviteURL == "" {
		return fmt.Errorf("invite_url is required")
	}
	if u, err := url.Parse(r.InviteURL); err != nil || u.Scheme != "https" {
		return fmt.Errorf("invite_url must be a valid https URL")
	}
	if r.MemberCount < 0 {
		return fmt.Errorf("member_count must not be negative")
	}
	return nil
}

// Validate validates the review request
func (r *ReviewRequest) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	if len(r.Comment) > config.MaxReviewLength {
		return fmt.Errorf("comment must be at most %d characters", config.MaxReviewLength)
	}
	return nil
}

// ConvertListingToDTO converts a database listing model to a DTO
func ConvertListingToDTO(listing *models.Listing) *ListingDTO {
	return &ListingDTO{
		ID:           listing.ID,
		OwnerID:      listing.OwnerID,
		Name:         listing.Name,
		Description:  listing.Description,
		InviteURL:    listing.InviteURL,
		IconURL:      listing.IconURL,
		BannerURL:    listing.BannerURL,
		Type:         string(listing.Type),
		Status:       string(listing.Status),
		Featured:     listing.Featured,
		MemberCount:  listing.MemberCount,
		BumpCount:    listing.BumpCount,
		LastBumpedAt: listing.LastBumpedAt,
		CreatedAt:    listing.CreatedAt,
	}
}

// ConvertBumpStatusToDTO converts a bump status to a DTO
func ConvertBumpStatusToDTO(status *bump.Status) *BumpStatusDTO {
	dto := &BumpStatusDTO{
		Eligible:         status.Eligible,
		RemainingSeconds: int64(status.Remaining.Seconds()),
	}
	if !status.Eligible && status.Remaining > 0 {
		dto.RemainingText = bump.FormatWait(status.Remaining)
	}
	return dto
}

// ConvertProfileToDTO converts a database profile model to a public DTO
func ConvertProfileToDTO(profile *models.Profile) *ProfileDTO {
	return &ProfileDTO{
		ID:        profile.ID,
		Username:  profile.Username,
		AvatarURL: profile.AvatarURL,
		Bio:       profile.Bio,
		Tier:      profile.SubscriptionTier,
		IsAdmin:   profile.IsAdmin,
		CreatedAt: profile.CreatedAt,
	}
}

// ConvertReviewToDTO converts a database review model to a DTO
func ConvertReviewToDTO(review *models.Review) *ReviewDTO {
	return &ReviewDTO{
		ID:        review.ID,
		ListingID: review.ListingID,
		AuthorID:  review.AuthorID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}
