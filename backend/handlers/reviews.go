package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	webmodels "github.com/hublist/hublist/backend/models"
	webutils "github.com/hublist/hublist/backend/utils"
	appconfig "github.com/hublist/hublist/hublist/config"
	"github.com/hublist/hublist/hublist/database/models"
	"github.com/hublist/hublist/hublist/database/repositories"
)

// ReviewsIndex returns reviews of a listing with the aggregate rating
func ReviewsIndex(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		listingID, err := parseInt64(c.Params("id"))
		if err != nil {
			return webutils.SendBadRequest(c, "Invalid listing id", nil)
		}

		page := c.QueryInt("page", 1)
		if page < 1 {
			page = 1
		}
		limit := c.QueryInt("limit", appconfig.DefaultPageSize)
		if limit < 1 || limit > appconfig.MaxPageSize {
			limit = appconfig.DefaultPageSize
		}

		ctx, cancel := context.WithTimeout(c.Context(), appconfig.DefaultQueryTimeout)
		defer cancel()

		reviews, err := webApp.ReviewRepository.GetByListing(ctx, listingID, limit, (page-1)*limit)
		if err != nil {
			return webutils.SendInternalServerError(c, "Failed to load reviews")
		}

		average, count, err := webApp.ReviewRepository.GetAverageRating(ctx, listingID)
		if err != nil {
			return webutils.SendInternalServerError(c, "Failed to load rating")
		}

		dtos := make([]*webmodels.ReviewDTO, len(reviews))
		for i, review := range reviews {
			dtos[i] = webmodels.ConvertReviewToDTO(review)
		}

		pagination := webmodels.NewPaginationInfo(page, limit, int64(count))
		return webutils.SendPaginated(c, fiber.Map{
			"reviews":        dtos,
			"average_rating": average,
			"review_count":   count,
		}, pagination, "")
	}
}

// ReviewsUpsert creates or replaces the authenticated user's review
func ReviewsUpsert(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := webutils.ExtractUserSession(c)
		if !ok {
			return webutils.SendUnauthorized(c, "Authentication required")
		}

		listingID, err := parseInt64(c.Params("id"))
		if err != nil {
			return webutils.SendBadRequest(c, "Invalid listing id", nil)
		}

		var req webmodels.ReviewRequest
		if err := c.BodyParser(&req); err != nil {
			return webutils.SendBadRequest(c, "Invalid request body", nil)
		}
		if err := req.Validate(); err != nil {
			return webutils.SendUnprocessableEntity(c, err.Error(), nil)
		}

		ctx, cancel := context.WithTimeout(c.Context(), appconfig.DefaultQueryTimeout)
		defer cancel()

		listing, err := webApp.ListingRepository.GetByID(ctx, listingID)
		if err != nil {
			if repositories.IsNotFound(err) {
				return webutils.SendNotFound(c, "Listing not found")
			}
			return webutils.SendInternalServerError(c, "Failed to load listing")
		}
		if !listing.IsActive() {
			return webutils.SendConflict(c, "Only active listings can be reviewed", nil)
		}
		if listing.OwnerID == session.ProfileID {
			return webutils.SendConflict(c, "You cannot review your own listing", nil)
		}

		review := &models.Review{
			ListingID: listingID,
			AuthorID:  session.ProfileID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}

		if err := webApp.ReviewRepository.Upsert(ctx, review); err != nil {
			if errors.Is(err, repositories.ErrInvalidRating) {
				return webutils.SendUnprocessableEntity(c, "Rating must be between 1 and 5", nil)
			}
			return webutils.SendInternalServerError(c, "Failed to save review")
		}

		return webutils.SendSuccess(c, webmodels.ConvertReviewToDTO(review), "Review saved")
	}
}

// ReviewsDelete removes the authenticated user's review of a listing
func ReviewsDelete(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := webutils.ExtractUserSession(c)
		if !ok {
			return webutils.SendUnauthorized(c, "Authentication required")
		}

		listingID, err := parseInt64(c.Params("id"))
		if err != nil {
			return webutils.SendBadRequest(c, "Invalid listing id", nil)
		}

		ctx, cancel := context.WithTimeout(c.Context(), appconfig.DefaultQueryTimeout)
		defer cancel()

		if err := webApp.ReviewRepository.Delete(ctx, listingID, session.ProfileID); err != nil {
			if repositories.IsNotFound(err) {
				return webutils.SendNotFound(c, "Review not found")
			}
			return webutils.SendInternalServerError(c, "Failed to delete review")
		}

		return webutils.SendNoContent(c)
	}
}
