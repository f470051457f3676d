package handlers

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	webmodels "github.com/hublist/hublist/backend/models"
	webutils "github.com/hublist/hublist/backend/utils"
	appconfig "github.com/hublist/hublist/hublist/config"
	"github.com/hublist/hublist/hublist/database/models"
	"github.com/hublist/hublist/hublist/database/repositories"
)

// AdminPendingListings returns listings awaiting review
func AdminPendingListings(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), appconfig.DefaultQueryTimeout)
		defer cancel()

		pending, err := webApp.ListingRepository.GetPending(ctx)
		if err != nil {
			return webutils.SendInternalServerError(c, "Failed to load pending listings")
		}

		dtos := make([]*webmodels.ListingDTO, len(pending))
		for i, l := range pending {
			dtos[i] = webmodels.ConvertListingToDTO(l)
		}
		return webutils.SendSuccess(c, dtos, "")
	}
}

// AdminSetListingStatus approves or suspends a listing
func AdminSetListingStatus(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return webutils.SendBadRequest(c, "Invalid listing id", nil)
		}

		var req struct {
			Status string `json:"status"`
		}
		if err := c.BodyParser(&req); err != nil {
			return webutils.SendBadRequest(c, "Invalid request body", nil)
		}

		status := models.ListingStatus(req.Status)
		switch status {
		case models.ListingStatusActive, models.ListingStatusSuspended, models.ListingStatusPending:
		default:
			return webutils.SendUnprocessableEntity(c, "status must be 'pending', 'active' or 'suspended'", nil)
		}

		ctx, cancel := context.WithTimeout(c.Context(), appconfig.DefaultQueryTimeout)
		defer cancel()

		if err := webApp.ListingRepository.UpdateStatus(ctx, id, status); err != nil {
			if repositories.IsNotFound(err) {
				return webutils.SendNotFound(c, "Listing not found")
			}
			return webutils.SendInternalServerError(c, "Failed to update listing status")
		}

		webApp.ListingService.InvalidateCache()

		session, _ := webutils.ExtractUserSession(c)
		slog.Info("Listing status changed",
			slog.String("type", "web"),
			slog.Int64("listing_id", id),
			slog.String("status", req.Status),
			slog.Int64("admin_id", session.ProfileID))

		return webutils.SendSuccess(c, nil, "Listing status updated")
	}
}

// AdminSetListingFeatured toggles the featured flag of a listing
func AdminSetListingFeatured(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return webutils.SendBadRequest(c, "Invalid listing id", nil)
		}

		var req struct {
			Featured bool `json:"featured"`
		}
		if err := c.BodyParser(&req); err != nil {
			return webutils.SendBadRequest(c, "Invalid request body", nil)
		}

		ctx, cancel := context.WithTimeout(c.Context(), appconfig.DefaultQueryTimeout)
		defer cancel()

		if err := webApp.ListingRepository.SetFeatured(ctx, id, req.Featured); err != nil {
			if repositories.IsNotFound(err) {
				return webutils.SendNotFound(c, "Listing not found")
			}
			return webutils.SendInternalServerError(c, "Failed to update listing")
		}

		webApp.ListingService.InvalidateCache()
		return webutils.SendSuccess(c, nil, "Listing updated")
	}
}

// AdminSetProfileTier changes a profile's subscription tier
func AdminSetProfileTier(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return webutils.SendBadRequest(c, "Invalid profile id", nil)
		}

		var req struct {
			Tier string `json:"tier"`
		}
		if err := c.BodyParser(&req); err != nil {
			return webutils.SendBadRequest(c, "Invalid request body", nil)
		}

		switch req.Tier {
		case models.TierFree, models.TierGold, models.TierPlatinum, models.TierPremium:
		default:
			return webutils.SendUnprocessableEntity(c, "tier must be 'free', 'gold', 'platinum' or 'premium'", nil)
		}

		ctx, cancel := context.WithTimeout(c.Context(), appconfig.DefaultQueryTimeout)
		defer cancel()

		if err := webApp.ProfileRepository.SetTier(ctx, id, req.Tier); err != nil {
			if repositories.IsNotFound(err) {
				return webutils.SendNotFound(c, "Profile not found")
			}
			return webutils.SendInternalServerError(c, "Failed to update tier")
		}

		session, _ := webutils.ExtractUserSession(c)
		slog.Info("Profile tier changed",
			slog.String("type", "web"),
			slog.Int64("profile_id", id),
			slog.String("tier", req.Tier),
			slog.Int64("admin_id", session.ProfileID))

		return webutils.SendSuccess(c, nil, "Tier updated")
	}
}
