package handlers

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	webmodels "github.com/hublist/hublist/backend/models"
	webutils "github.com/hublist/hublist/backend/utils"
	"github.com/hublist/hublist/hublist/bump"
	appconfig "github.com/hublist/hublist/hublist/config"
	"github.com/hublist/hublist/hublist/database/repositories"
)

// BumpResponse is returned after a successful web bump
type BumpResponse struct {
	ListingID  int64     `json:"listing_id"`
	BumpCount  int       `json:"bump_count"`
	NextBumpAt time.Time `json:"next_bump_at"`
}

// ListingsBump applies a bump to a listing for the authenticated user.
// The same cooldown policy applies here as for the bot command.
func ListingsBump(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := webutils.ExtractUserSession(c)
		if !ok {
			return webutils.SendUnauthorized(c, "Authentication required")
		}

		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return webutils.SendBadRequest(c, "Invalid listing id", nil)
		}

		ctx, cancel := context.WithTimeout(c.Context(), appconfig.DefaultQueryTimeout)
		defer cancel()

		result, err := webApp.BumpService.PerformBump(ctx, session.ProfileID, id)
		if err != nil {
			var cooldownErr *bump.CooldownActiveError
			switch {
			case errors.As(err, &cooldownErr):
				return webutils.SendTooManyRequests(c, "Bump cooldown active", map[string]string{
					"retry_after_seconds": strconv.FormatInt(int64(cooldownErr.Remaining.Seconds()), 10),
					"retry_after":         bump.FormatWait(cooldownErr.Remaining),
				})
			case errors.Is(err, bump.ErrAuthenticationRequired):
				return webutils.SendUnauthorized(c, "Authentication required")
			case errors.Is(err, bump.ErrExternalIdentityRequired):
				return webutils.SendForbidden(c, "A linked Discord account is required to bump")
			case errors.Is(err, bump.ErrListingNotEligible):
				return webutils.SendConflict(c, "Listing is not active and cannot be bumped", nil)
			case repositories.IsNotFound(err):
				return webutils.SendNotFound(c, "Listing not found")
			default:
				slog.Error("Web bump failed",
					slog.String("type", "web"),
					slog.Int64("listing_id", id),
					slog.Int64("profile_id", session.ProfileID),
					slog.String("error", err.Error()))
				return webutils.SendInternalServerError(c, "Failed to bump listing")
			}
		}

		webApp.ListingService.InvalidateCache()

		return webutils.SendSuccess(c, BumpResponse{
			ListingID:  id,
			BumpCount:  result.BumpCount,
			NextBumpAt: result.NextBumpAt,
		}, "Listing bumped")
	}
}

// ListingsBumpStatus reports whether the authenticated user may bump a listing
func ListingsBumpStatus(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := webutils.ExtractUserSession(c)
		if !ok {
			return webutils.SendUnauthorized(c, "Authentication required")
		}

		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return webutils.SendBadRequest(c, "Invalid listing id", nil)
		}

		ctx, cancel := context.WithTimeout(c.Context(), appconfig.DefaultQueryTimeout)
		defer cancel()

		status, err := webApp.BumpService.CheckBump(ctx, session.ProfileID, id)
		if err != nil {
			switch {
			case errors.Is(err, bump.ErrExternalIdentityRequired):
				return webutils.SendForbidden(c, "A linked Discord account is required to bump")
			case errors.Is(err, bump.ErrListingNotEligible):
				return webutils.SendConflict(c, "Listing is not active and cannot be bumped", nil)
			case repositories.IsNotFound(err):
				return webutils.SendNotFound(c, "Listing not found")
			default:
				return webutils.SendInternalServerError(c, "Failed to check bump status")
			}
		}

		return webutils.SendSuccess(c, webmodels.ConvertBumpStatusToDTO(status), "")
	}
}

// ListingsBumpHistory returns the most recent bumps of a listing
func ListingsBumpHistory(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return webutils.SendBadRequest(c, "Invalid listing id", nil)
		}

		limit := c.QueryInt("limit", appconfig.DefaultPageSize)
		if limit < 1 || limit > appconfig.MaxPageSize {
			limit = appconfig.DefaultPageSize
		}

		ctx, cancel := context.WithTimeout(c.Context(), appconfig.DefaultQueryTimeout)
		defer cancel()

		bumps, err := webApp.BumpRepository.GetListingBumps(ctx, id, limit)
		if err != nil {
			return webutils.SendInternalServerError(c, "Failed to load bump history")
		}

		return webutils.SendSuccess(c, bumps, "")
	}
}
