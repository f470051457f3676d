package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	webmodels "github.com/hublist/hublist/backend/models"
	webutils "github.com/hublist/hublist/backend/utils"
	appconfig "github.com/hublist/hublist/hublist/config"
	"github.com/hublist/hublist/hublist/database/models"
	"github.com/hublist/hublist/hublist/database/repositories"
	"github.com/hublist/hublist/hublist/utils"
)

// ListingsIndex returns one page of the active directory. Authenticated
// requests get a per-listing bump eligibility annotation.
func ListingsIndex(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.ListingSearchRequest
		if err := c.QueryParser(&req); err != nil {
			return webutils.SendBadRequest(c, "Invalid query parameters", nil)
		}
		if err := req.Validate(); err != nil {
			return webutils.SendBadRequest(c, err.Error(), nil)
		}

		ctx, cancel := context.WithTimeout(c.Context(), appconfig.SearchTimeout)
		defer cancel()

		filters := utils.ListingFilters{
			Query:        req.Query,
			Type:         req.Type,
			MemberBucket: req.MemberBucket,
			Featured:     req.Featured,
			SortBy:       req.SortBy,
		}

		filtered, err := webApp.ListingService.GetFilteredListings(ctx, filters)
		if err != nil {
			slog.Error("Listing query failed",
				slog.String("type", "web"),
				slog.String("error", err.Error()))
			return webutils.SendInternalServerError(c, "Failed to load listings")
		}

		page, _ := utils.PaginateListings(filtered, req.Page-1, req.Limit)

		dtos := make([]*webmodels.ListingDTO, len(page))
		for i, l := range page {
			dtos[i] = webmodels.ConvertListingToDTO(l)
		}

		if session, ok := webutils.ExtractUserSession(c); ok {
			statuses, err := webApp.ListingService.AnnotateEligibility(ctx, session.ProfileID, page)
			if err != nil {
				slog.Warn("Bump eligibility annotation failed",
					slog.String("type", "web"),
					slog.Int64("profile_id", session.ProfileID),
					slog.String("error", err.Error()))
			} else {
				for i, status := range statuses {
					dtos[i].BumpStatus = webmodels.ConvertBumpStatusToDTO(status)
				}
			}
		}

		pagination := webmodels.NewPaginationInfo(req.Page, req.Limit, int64(len(filtered)))
		return webutils.SendPaginated(c, dtos, pagination, "")
	}
}

// ListingsDetail returns a single listing by id
func ListingsDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return webutils.SendBadRequest(c, "Invalid listing id", nil)
		}

		ctx, cancel := context.WithTimeout(c.Context(), appconfig.DefaultQueryTimeout)
		defer cancel()

		listing, err := webApp.ListingService.GetListing(ctx, id)
		if err != nil {
			if repositories.IsNotFound(err) {
				return webutils.SendNotFound(c, "Listing not found")
			}
			return webutils.SendInternalServerError(c, "Failed to load listing")
		}

		session, authenticated := webutils.ExtractUserSession(c)

		// Pending and suspended listings are only visible to the owner and admins.
		if !listing.IsActive() {
			if !authenticated || (session.ProfileID != listing.OwnerID && !session.IsAdmin) {
				return webutils.SendNotFound(c, "Listing not found")
			}
		}

		dto := webmodels.ConvertListingToDTO(listing)

		if authenticated {
			if status, err := webApp.BumpService.CheckBump(ctx, session.ProfileID, id); err == nil {
				dto.BumpStatus = webmodels.ConvertBumpStatusToDTO(status)
			}
		}

		return webutils.SendSuccess(c, dto, "")
	}
}

// MyListings returns the authenticated user's own listings, every status
// included, each annotated with bump eligibility for the dashboard.
func MyListings(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := webutils.ExtractUserSession(c)
		if !ok {
			return webutils.SendUnauthorized(c, "Authentication required")
		}

		ctx, cancel := context.WithTimeout(c.Context(), appconfig.DefaultQueryTimeout)
		defer cancel()

		owned, err := webApp.ListingRepository.GetByOwnerID(ctx, session.ProfileID)
		if err != nil {
			slog.Error("Dashboard listing query failed",
				slog.String("type", "web"),
				slog.Int64("profile_id", session.ProfileID),
				slog.String("error", err.Error()))
			return webutils.SendInternalServerError(c, "Failed to load your listings")
		}

		dtos := make([]*webmodels.ListingDTO, len(owned))
		for i, l := range owned {
			dtos[i] = webmodels.ConvertListingToDTO(l)
		}

		statuses, err := webApp.ListingService.AnnotateEligibility(ctx, session.ProfileID, owned)
		if err != nil {
			slog.Warn("Bump eligibility annotation failed",
				slog.String("type", "web"),
				slog.Int64("profile_id", session.ProfileID),
				slog.String("error", err.Error()))
		} else {
			for i, status := range statuses {
				dtos[i].BumpStatus = webmodels.ConvertBumpStatusToDTO(status)
			}
		}

		return webutils.SendSuccess(c, dtos, "")
	}
}

// ListingsCreate submits a new listing for review
func ListingsCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := webutils.ExtractUserSession(c)
		if !ok {
			return webutils.SendUnauthorized(c, "Authentication required")
		}

		var req webmodels.ListingCreateRequest
		if err := c.BodyParser(&req); err != nil {
			return webutils.SendBadRequest(c, "Invalid request body", nil)
		}
		if err := req.Validate(); err != nil {
			return webutils.SendUnprocessableEntity(c, err.Error(), nil)
		}

		ctx, cancel := context.WithTimeout(c.Context(), appconfig.DefaultQueryTimeout)
		defer cancel()

		listing := &models.Listing{
			OwnerID:     session.ProfileID,
			Name:        req.Name,
			Description: req.Description,
			InviteURL:   req.InviteURL,
			Type:        models.ListingType(req.Type),
			Status:      models.ListingStatusPending,
			MemberCount: req.MemberCount,
		}

		if err := webApp.ListingRepository.Create(ctx, listing); err != nil {
			slog.Error("Listing creation failed",
				slog.String("type", "web"),
				slog.Int64("profile_id", session.ProfileID),
				slog.String("error", err.Error()))
			return webutils.SendInternalServerError(c, "Failed to create listing")
		}

		return webutils.SendCreated(c, webmodels.ConvertListingToDTO(listing), "Listing submitted for review")
	}
}

// ListingsUpdate updates a listing owned by the authenticated user
func ListingsUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := webutils.ExtractUserSession(c)
		if !ok {
			return webutils.SendUnauthorized(c, "Authentication required")
		}

		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return webutils.SendBadRequest(c, "Invalid listing id", nil)
		}

		var req webmodels.ListingUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return webutils.SendBadRequest(c, "Invalid request body", nil)
		}

		ctx, cancel := context.WithTimeout(c.Context(), appconfig.DefaultQueryTimeout)
		defer cancel()

		listing, err := webApp.ListingRepository.GetByID(ctx, id)
		if err != nil {
			if repositories.IsNotFound(err) {
				return webutils.SendNotFound(c, "Listing not found")
			}
			return webutils.SendInternalServerError(c, "Failed to load listing")
		}

		if listing.OwnerID != session.ProfileID && !session.IsAdmin {
			return webutils.SendForbidden(c, "You don't own this listing")
		}

		if req.Name != nil {
			if *req.Name == "" || len(*req.Name) > appconfig.MaxListingNameLength {
				return webutils.SendUnprocessableEntity(c, "Invalid listing name", nil)
			}
			listing.Name = *req.Name
		}
		if req.Description != nil {
			if len(*req.Description) > appconfig.MaxDescriptionLength {
				return webutils.SendUnprocessableEntity(c, "Description too long", nil)
			}
			listing.Description = *req.Description
		}
		if req.InviteURL != nil {
			listing.InviteURL = *req.InviteURL
		}
		if req.MemberCount != nil && *req.MemberCount >= 0 {
			listing.MemberCount = *req.MemberCount
		}

		if err := webApp.ListingRepository.Update(ctx, listing); err != nil {
			return webutils.SendInternalServerError(c, "Failed to update listing")
		}

		webApp.ListingService.InvalidateCache()
		return webutils.SendSuccess(c, webmodels.ConvertListingToDTO(listing), "Listing updated")
	}
}

// ListingsDelete removes a listing owned by the authenticated user
func ListingsDelete(webApp *WebApp) fiber.Handler {
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

		if err := webApp.ListingRepository.Delete(ctx, id, session.ProfileID); err != nil {
			switch {
			case errors.Is(err, repositories.ErrNotListingOwner):
				return webutils.SendForbidden(c, "You don't own this listing")
			case repositories.IsNotFound(err):
				return webutils.SendNotFound(c, "Listing not found")
			default:
				return webutils.SendInternalServerError(c, "Failed to delete listing")
			}
		}

		webApp.ListingService.InvalidateCache()
		return webutils.SendNoContent(c)
	}
}
