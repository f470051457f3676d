package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	webmodels "github.com/hublist/hublist/backend/models"
	webutils "github.com/hublist/hublist/backend/utils"
	appconfig "github.com/hublist/hublist/hublist/config"
	"github.com/hublist/hublist/hublist/database/repositories"
)

// ProfilesFollow makes the authenticated user follow another profile
func ProfilesFollow(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := webutils.ExtractUserSession(c)
		if !ok {
			return webutils.SendUnauthorized(c, "Authentication required")
		}

		followeeID, err := parseInt64(c.Params("id"))
		if err != nil {
			return webutils.SendBadRequest(c, "Invalid profile id", nil)
		}

		ctx, cancel := context.WithTimeout(c.Context(), appconfig.DefaultQueryTimeout)
		defer cancel()

		if _, err := webApp.ProfileRepository.GetByID(ctx, followeeID); err != nil {
			if repositories.IsNotFound(err) {
				return webutils.SendNotFound(c, "Profile not found")
			}
			return webutils.SendInternalServerError(c, "Failed to load profile")
		}

		if err := webApp.FollowRepository.Follow(ctx, session.ProfileID, followeeID); err != nil {
			if errors.Is(err, repositories.ErrSelfFollow) {
				return webutils.SendConflict(c, "You cannot follow yourself", nil)
			}
			return webutils.SendInternalServerError(c, "Failed to follow profile")
		}

		return webutils.SendSuccess(c, nil, "Now following")
	}
}

// ProfilesUnfollow makes the authenticated user unfollow another profile
func ProfilesUnfollow(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := webutils.ExtractUserSession(c)
		if !ok {
			return webutils.SendUnauthorized(c, "Authentication required")
		}

		followeeID, err := parseInt64(c.Params("id"))
		if err != nil {
			return webutils.SendBadRequest(c, "Invalid profile id", nil)
		}

		ctx, cancel := context.WithTimeout(c.Context(), appconfig.DefaultQueryTimeout)
		defer cancel()

		if err := webApp.FollowRepository.Unfollow(ctx, session.ProfileID, followeeID); err != nil {
			return webutils.SendInternalServerError(c, "Failed to unfollow profile")
		}

		return webutils.SendNoContent(c)
	}
}

// ProfilesDetail returns a public profile with its follower count
func ProfilesDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return webutils.SendBadRequest(c, "Invalid profile id", nil)
		}

		ctx, cancel := context.WithTimeout(c.Context(), appconfig.DefaultQueryTimeout)
		defer cancel()

		profile, err := webApp.ProfileRepository.GetByID(ctx, id)
		if err != nil {
			if repositories.IsNotFound(err) {
				return webutils.SendNotFound(c, "Profile not found")
			}
			return webutils.SendInternalServerError(c, "Failed to load profile")
		}

		followers, err := webApp.FollowRepository.CountFollowers(ctx, id)
		if err != nil {
			return webutils.SendInternalServerError(c, "Failed to load followers")
		}

		following := false
		if session, ok := webutils.ExtractUserSession(c); ok {
			following, _ = webApp.FollowRepository.IsFollowing(ctx, session.ProfileID, id)
		}

		return webutils.SendSuccess(c, fiber.Map{
			"profile":        webmodels.ConvertProfileToDTO(profile),
			"follower_count": followers,
			"is_following":   following,
		}, "")
	}
}

// ProfilesFollowers returns the profiles following a given profile
func ProfilesFollowers(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return webutils.SendBadRequest(c, "Invalid profile id", nil)
		}

		ctx, cancel := context.WithTimeout(c.Context(), appconfig.DefaultQueryTimeout)
		defer cancel()

		followers, err := webApp.FollowRepository.GetFollowers(ctx, id)
		if err != nil {
			return webutils.SendInternalServerError(c, "Failed to load followers")
		}

		dtos := make([]*webmodels.ProfileDTO, len(followers))
		for i, profile := range followers {
			dtos[i] = webmodels.ConvertProfileToDTO(profile)
		}
		return webutils.SendSuccess(c, dtos, "")
	}
}

// ProfilesFollowing returns the profiles a given profile follows
func ProfilesFollowing(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return webutils.SendBadRequest(c, "Invalid profile id", nil)
		}

		ctx, cancel := context.WithTimeout(c.Context(), appconfig.DefaultQueryTimeout)
		defer cancel()

		following, err := webApp.FollowRepository.GetFollowing(ctx, id)
		if err != nil {
			return webutils.SendInternalServerError(c, "Failed to load following")
		}

		dtos := make([]*webmodels.ProfileDTO, len(following))
		for i, profile := range following {
			dtos[i] = webmodels.ConvertProfileToDTO(profile)
		}
		return webutils.SendSuccess(c, dtos, "")
	}
}
