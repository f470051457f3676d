package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	webmodels "github.com/hublist/hublist/backend/models"
	"github.com/hublist/hublist/backend/utils"
	appconfig "github.com/hublist/hublist/hublist/config"
)

// DiscordOAuth starts the Discord OAuth2 flow
func DiscordOAuth(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := webApp.OAuthService.GenerateState()
		if err != nil {
			slog.Error("Failed to generate OAuth state",
				slog.String("type", "web"),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to start login")
		}

		if err := webApp.SessionService.SetState(c, state); err != nil {
			slog.Error("Failed to set OAuth state cookie",
				slog.String("type", "web"),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to start login")
		}

		return c.Redirect(webApp.OAuthService.GenerateAuthURL(state))
	}
}

// OAuthCallback completes the Discord OAuth2 flow. The Discord user is
// upserted into profiles, so signing in is also registration.
func OAuthCallback(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		expectedState, err := webApp.SessionService.GetAndClearState(c)
		if err != nil {
			return utils.SendBadRequest(c, "Missing or invalid OAuth state", nil)
		}
		if !webApp.OAuthService.ValidateState(c, expectedState) {
			return utils.SendBadRequest(c, "OAuth state mismatch", nil)
		}

		code := c.Query("code")
		if code == "" {
			return utils.SendBadRequest(c, "Missing authorization code", nil)
		}

		ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
		defer cancel()

		accessToken, err := webApp.OAuthService.ExchangeCodeForToken(ctx, code)
		if err != nil {
			slog.Error("OAuth token exchange failed",
				slog.String("type", "web"),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to complete login")
		}

		discordUser, err := webApp.OAuthService.GetUserInfo(ctx, accessToken)
		if err != nil {
			slog.Error("OAuth user info fetch failed",
				slog.String("type", "web"),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to complete login")
		}

		profile, err := webApp.ProfileRepository.GetOrCreateByDiscord(ctx,
			discordUser.ID, discordUser.Username, discordUser.AvatarURL())
		if err != nil {
			slog.Error("Failed to upsert profile on login",
				slog.String("type", "web"),
				slog.String("discord_id", discordUser.ID),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to complete login")
		}

		session := &webmodels.UserSession{
			ProfileID: profile.ID,
			DiscordID: profile.DiscordID,
			Username:  profile.Username,
			Avatar:    profile.AvatarURL,
			Tier:      profile.SubscriptionTier,
			IsAdmin:   profile.IsAdmin || webApp.OAuthService.IsAdminUser(discordUser.ID),
			ExpiresAt: time.Now().Add(appconfig.SessionTimeout),
		}

		if err := webApp.SessionService.CreateSession(c, session); err != nil {
			slog.Error("Failed to create session",
				slog.String("type", "web"),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to complete login")
		}

		return c.Redirect(webApp.Config.Config.Web.BaseURL)
	}
}

// Logout destroys the current session
func Logout(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		webApp.SessionService.DestroySession(c)
		return utils.SendSuccess(c, nil, "Logged out")
	}
}

// Me returns the authenticated user's session and profile
func Me(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := utils.ExtractUserSession(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		ctx, cancel := context.WithTimeout(c.Context(), appconfig.DefaultQueryTimeout)
		defer cancel()

		profile, err := webApp.ProfileRepository.GetByID(ctx, session.ProfileID)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to load profile")
		}

		return utils.SendSuccess(c, webmodels.ConvertProfileToDTO(profile), "")
	}
}
