package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/hublist/hublist/backend/config"
	webmodels "github.com/hublist/hublist/backend/models"
	webservices "github.com/hublist/hublist/backend/services"
	"github.com/hublist/hublist/hublist/bump"
	"github.com/hublist/hublist/hublist/database"
	"github.com/hublist/hublist/hublist/database/repositories"
	"github.com/hublist/hublist/hublist/listings"
	"github.com/hublist/hublist/hublist/services"
)

// WebApp represents the web application with all dependencies
type WebApp struct {
	Config            *config.WebAppConfig
	DB                *database.DB
	ListingRepository repositories.ListingRepository
	ProfileRepository repositories.ProfileRepository
	BumpRepository    repositories.BumpRepository
	ReviewRepository  repositories.ReviewRepository
	FollowRepository  repositories.FollowRepository
	BumpService       *bump.Service
	ListingService    *listings.Service
	AssetService      *services.AssetService
	OAuthService      *webservices.OAuthService
	SessionService    *webservices.SessionService
	Version           string
	Commit            string
}

// GetSession gets the current user session
func (w *WebApp) GetSession(c *fiber.Ctx) (*webmodels.UserSession, error) {
	return w.SessionService.GetSession(c)
}

// parseInt64 is a utility function to parse int64 from string
func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
