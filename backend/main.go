package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/rest"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/hublist/hublist/backend/config"
	"github.com/hublist/hublist/backend/handlers"
	"github.com/hublist/hublist/backend/middleware"
	webservices "github.com/hublist/hublist/backend/services"
	"github.com/hublist/hublist/hublist"
	"github.com/hublist/hublist/hublist/bump"
	"github.com/hublist/hublist/hublist/database"
	"github.com/hublist/hublist/hublist/database/repositories"
	"github.com/hublist/hublist/hublist/listings"
	"github.com/hublist/hublist/hublist/logger"
	"github.com/hublist/hublist/hublist/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := "../config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	customHandler := logger.NewHandler("Hublist-Backend")
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting Hublist Backend API",
		slog.String("version", version),
		slog.String("commit", commit),
		slog.String("type", "web"))

	cfg, err := hublist.LoadConfig(configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	webCfg := config.NewWebAppConfig(cfg, false)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slog.Info("Connecting to database...")
	dbConfig := database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	}
	db, err := database.New(ctx, dbConfig)
	if err != nil {
		slog.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("Database connected successfully")

	listingRepo := repositories.NewListingRepository(db.BunDB())
	profileRepo := repositories.NewProfileRepository(db.BunDB())
	bumpRepo := repositories.NewBumpRepository(db.BunDB())
	reviewRepo := repositories.NewReviewRepository(db.BunDB())
	followRepo := repositories.NewFollowRepository(db.BunDB())

	// Web bumps announce through a rest-only Discord client, no gateway needed.
	var notifier bump.Notifier = bump.NopNotifier{}
	if cfg.Bot.Token != "" && cfg.Bot.AnnounceChannel != 0 {
		restClient := rest.New(rest.NewClient(cfg.Bot.Token))
		notifier = bump.NewChannelNotifier(restClient, cfg.Bot.AnnounceChannel)
	}

	bumpService := bump.NewService(bumpRepo, notifier)
	listingService := listings.NewService(listingRepo, bumpService)

	assetService := services.NewAssetService(
		cfg.Spaces.Key,
		cfg.Spaces.Secret,
		cfg.Spaces.Region,
		cfg.Spaces.Bucket,
		cfg.Spaces.AssetRoot,
	)

	oauthService := webservices.NewOAuthService(webCfg)
	sessionService := webservices.NewSessionService(webCfg)

	app := fiber.New(fiber.Config{
		AppName:      "Hublist Backend API",
		ServerHeader: "Hublist-Backend",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Web.AllowedOrigin,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With,Cookie",
		AllowCredentials: true,
	}))
	app.Use(middleware.LoggingMiddleware())

	webApp := &handlers.WebApp{
		Config:            webCfg,
		DB:                db,
		ListingRepository: listingRepo,
		ProfileRepository: profileRepo,
		BumpRepository:    bumpRepo,
		ReviewRepository:  reviewRepo,
		FollowRepository:  followRepo,
		BumpService:       bumpService,
		ListingService:    listingService,
		AssetService:      assetService,
		OAuthService:      oauthService,
		SessionService:    sessionService,
		Version:           version,
		Commit:            commit,
	}

	setupRoutes(app, webApp)

	address := cfg.Web.Port
	if !strings.HasPrefix(address, ":") {
		address = ":" + address
	}
	slog.Info("Starting backend server", slog.String("address", address))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := app.Listen(address); err != nil {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-c
	slog.Info("Shutting down backend server...")

	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		slog.Error("Server shutdown error", slog.String("error", err.Error()))
	}

	db.Close()

	slog.Info("Backend server shutdown complete")
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App, webApp *handlers.WebApp) {
	app.Get("/health", handlers.HealthCheck(webApp))

	// Authentication routes
	auth := app.Group("/auth")
	auth.Get("/discord", middleware.AuthRateLimit(), handlers.DiscordOAuth(webApp))
	auth.Get("/callback", middleware.AuthRateLimit(), handlers.OAuthCallback(webApp))
	auth.Post("/logout", handlers.Logout(webApp))
	auth.Get("/me", middleware.AuthRequired(webApp), handlers.Me(webApp))

	api := app.Group("/api")
	api.Use(middleware.APIRateLimit())
	api.Use(middleware.OptionalAuth(webApp))

	// Public directory routes; authenticated requests get bump annotations
	api.Get("/listings", handlers.ListingsIndex(webApp))
	api.Get("/listings/:id", handlers.ListingsDetail(webApp))
	api.Get("/listings/:id/reviews", handlers.ReviewsIndex(webApp))
	api.Get("/listings/:id/bumps", handlers.ListingsBumpHistory(webApp))
	api.Get("/profiles/:id", handlers.ProfilesDetail(webApp))
	api.Get("/profiles/:id/followers", handlers.ProfilesFollowers(webApp))
	api.Get("/profiles/:id/following", handlers.ProfilesFollowing(webApp))

	// Authenticated routes
	authed := api.Group("", middleware.AuthRequired(webApp))
	authed.Get("/me/listings", handlers.MyListings(webApp))
	authed.Post("/listings", handlers.ListingsCreate(webApp))
	authed.Put("/listings/:id", handlers.ListingsUpdate(webApp))
	authed.Delete("/listings/:id", handlers.ListingsDelete(webApp))
	authed.Post("/listings/:id/bump", middleware.BumpRateLimit(), handlers.ListingsBump(webApp))
	authed.Get("/listings/:id/bump", handlers.ListingsBumpStatus(webApp))
	authed.Put("/listings/:id/reviews", handlers.ReviewsUpsert(webApp))
	authed.Delete("/listings/:id/reviews", handlers.ReviewsDelete(webApp))
	authed.Post("/profiles/:id/follow", handlers.ProfilesFollow(webApp))
	authed.Delete("/profiles/:id/follow", handlers.ProfilesUnfollow(webApp))

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(webApp))
	admin.Use(middleware.AdminRequired(webApp))
	admin.Get("/listings/pending", handlers.AdminPendingListings(webApp))
	admin.Put("/listings/:id/status", middleware.AuditLogMiddleware("listing_status"), handlers.AdminSetListingStatus(webApp))
	admin.Put("/listings/:id/featured", middleware.AuditLogMiddleware("listing_featured"), handlers.AdminSetListingFeatured(webApp))
	admin.Put("/profiles/:id/tier", middleware.AuditLogMiddleware("profile_tier"), handlers.AdminSetProfileTier(webApp))

	app.Use(func(c *fiber.Ctx) error {
		slog.Warn("No route matched for request",
			slog.String("type", "web"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
		)
		return c.Status(404).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested endpoint does not exist",
		})
	})
}
