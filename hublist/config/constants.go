package config

import "time"

// Application-wide constants organized by domain

// UI and Display Constants
const (
	// Pagination
	ListingsPerPage = 12
	DefaultPageSize = 10
	MaxPageSize     = 25

	// Colors
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	// Discord UI Colors
	BackgroundColor   = 0x2B2D31
	EmbedDefaultColor = 0x2B2D31

	// Tier Colors
	TierFreeColor     = 0x808080
	TierGoldColor     = 0xFFD700
	TierPlatinumColor = 0xE5E4E2
	TierPremiumColor  = 0x800080
)

// Database and Performance Constants
const (
	// Timeouts
	DefaultQueryTimeout     = 30 * time.Second
	SearchTimeout           = 10 * time.Second
	CommandExecutionTimeout = 10 * time.Second
	NetworkDialTimeout      = 5 * time.Second
	NetworkKeepAlive        = 30 * time.Second

	// Cache settings
	CacheExpiration = 5 * time.Minute
	CacheSize       = 10000

	// Batch processing
	MaxRetries      = 3
	ParallelQueries = 4
)

// Bump System Constants
const (
	BumpCooldownFree     = 6 * time.Hour
	BumpCooldownGold     = 3 * time.Hour
	BumpCooldownPlatinum = 2 * time.Hour
	BumpCooldownPremium  = 2 * time.Hour
)

// File and Storage Constants
const (
	// Image processing
	MaxImageSize = 10 * 1024 * 1024 // 10MB

	// File paths
	ListingIconRoot   = "icons/"
	ListingBannerRoot = "banners/"
)

// API and Rate Limiting Constants
const (
	// Rate limiting
	GlobalRateLimit   = 50
	UserRateLimit     = 10
	BumpRateLimit     = 5
	RateLimitWindow   = 1 * time.Minute
	RateLimitCooldown = 5 * time.Minute

	// Request limits
	MaxRequestSize = 1024 * 1024 // 1MB
	RequestTimeout = 30 * time.Second
)

// Search and Filter Constants
const (
	MaxSearchResults = 100

	// Member count buckets
	SmallCommunityMax  = 100
	MediumCommunityMax = 1000
)

// Security Constants
const (
	SessionTimeout = 24 * time.Hour

	// Data limits
	MaxUsernameLength    = 32
	MaxBioLength         = 500
	MaxListingNameLength = 100
	MaxDescriptionLength = 2000
	MaxReviewLength      = 1000
)
