package hublist

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"
	"github.com/hublist/hublist/hublist/bump"
	"github.com/hublist/hublist/hublist/database"
	"github.com/hublist/hublist/hublist/database/repositories"
	"github.com/hublist/hublist/hublist/listings"
	"github.com/hublist/hublist/hublist/services"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
	}
}

type Bot struct {
	Cfg               Config
	Client            bot.Client
	Paginator         *paginator.Manager
	Version           string
	Commit            string
	DB                *database.DB
	ListingRepository repositories.ListingRepository
	ProfileRepository repositories.ProfileRepository
	BumpRepository    repositories.BumpRepository
	ReviewRepository  repositories.ReviewRepository
	FollowRepository  repositories.FollowRepository
	BumpService       *bump.Service
	ListingService    *listings.Service
	AssetService      *services.AssetService
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

// SetupServices wires the repositories and services on top of an opened DB.
func (b *Bot) SetupServices() {
	bunDB := b.DB.BunDB()

	b.ListingRepository = repositories.NewListingRepository(bunDB)
	b.ProfileRepository = repositories.NewProfileRepository(bunDB)
	b.BumpRepository = repositories.NewBumpRepository(bunDB)
	b.ReviewRepository = repositories.NewReviewRepository(bunDB)
	b.FollowRepository = repositories.NewFollowRepository(bunDB)

	var notifier bump.Notifier = bump.NopNotifier{}
	if b.Client != nil && b.Cfg.Bot.AnnounceChannel != 0 {
		notifier = bump.NewChannelNotifier(b.Client.Rest(), b.Cfg.Bot.AnnounceChannel)
	}

	b.BumpService = bump.NewService(b.BumpRepository, notifier)
	b.ListingService = listings.NewService(b.ListingRepository, b.BumpService)
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("Hublist bot is now ready",
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithWatchingActivity("the server directory"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.Any("error", err))
	}
}
