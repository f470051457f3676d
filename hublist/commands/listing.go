package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/hublist/hublist/hublist"
	"github.com/hublist/hublist/hublist/config"
	"github.com/hublist/hublist/hublist/database/models"
	"github.com/hublist/hublist/hublist/database/repositories"
	"github.com/hublist/hublist/hublist/utils"
)

var Listing = discord.SlashCommandCreate{
	Name:        "listing",
	Description: "📋 View and manage directory listings",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "view",
			Description: "Show a listing's details",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionInt{
					Name:        "id",
					Description: "The listing ID",
					Required:    true,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "add",
			Description: "Submit a new listing for review",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "name",
					Description: "Name of the server or bot",
					Required:    true,
				},
				discord.ApplicationCommandOptionString{
					Name:        "type",
					Description: "What kind of listing this is",
					Required:    true,
					Choices: []discord.ApplicationCommandOptionChoiceString{
						{Name: "Server", Value: string(models.ListingTypeServer)},
						{Name: "Bot", Value: string(models.ListingTypeBot)},
					},
				},
				discord.ApplicationCommandOptionString{
					Name:        "invite",
					Description: "Invite or authorization URL",
					Required:    true,
				},
				discord.ApplicationCommandOptionString{
					Name:        "description",
					Description: "Short description shown in the directory",
					Required:    false,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "mine",
			Description: "List your own listings",
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "remove",
			Description: "Remove one of your listings",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionInt{
					Name:        "id",
					Description: "The listing ID",
					Required:    true,
				},
			},
		},
	},
}

func ListingHandler(b *hublist.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		if data.SubCommandName == nil {
			return utils.EH.CreateUserError(e, "Please provide a subcommand.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		switch *data.SubCommandName {
		case "view":
			return handleListingView(ctx, b, e, int64(data.Int("id")))
		case "add":
			return handleListingAdd(ctx, b, e)
		case "mine":
			return handleListingMine(ctx, b, e)
		case "remove":
			return handleListingRemove(ctx, b, e, int64(data.Int("id")))
		default:
			return utils.EH.CreateUserError(e, "Unknown subcommand.")
		}
	}
}

func handleListingView(ctx context.Context, b *hublist.Bot, e *handler.CommandEvent, id int64) error {
	listing, err := b.ListingService.GetListing(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return utils.EH.CreateNotFoundError(e, "Listing", strconv.FormatInt(id, 10))
		}
		return utils.EH.CreateSystemError(e, "Failed to load the listing. Please try again later.")
	}

	avgRating, reviewCount, err := b.ReviewRepository.GetAverageRating(ctx, id)
	if err != nil {
		slog.Warn("Failed to load listing rating",
			slog.Int64("listing_id", id),
			slog.Any("error", err))
	}

	embed := discord.NewEmbedBuilder().
		SetTitle(fmt.Sprintf("%s %s", utils.FormatListingType(string(listing.Type)), listing.Name)).
		SetDescription(listing.Description).
		AddField("Members", utils.FormatNumber(int64(listing.MemberCount)), true).
		AddField("Bumps", utils.FormatNumber(int64(listing.BumpCount)), true).
		SetColor(config.InfoColor)

	if reviewCount > 0 {
		embed.AddField("Rating", fmt.Sprintf("%.1f ⭐ (%d reviews)", avgRating, reviewCount), true)
	}
	if listing.LastBumpedAt != nil {
		embed.AddField("Last Bumped", fmt.Sprintf("<t:%d:R>", listing.LastBumpedAt.Unix()), true)
	}
	if listing.Featured {
		embed.AddField("Featured", "⭐ Yes", true)
	}
	if listing.InviteURL != "" {
		embed.AddField("Invite", listing.InviteURL, false)
	}
	if listing.IconURL != "" {
		embed.SetThumbnail(listing.IconURL)
	}
	if listing.BannerURL != "" {
		embed.SetImage(listing.BannerURL)
	}
	if !listing.IsActive() {
		embed.SetFooter(fmt.Sprintf("Status: %s", listing.Status), "")
	}

	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{embed.Build()},
	})
}

func handleListingAdd(ctx context.Context, b *hublist.Bot, e *handler.CommandEvent) error {
	profile, err := requireProfile(ctx, b, e)
	if err != nil || profile == nil {
		return err
	}

	data := e.SlashCommandInteractionData()
	name := strings.TrimSpace(data.String("name"))
	inviteURL := strings.TrimSpace(data.String("invite"))
	if name == "" || inviteURL == "" {
		return utils.EH.CreateUserError(e, "Name and invite URL are required.")
	}
	if len(name) > config.MaxListingNameLength {
		return utils.EH.CreateUserError(e, fmt.Sprintf(
			"Listing names must be at most %d characters.", config.MaxListingNameLength))
	}

	listing := &models.Listing{
		OwnerID:     profile.ID,
		Name:        name,
		Description: strings.TrimSpace(data.String("description")),
		InviteURL:   inviteURL,
		Type:        models.ListingType(data.String("type")),
		Status:      models.ListingStatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := b.ListingRepository.Create(ctx, listing); err != nil {
		slog.Error("Failed to create listing",
			slog.String("type", "cmd"),
			slog.Int64("owner_id", profile.ID),
			slog.Any("error", err))
		return utils.EH.CreateSystemError(e, "Failed to submit the listing. Please try again later.")
	}

	return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf(
		"✅ **%s** (#%d) submitted for review. It will appear in the directory once approved.",
		listing.Name, listing.ID))
}

func handleListingMine(ctx context.Context, b *hublist.Bot, e *handler.CommandEvent) error {
	profile, err := requireProfile(ctx, b, e)
	if err != nil || profile == nil {
		return err
	}

	listings, err := b.ListingRepository.GetByOwnerID(ctx, profile.ID)
	if err != nil {
		return utils.EH.CreateSystemError(e, "Failed to load your listings. Please try again later.")
	}
	if len(listings) == 0 {
		return utils.EH.CreateInfoEmbed(e, "You have no listings yet. Use `/listing add` to submit one.")
	}

	var description strings.Builder
	for _, l := range listings {
		description.WriteString(fmt.Sprintf("%s **%s** (#%d) · %s · 📣 %s bumps\n",
			utils.FormatListingType(string(l.Type)),
			l.Name,
			l.ID,
			l.Status,
			utils.FormatNumber(int64(l.BumpCount))))
	}

	embed := discord.NewEmbedBuilder().
		SetTitle("📋 Your Listings").
		SetDescription(description.String()).
		SetColor(config.InfoColor).
		Build()

	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{embed},
	})
}

func handleListingRemove(ctx context.Context, b *hublist.Bot, e *handler.CommandEvent, id int64) error {
	profile, err := requireProfile(ctx, b, e)
	if err != nil || profile == nil {
		return err
	}

	if err := b.ListingRepository.Delete(ctx, id, profile.ID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotListingOwner):
			return utils.EH.CreatePermissionError(e, "remove a listing you don't own")
		case repositories.IsNotFound(err):
			return utils.EH.CreateNotFoundError(e, "Listing", strconv.FormatInt(id, 10))
		default:
			return utils.EH.CreateSystemError(e, "Failed to remove the listing. Please try again later.")
		}
	}

	b.ListingService.InvalidateCache()
	return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("🗑️ Listing #%d removed.", id))
}

// requireProfile resolves the invoking user's profile. When no account is
// linked it answers the interaction itself and returns a nil profile.
func requireProfile(ctx context.Context, b *hublist.Bot, e *handler.CommandEvent) (*models.Profile, error) {
	profile, err := b.ProfileRepository.GetByDiscordID(ctx, e.User().ID.String())
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, utils.EH.CreateUserError(e, fmt.Sprintf(
				"No Hublist account is linked to your Discord user. Sign in at %s first.",
				b.Cfg.Web.BaseURL))
		}
		return nil, utils.EH.CreateSystemError(e, "Failed to look up your account. Please try again later.")
	}
	return profile, nil
}
