package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/hublist/hublist/hublist"
	"github.com/hublist/hublist/hublist/bump"
	"github.com/hublist/hublist/hublist/config"
	"github.com/hublist/hublist/hublist/database/repositories"
	"github.com/hublist/hublist/hublist/utils"
)

var Bump = discord.SlashCommandCreate{
	Name:        "bump",
	Description: "📣 Bump a listing back to the top of the directory",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "listing",
			Description: "The listing ID to bump",
			Required:    true,
		},
	},
}

func BumpHandler(b *hublist.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		listingID := int64(e.SlashCommandInteractionData().Int("listing"))

		profile, err := b.ProfileRepository.GetByDiscordID(ctx, e.User().ID.String())
		if err != nil {
			if errors.Is(err, repositories.ErrProfileNotFound) {
				return utils.EH.CreateUserError(e, fmt.Sprintf(
					"No Hublist account is linked to your Discord user. Sign in at %s first.",
					b.Cfg.Web.BaseURL))
			}
			slog.Error("Failed to load profile for bump",
				slog.String("type", "cmd"),
				slog.String("user_id", e.User().ID.String()),
				slog.Any("error", err))
			return utils.EH.CreateSystemError(e, "Failed to look up your account. Please try again later.")
		}

		result, err := b.BumpService.PerformBump(ctx, profile.ID, listingID)
		if err != nil {
			var cooldownErr *bump.CooldownActiveError
			switch {
			case errors.As(err, &cooldownErr):
				return utils.EH.CreateBusinessLogicError(e, fmt.Sprintf(
					"You bumped this listing recently. Try again in **%s**.",
					bump.FormatWait(cooldownErr.Remaining)))
			case errors.Is(err, bump.ErrListingNotEligible):
				return utils.EH.CreateUserError(e, "This listing is not active and cannot be bumped.")
			case errors.Is(err, bump.ErrExternalIdentityRequired):
				return utils.EH.CreateUserError(e, fmt.Sprintf(
					"Your account has no linked Discord user. Re-link it at %s.", b.Cfg.Web.BaseURL))
			case repositories.IsNotFound(err):
				return utils.EH.CreateNotFoundError(e, "Listing", strconv.FormatInt(listingID, 10))
			default:
				slog.Error("Bump failed",
					slog.String("type", "cmd"),
					slog.Int64("listing_id", listingID),
					slog.Int64("user_id", profile.ID),
					slog.Any("error", err))
				return utils.EH.CreateSystemError(e, "Failed to bump the listing. Please try again later.")
			}
		}

		b.ListingService.InvalidateCache()

		embed := discord.NewEmbedBuilder().
			SetTitle("📣 Listing Bumped").
			SetDescription(fmt.Sprintf("**%s** is back at the top of the directory!", result.Listing.Name)).
			AddField("Total Bumps", utils.FormatNumber(int64(result.BumpCount)), true).
			AddField("Next Bump In", bump.FormatWait(result.Cooldown), true).
			SetColor(config.SuccessColor).
			Build()

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{embed},
		})
	}
}
