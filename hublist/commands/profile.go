package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/hublist/hublist/hublist"
	"github.com/hublist/hublist/hublist/bump"
	"github.com/hublist/hublist/hublist/config"
	"github.com/hublist/hublist/hublist/database/models"
	"github.com/hublist/hublist/hublist/database/repositories"
	"github.com/hublist/hublist/hublist/utils"
)

var Profile = discord.SlashCommandCreate{
	Name:        "profile",
	Description: "👤 Show a Hublist profile",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "User whose profile to show (defaults to you)",
			Required:    false,
		},
	},
}

func ProfileHandler(b *hublist.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		target := e.User()
		self := true
		if user, ok := e.SlashCommandInteractionData().OptUser("user"); ok {
			target = user
			self = user.ID == e.User().ID
		}

		profile, err := b.ProfileRepository.GetByDiscordID(ctx, target.ID.String())
		if err != nil {
			if errors.Is(err, repositories.ErrProfileNotFound) {
				if self {
					return utils.EH.CreateInfoEmbed(e, fmt.Sprintf(
						"No Hublist account is linked to your Discord user yet. Sign in at %s to create one.",
						b.Cfg.Web.BaseURL))
				}
				return utils.EH.CreateNotFoundError(e, "Profile", target.Username)
			}
			return utils.EH.CreateSystemError(e, "Failed to load the profile. Please try again later.")
		}

		listings, err := b.ListingRepository.GetByOwnerID(ctx, profile.ID)
		if err != nil {
			return utils.EH.CreateSystemError(e, "Failed to load listings. Please try again later.")
		}

		followers, err := b.FollowRepository.CountFollowers(ctx, profile.ID)
		if err != nil {
			return utils.EH.CreateSystemError(e, "Failed to load followers. Please try again later.")
		}

		cooldown := bump.CooldownDuration(profile.SubscriptionTier)

		embed := discord.NewEmbedBuilder().
			SetTitle(fmt.Sprintf("👤 %s", profile.Username)).
			AddField("Tier", formatTier(profile.SubscriptionTier), true).
			AddField("Bump Cooldown", bump.FormatWait(cooldown), true).
			AddField("Followers", utils.FormatNumber(int64(followers)), true).
			AddField("Listings", utils.FormatNumber(int64(len(listings))), true).
			SetColor(tierColor(profile.SubscriptionTier))

		if profile.Bio != "" {
			embed.SetDescription(profile.Bio)
		}
		if profile.AvatarURL != "" {
			embed.SetThumbnail(profile.AvatarURL)
		}
		if profile.IsAdmin {
			embed.SetFooter("Directory Admin", "")
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{embed.Build()},
		})
	}
}

func formatTier(tier string) string {
	switch tier {
	case models.TierGold:
		return "🥇 Gold"
	case models.TierPlatinum:
		return "💎 Platinum"
	case models.TierPremium:
		return "👑 Premium"
	default:
		return "Free"
	}
}

func tierColor(tier string) int {
	switch tier {
	case models.TierGold:
		return config.TierGoldColor
	case models.TierPlatinum:
		return config.TierPlatinumColor
	case models.TierPremium:
		return config.TierPremiumColor
	default:
		return config.TierFreeColor
	}
}
