package commands

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/hublist/hublist/hublist"
	"github.com/hublist/hublist/hublist/config"
	"github.com/hublist/hublist/hublist/database/models"
	"github.com/hublist/hublist/hublist/utils"
)

var Search = discord.SlashCommandCreate{
	Name:        "search",
	Description: "🔍 Browse the directory with filters",
	Options:     utils.CommonFilterOptions,
}

func SearchHandler(b *hublist.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		filters := utils.ListingFilters{
			Query:        e.SlashCommandInteractionData().String("query"),
			Type:         e.SlashCommandInteractionData().String("type"),
			MemberBucket: e.SlashCommandInteractionData().String("members"),
			Featured:     e.SlashCommandInteractionData().Bool("featured"),
			SortBy:       e.SlashCommandInteractionData().String("sort"),
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.SearchTimeout)
		defer cancel()

		listings, err := b.ListingService.GetFilteredListings(ctx, filters)
		if err != nil {
			return utils.EH.CreateError(e, "Search Failed", err.Error())
		}

		if len(listings) == 0 {
			return utils.EH.CreateClassifiedError(e, utils.NotFoundError,
				"No listings match your filters. Try a broader search.")
		}

		totalPages := int(math.Ceil(float64(len(listings)) / float64(config.ListingsPerPage)))

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				pageListings, _ := utils.PaginateListings(listings, page, config.ListingsPerPage)

				var description strings.Builder
				if filterDesc := utils.BuildFilterDescription(filters); filterDesc != "" {
					description.WriteString(filterDesc)
					description.WriteString("\n")
				}

				for _, l := range pageListings {
					description.WriteString(formatListingLine(l))
				}
				description.WriteString(fmt.Sprintf("\n> Page %d of %d (%d listings)",
					page+1, totalPages, len(listings)))

				embed.SetTitle("🔍 Directory Search").
					SetDescription(description.String()).
					SetColor(config.InfoColor)
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

func formatListingLine(l *models.Listing) string {
	var line strings.Builder

	if l.Featured {
		line.WriteString("⭐ ")
	}
	line.WriteString(fmt.Sprintf("%s **%s** (#%d)\n", utils.FormatListingType(string(l.Type)), l.Name, l.ID))
	line.WriteString(fmt.Sprintf("-# 👥 %s members · 📣 %s bumps\n",
		utils.FormatNumber(int64(l.MemberCount)),
		utils.FormatNumber(int64(l.BumpCount))))
	return line.String()
}
