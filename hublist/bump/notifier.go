package bump

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/hublist/hublist/hublist/config"
	"github.com/hublist/hublist/hublist/database/models"
)

// Notifier announces a successful bump. Failures are the caller's to swallow.
type Notifier interface {
	NotifyBump(ctx context.Context, listing *models.Listing, bumpType string) error
}

// ChannelNotifier posts bump announcements to a Discord channel.
type ChannelNotifier struct {
	rest      rest.Rest
	channelID snowflake.ID
}

func NewChannelNotifier(rest rest.Rest, channelID snowflake.ID) *ChannelNotifier {
	return &ChannelNotifier{
		rest:      rest,
		channelID: channelID,
	}
}

func (n *ChannelNotifier) NotifyBump(ctx context.Context, listing *models.Listing, bumpType string) error {
	if n.channelID == 0 {
		return nil
	}

	embed := discord.NewEmbedBuilder().
		SetTitle("📣 Listing Bumped").
		SetDescription(fmt.Sprintf("**%s** was just bumped to the top of the directory!", listing.Name)).
		AddField("Total Bumps", fmt.Sprintf("%d", listing.BumpCount+1), true).
		AddField("Type", string(listing.Type), true).
		SetColor(config.SuccessColor).
		Build()

	_, err := n.rest.CreateMessage(n.channelID,
		discord.NewMessageCreateBuilder().SetEmbeds(embed).Build(),
		rest.WithCtx(ctx),
	)
	return err
}

// NopNotifier discards announcements, used when no channel is configured
// and in tests.
type NopNotifier struct{}

func (NopNotifier) NotifyBump(context.Context, *models.Listing, string) error {
	return nil
}
