package commands

import (
	"github.com/disgoorg/disgo/discord"
)

var Commands = []discord.ApplicationCommandCreate{
	Bump,
	Search,
	Listing,
	Profile,
	Version,
}
