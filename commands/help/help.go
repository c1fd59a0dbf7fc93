package help

import (
	"fmt"
	"strings"

	"CarFigures/bot"
	"CarFigures/catalog"
	"CarFigures/commands"

	"github.com/bwmarrin/discordgo"
)

type helpCommand struct {
	registry *commands.Registry
	color    int
}

// Help describes a single command.
func (h *helpCommand) Help(_ *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	var name string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "command" {
			name = opt.StringValue()
		}
	}

	embed, ok := h.describe(name)
	if !ok {
		commands.RespondEphemeral(s, i, fmt.Sprintf("Command `%s` not found.", name))
		return
	}
	commands.RespondEmbed(s, i, embed, true)
}

// describe builds the help embed for a command, matched by its qualified
// name with or without the leading slash.
func (h *helpCommand) describe(name string) (*discordgo.MessageEmbed, bool) {
	name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(name), "/")))

	items := catalog.Filter(h.registry.CatalogItems(), commands.HiddenCategories...)
	for _, it := range items {
		if it.Name() != name {
			continue
		}
		description := it.Description()
		if description == "" {
			description = "No description available"
		}
		return &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("Help: %s", it.Name()),
			Description: description,
			Color:       h.color,
			Fields: []*discordgo.MessageEmbedField{
				{
					Name:  "Usage",
					Value: h.registry.Mention(it),
				},
				{
					Name:  "Category",
					Value: it.Category(),
				},
			},
		}, true
	}
	return nil, false
}
