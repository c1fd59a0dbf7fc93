package info

import (
	"CarFigures/bot"
	"CarFigures/catalog"
	"CarFigures/commands"
	"CarFigures/paginator"

	"github.com/bwmarrin/discordgo"
)

// Commands lists the registered commands grouped by category, two
// categories per page.
func (m *Module) Commands(_ *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.pages.Start(s, i, m.commandListSource(), m.registry.Catalog(), true)
}

func (m *Module) commandListSource() commands.PageSource {
	return commands.PageSource{
		Title:   m.settings.BotName + " Commands list",
		Color:   m.settings.DefaultEmbedColor,
		PerPage: EntriesPerPage,
	}
}

// CommandListPages renders every page of the command list at once.
func (m *Module) CommandListPages() ([]*discordgo.MessageEmbed, error) {
	return renderAll(m.commandListSource(), m.registry.Catalog())
}

func renderAll(src commands.PageSource, entries []catalog.Entry) ([]*discordgo.MessageEmbed, error) {
	pages, err := paginator.New(entries, src.PerPage)
	if err != nil {
		return nil, err
	}
	embeds := []*discordgo.MessageEmbed{commands.RenderPage(src, pages)}
	for pages.Next() {
		embeds = append(embeds, commands.RenderPage(src, pages))
	}
	return embeds, nil
}
