package info

import (
	"CarFigures/bot"
	"CarFigures/catalog"
	"CarFigures/commands"
	"CarFigures/settings"

	"github.com/bwmarrin/discordgo"
)

// About pages through the bot description and history.
func (m *Module) About(_ *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	var avatar string
	if u := commands.BotUser(s); u != nil {
		avatar = u.AvatarURL("")
	}
	src := commands.PageSource{
		Title:     "About " + m.settings.BotName,
		Color:     m.settings.DefaultEmbedColor,
		Thumbnail: avatar,
		Footer:    versionFooter(),
		PerPage:   EntriesPerPage,
	}
	m.pages.Start(s, i, src, AboutEntries(m.settings), true)
}

// AboutEntries returns the about pages: each section is followed by a blank
// entry so that every page holds one section.
func AboutEntries(cfg *settings.Settings) []catalog.Entry {
	return []catalog.Entry{
		{Title: "Brief Description", Body: cfg.InfoDescription},
		{},
		{Title: "History", Body: cfg.InfoHistory},
		{},
	}
}
