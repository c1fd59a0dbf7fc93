package info

import (
	"fmt"

	"CarFigures/bot"
	"CarFigures/commands"
	"CarFigures/settings"

	"github.com/bwmarrin/discordgo"
)

// Tutorial explains the basics to new users.
func (m *Module) Tutorial(_ *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	var avatar string
	if u := commands.BotUser(s); u != nil {
		avatar = u.AvatarURL("")
	}
	commands.RespondEmbed(s, i, TutorialEmbed(m.settings, avatar), true)
}

// TutorialEmbed renders the /info tutorial embed.
func TutorialEmbed(cfg *settings.Settings, avatarURL string) *discordgo.MessageEmbed {
	name, collectible, group := cfg.BotName, cfg.CollectibleName, cfg.CarsGroupName

	embed := &discordgo.MessageEmbed{
		Title:       "Tutorial",
		Description: "Tutorial on how to use the bot.",
		Color:       cfg.DefaultEmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: fmt.Sprintf("What is %s?", name),
				Value: fmt.Sprintf("%s is a bot that allows you to collect %ss "+
					"by catching them, trading for them, and having fun with all of our commands!", name, collectible),
			},
			{
				Name: fmt.Sprintf("How can I catch a %s?", collectible),
				Value: fmt.Sprintf("To catch a %s, you can simply tap the blue `Catch me!` button "+
					"when a %s spawns, type the name of it, and if you get "+
					"it right, it will be added to your showroom!", collectible, collectible),
			},
			{
				Name:  "How can I show my showroom?",
				Value: fmt.Sprintf("To see the cars you have caught, you can\nuse the `/%s` command!", group),
			},
			{
				Name: fmt.Sprintf("How can I get more %s?", group),
				Value: fmt.Sprintf("To get more %[1]s, you can simply catch more %[1]s! "+
					"The more %[1]s you catch, the rarer the %[1]s you will get. "+
					"You can also trade with other users in order to get more %[1]s!", group),
			},
		},
	}
	if avatarURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatarURL}
	}
	return embed
}
