package help

import (
	"CarFigures/commands"

	"github.com/bwmarrin/discordgo"
)

// Setup registers the /help command.
func Setup(reg *commands.Registry, color int) {
	h := &helpCommand{registry: reg, color: color}

	reg.RegisterModule(&commands.ModuleInfo{
		Name:        "Help",
		Description: "Help system with command documentation",
		Version:     "1.0.0",
		Category:    commands.CategoryInfo,
		SlashCommands: []commands.SlashCommandInfo{
			{
				Name:        "help",
				Description: "Displays help information for a command",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "command",
						Description: "The command to describe, e.g. \"info status\"",
						Required:    true,
					},
				},
				Handler: h.Help,
			},
		},
	})
}
