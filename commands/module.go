package commands

import (
	"CarFigures/bot"
	"CarFigures/utils"

	"github.com/bwmarrin/discordgo"
)

// SlashHandler handles one slash command or subcommand invocation.
type SlashHandler func(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate)

// ComponentHandler handles button and select menu interactions.
type ComponentHandler func(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate)

// SubcommandInfo describes a subcommand of a command group
type SubcommandInfo struct {
	Name        string
	Description string
	Options     []*discordgo.ApplicationCommandOption
	Handler     SlashHandler
	// Cooldown, when set, limits how often a user may run the subcommand.
	Cooldown *utils.RateLimiter
}

// SlashCommandInfo holds information about slash commands. A command with
// Subcommands is registered as a group and its own Handler is ignored.
type SlashCommandInfo struct {
	Name        string
	Description string
	Options     []*discordgo.ApplicationCommandOption
	Handler     SlashHandler
	Cooldown    *utils.RateLimiter
	Subcommands []SubcommandInfo
}

// ModuleInfo represents a complete module with its commands and metadata
type ModuleInfo struct {
	Name          string
	Description   string
	Version       string
	Author        string
	Category      string
	SlashCommands []SlashCommandInfo
}

// category returns the catalog category; modules without one are listed
// under their own name.
func (m *ModuleInfo) category() string {
	if m.Category != "" {
		return m.Category
	}
	return m.Name
}

// CatalogItem is one command as shown in the command list.
type CatalogItem struct {
	name        string
	category    string
	description string
	root        string
}

func (c CatalogItem) Name() string        { return c.name }
func (c CatalogItem) Category() string    { return c.category }
func (c CatalogItem) Description() string { return c.description }

// Root returns the top-level command name, which owns the command id.
func (c CatalogItem) Root() string { return c.root }
