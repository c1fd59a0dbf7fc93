// Package info implements the informational command group: bot status,
// latency, the command list, a tutorial and the about pages.
package info

import (
	"context"
	"time"

	"CarFigures/commands"
	"CarFigures/settings"
	"CarFigures/utils"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "info")

// EntriesPerPage is how many catalog entries each list page shows.
const EntriesPerPage = 2

// Module holds what the info commands need at call time.
type Module struct {
	settings *settings.Settings
	registry *commands.Registry
	pages    *commands.PaginationManager
	machine  func(ctx context.Context) (utils.MachineStats, error)
}

// Setup registers the info command group under the configured group name.
func Setup(reg *commands.Registry, pages *commands.PaginationManager, cfg *settings.Settings) *Module {
	m := &Module{
		settings: cfg,
		registry: reg,
		pages:    pages,
		machine:  utils.MachineInfo,
	}

	reg.RegisterModule(&commands.ModuleInfo{
		Name:        "Info",
		Description: "Simple info commands.",
		Version:     "1.0.0",
		Category:    commands.CategoryInfo,
		SlashCommands: []commands.SlashCommandInfo{{
			Name:        cfg.InfoGroupName,
			Description: "Information about " + cfg.BotName,
			Subcommands: []commands.SubcommandInfo{
				{
					Name:        "ping",
					Description: "Show the bot latency.",
					Handler:     m.Ping,
				},
				{
					Name:        "status",
					Description: "Show information about this bot.",
					Handler:     m.Status,
				},
				{
					Name:        "commands",
					Description: "Show information about the commands inside this bot, categorized by page.",
					Handler:     m.Commands,
				},
				{
					Name:        "tutorial",
					Description: "Displays a simple tutorial on how to use the bot.",
					Handler:     m.Tutorial,
					Cooldown:    utils.NewRateLimiter(1, time.Minute),
				},
				{
					Name:        "about",
					Description: "Information about the bot (the reason it got created, and more coming soon!)",
					Handler:     m.About,
					Cooldown:    utils.NewRateLimiter(1, time.Minute),
				},
			},
		}},
	})
	return m
}
