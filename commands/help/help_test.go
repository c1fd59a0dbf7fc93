package help

import (
	"testing"

	"CarFigures/commands"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHelp() *helpCommand {
	reg := commands.NewRegistry()
	reg.RegisterModule(&commands.ModuleInfo{
		Name:     "Info",
		Category: commands.CategoryInfo,
		SlashCommands: []commands.SlashCommandInfo{{
			Name:        "info",
			Description: "Info commands",
			Subcommands: []commands.SubcommandInfo{
				{Name: "status", Description: "Show information about this bot."},
			},
		}},
	})
	reg.RegisterModule(&commands.ModuleInfo{
		Name:     "Sudo",
		Category: commands.CategorySuperUser,
		SlashCommands: []commands.SlashCommandInfo{
			{Name: "sudo", Description: "Admin tools"},
		},
	})
	reg.SetCommandIDs([]*discordgo.ApplicationCommand{{Name: "info", ID: "7"}})
	return &helpCommand{registry: reg, color: 0xABCDEF}
}

func TestDescribe(t *testing.T) {
	h := testHelp()

	for _, name := range []string{"info status", "/info status", "  INFO STATUS "} {
		embed, ok := h.describe(name)
		require.True(t, ok, name)
		assert.Equal(t, "Help: info status", embed.Title)
		assert.Equal(t, "Show information about this bot.", embed.Description)
		assert.Equal(t, 0xABCDEF, embed.Color)
		assert.Equal(t, "</info status:7>", embed.Fields[0].Value)
		assert.Equal(t, commands.CategoryInfo, embed.Fields[1].Value)
	}
}

func TestDescribe_UnknownOrHidden(t *testing.T) {
	h := testHelp()

	_, ok := h.describe("garage")
	assert.False(t, ok)

	_, ok = h.describe("sudo")
	assert.False(t, ok, "hidden categories are not described")
}

func TestSetup(t *testing.T) {
	reg := commands.NewRegistry()
	Setup(reg, 0)

	cmds := reg.ApplicationCommands()
	require.Len(t, cmds, 1)
	assert.Equal(t, "help", cmds[0].Name)
	require.Len(t, cmds[0].Options, 1)
	assert.True(t, cmds[0].Options[0].Required)
}
