package info

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"CarFigures/bot"
	"CarFigures/commands"
	"CarFigures/settings"
	"CarFigures/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() *settings.Settings {
	cfg := settings.Default()
	cfg.BotName = "CarFigures"
	cfg.CollectibleName = "carfigure"
	cfg.CarsGroupName = "cars"
	cfg.InfoGroupName = "about-bot"
	cfg.DefaultEmbedColor = 0x1F8B4C
	cfg.RepositoryLink = "https://github.com/example/carfigures"
	cfg.DiscordInvite = "https://discord.gg/example"
	cfg.TermsOfService = "https://example.com/tos"
	cfg.PrivacyPolicy = "https://example.com/privacy"
	cfg.TopGG = "https://top.gg/bot/1"
	cfg.InfoDescription = "A bot to collect cars."
	cfg.InfoHistory = "Started as a fork."
	cfg.Contributors = []string{"alice", "bob"}
	return cfg
}

func TestSetup_RegistersGroupUnderConfiguredName(t *testing.T) {
	reg := commands.NewRegistry()
	Setup(reg, commands.NewPaginationManager(time.Minute), testSettings())

	cmds := reg.ApplicationCommands()
	require.Len(t, cmds, 1)
	assert.Equal(t, "about-bot", cmds[0].Name)

	var names []string
	for _, opt := range cmds[0].Options {
		names = append(names, opt.Name)
	}
	assert.Equal(t, []string{"ping", "status", "commands", "tutorial", "about"}, names)
}

func TestCommandListPages(t *testing.T) {
	reg := commands.NewRegistry()
	m := Setup(reg, commands.NewPaginationManager(time.Minute), testSettings())
	for _, name := range []string{"Cars", "Trade", "SuperUser"} {
		reg.RegisterModule(&commands.ModuleInfo{
			Name:     name,
			Category: name,
			SlashCommands: []commands.SlashCommandInfo{
				{Name: strings.ToLower(name), Description: name + " commands"},
			},
		})
	}

	pages, err := m.CommandListPages()
	require.NoError(t, err)
	require.Len(t, pages, 2, "three visible categories at two per page")

	assert.Equal(t, "CarFigures Commands list", pages[0].Title)
	assert.Equal(t, 0x1F8B4C, pages[0].Color)
	require.Len(t, pages[0].Fields, 2)
	assert.Equal(t, "Category: Info", pages[0].Fields[0].Name)
	assert.Contains(t, pages[0].Fields[0].Value, "`/about-bot about`: Information about the bot")
	assert.True(t, strings.Index(pages[0].Fields[0].Value, "about-bot about") < strings.Index(pages[0].Fields[0].Value, "about-bot commands"))
	assert.Equal(t, "Category: Cars", pages[0].Fields[1].Name)

	require.Len(t, pages[1].Fields, 1)
	assert.Equal(t, "Category: Trade", pages[1].Fields[0].Name)
	assert.Equal(t, "Page 2/2", pages[1].Footer.Text)
}

func TestCommandListPages_NoCommands(t *testing.T) {
	m := &Module{settings: testSettings(), registry: commands.NewRegistry()}

	pages, err := m.CommandListPages()
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Empty(t, pages[0].Fields)
}

func TestPingMessage(t *testing.T) {
	assert.Equal(t, "Pong! 42ms", pingMessage(42*time.Millisecond))
	assert.Equal(t, "Pong! 0ms", pingMessage(0))
}

type fakeCounter struct {
	rows map[string]int64
	err  error
}

func (f fakeCounter) EnabledCollectibles(context.Context) (int64, error) {
	return f.rows["car"], f.err
}

func (f fakeCounter) RowCountEstimate(_ context.Context, table string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.rows[table], nil
}

func TestGatherCounts(t *testing.T) {
	counts := gatherCounts(context.Background(), fakeCounter{rows: map[string]int64{
		"car": 120, "player": 5000, "carinstance": 1234567,
	}})
	assert.Equal(t, StatusCounts{Collectibles: 120, Players: 5000, Caught: 1234567}, counts)

	counts = gatherCounts(context.Background(), fakeCounter{err: errors.New("db down")})
	assert.Equal(t, StatusCounts{}, counts)
}

func TestStatusEmbed(t *testing.T) {
	cfg := testSettings()
	counts := StatusCounts{Collectibles: 120, Caught: 1234567, Players: 5000, Servers: 42}
	machine := utils.MachineStats{
		CPUPercent: 12.5, MemoryUsedMB: 512, MemoryTotalMB: 2048, MemoryPercent: 25,
		DiskUsedGB: 10, DiskTotalGB: 100, DiskPercent: 10,
	}

	embed := StatusEmbed(cfg, counts, machine, "https://invite", "https://avatar")

	assert.Equal(t, "❑ CarFigures Bot Status", embed.Title)
	assert.Equal(t, 0x1F8B4C, embed.Color)
	assert.Equal(t, "https://avatar", embed.Thumbnail.URL)
	require.Len(t, embed.Fields, 4)

	info := embed.Fields[0].Value
	assert.Contains(t, info, "Carfigures Count: ** 120 • 1,234,567 **Caught**")
	assert.Contains(t, info, "Player Count: ** 5,000")
	assert.Contains(t, info, "Server Count: ** 42")
	assert.Contains(t, info, "(https://github.com/example/carfigures)")

	mach := embed.Fields[1].Value
	assert.Contains(t, mach, "CPU:** 12.5%")
	assert.Contains(t, mach, "Memory:** 512/2048MB • 25%")
	assert.Contains(t, mach, "Disk:** 10/100GB • 10%")

	assert.Equal(t, "\u200b **⋄** alice\n\u200b **⋄** bob", embed.Fields[2].Value)

	links := embed.Fields[3].Value
	assert.Contains(t, links, "[Invite me](https://invite)")
	assert.Contains(t, links, "[Top.gg Link](https://top.gg/bot/1)")
	assert.Contains(t, embed.Footer.Text, "discordgo")
}

func TestInviteLink(t *testing.T) {
	fallback, err := url.Parse(inviteLink("42", nil))
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatInt(utils.DefaultInvitePermissions, 10), fallback.Query().Get("permissions"))
	assert.Equal(t, "bot applications.commands", fallback.Query().Get("scope"))

	custom, err := url.Parse(inviteLink("42", &bot.InstallParams{Scopes: []string{"bot"}, Permissions: 8}))
	require.NoError(t, err)
	assert.Equal(t, "42", custom.Query().Get("client_id"))
	assert.Equal(t, "8", custom.Query().Get("permissions"))
	assert.Equal(t, "bot", custom.Query().Get("scope"))
}

func TestStatusEmbed_NoContributors(t *testing.T) {
	cfg := testSettings()
	cfg.Contributors = nil

	embed := StatusEmbed(cfg, StatusCounts{}, utils.MachineStats{}, "", "")
	assert.Equal(t, "\u200b", embed.Fields[2].Value)
	assert.Nil(t, embed.Thumbnail)
}

func TestTutorialEmbed(t *testing.T) {
	embed := TutorialEmbed(testSettings(), "")

	assert.Equal(t, "Tutorial", embed.Title)
	require.Len(t, embed.Fields, 4)
	assert.Equal(t, "What is CarFigures?", embed.Fields[0].Name)
	assert.Contains(t, embed.Fields[0].Value, "collect carfigures")
	assert.Equal(t, "How can I catch a carfigure?", embed.Fields[1].Name)
	assert.Contains(t, embed.Fields[2].Value, "`/cars`")
	assert.Equal(t, "How can I get more cars?", embed.Fields[3].Name)
}

func TestAboutEntries(t *testing.T) {
	entries := AboutEntries(testSettings())
	require.Len(t, entries, 4)

	pages, err := renderAll(commands.PageSource{Title: "About CarFigures", PerPage: EntriesPerPage}, entries)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "Brief Description", pages[0].Fields[0].Name)
	assert.Equal(t, "A bot to collect cars.", pages[0].Fields[0].Value)
	assert.Equal(t, "History", pages[1].Fields[0].Name)
	assert.Equal(t, "Started as a fork.", pages[1].Fields[0].Value)
}
