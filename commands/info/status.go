package info

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"CarFigures/bot"
	"CarFigures/commands"
	"CarFigures/settings"
	"CarFigures/utils"

	"github.com/bwmarrin/discordgo"
)

// StatusCounts are the figures shown in the "Bot Info" block.
type StatusCounts struct {
	Collectibles int64
	Caught       int64
	Players      int64
	Servers      int64
}

// Counter is the part of the bot that can count database rows.
type Counter interface {
	EnabledCollectibles(ctx context.Context) (int64, error)
	RowCountEstimate(ctx context.Context, table string) (int64, error)
}

// Status shows bot, machine and link information.
func (m *Module) Status(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		log.WithError(err).Error("Could not defer status response")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	counts := gatherCounts(ctx, b)
	counts.Servers = int64(b.GuildCount())

	machine, err := m.machine(ctx)
	if err != nil {
		log.WithError(err).Warn("Could not read machine info")
	}

	var appID, avatar string
	if u := commands.BotUser(s); u != nil {
		appID = u.ID
		avatar = u.AvatarURL("")
	}

	params, err := b.InstallParams()
	if err != nil {
		log.WithError(err).Warn("Could not read install params")
	}

	embed := StatusEmbed(m.settings, counts, machine, inviteLink(appID, params), avatar)
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		log.WithError(err).Error("Could not send status embed")
	}
}

// gatherCounts collects what it can; a failing query leaves its count at zero.
func gatherCounts(ctx context.Context, c Counter) StatusCounts {
	var counts StatusCounts
	var err error

	if counts.Collectibles, err = c.EnabledCollectibles(ctx); err != nil {
		log.WithError(err).Warn("Could not count collectibles")
	}
	if counts.Players, err = c.RowCountEstimate(ctx, "player"); err != nil {
		log.WithError(err).Warn("Could not estimate players")
	}
	if counts.Caught, err = c.RowCountEstimate(ctx, "carinstance"); err != nil {
		log.WithError(err).Warn("Could not estimate caught instances")
	}
	return counts
}

// inviteLink prefers the application's own install params over the default
// permission set.
func inviteLink(appID string, params *bot.InstallParams) string {
	if params == nil {
		return utils.InviteURL(appID, utils.DefaultInvitePermissions)
	}
	return utils.InviteURL(appID, params.Permissions, params.Scopes...)
}

// StatusEmbed renders the /info status embed.
func StatusEmbed(cfg *settings.Settings, counts StatusCounts, machine utils.MachineStats, inviteURL, avatarURL string) *discordgo.MessageEmbed {
	contributors := make([]string, 0, len(cfg.Contributors))
	for _, c := range cfg.Contributors {
		contributors = append(contributors, "\u200b **⋄** "+c)
	}
	contributorList := strings.Join(contributors, "\n")
	if contributorList == "" {
		contributorList = "\u200b"
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("❑ %s Bot Status", cfg.BotName),
		Color: cfg.DefaultEmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "∆ Bot Info\n",
				Value: fmt.Sprintf("\u200b **⋄ %ss Count: ** %s • %s **Caught**\n", utils.Title(cfg.CollectibleName), utils.FormatCount(counts.Collectibles), utils.FormatCount(counts.Caught)) +
					fmt.Sprintf("\u200b **⋄ Player Count: ** %s\n", utils.FormatCount(counts.Players)) +
					fmt.Sprintf("\u200b **⋄ Server Count: ** %s\n", utils.FormatCount(counts.Servers)) +
					fmt.Sprintf("\u200b **⋄  Operating Version: [%s](%s)**\n\n", bot.Version, cfg.RepositoryLink),
			},
			{
				Name: "∇ Machine Info\n",
				Value: fmt.Sprintf("\u200b **⋄ CPU:** %v%%\n", machine.CPUPercent) +
					fmt.Sprintf("\u200b **⋄ Memory:** %d/%dMB • %v%%\n", machine.MemoryUsedMB, machine.MemoryTotalMB, machine.MemoryPercent) +
					fmt.Sprintf("\u200b **⋄ Disk:** %d/%dGB • %v%%\n\n", machine.DiskUsedGB, machine.DiskTotalGB, machine.DiskPercent),
			},
			{
				Name:  "⋊ Contributors",
				Value: contributorList,
			},
			{
				Name: "⋇ Links",
				Value: fmt.Sprintf("[Discord server](%s) • [Invite me](%s) • [Source code and issues](%s)\n", cfg.DiscordInvite, inviteURL, cfg.RepositoryLink) +
					fmt.Sprintf("[Terms of Service](%s) • [Privacy policy](%s) • [Top.gg Link](%s)", cfg.TermsOfService, cfg.PrivacyPolicy, cfg.TopGG),
			},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: versionFooter()},
	}
	if avatarURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatarURL}
	}
	return embed
}

func versionFooter() string {
	return fmt.Sprintf("Go %s • discordgo %s", strings.TrimPrefix(runtime.Version(), "go"), discordgo.VERSION)
}
