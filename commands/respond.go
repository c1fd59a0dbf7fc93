package commands

import (
	"github.com/bwmarrin/discordgo"
)

// RespondEphemeral answers an interaction with a message only the user sees.
func RespondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.WithError(err).Error("Could not respond to interaction")
	}
}

// RespondEmbed answers an interaction with a single embed.
func RespondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.WithError(err).Error("Could not respond to interaction")
	}
}

// BotUser returns the bot's own user from the session state, or nil before
// the session is ready.
func BotUser(s *discordgo.Session) *discordgo.User {
	if s.State == nil {
		return nil
	}
	s.State.RLock()
	defer s.State.RUnlock()
	return s.State.User
}
