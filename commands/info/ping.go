package info

import (
	"fmt"
	"time"

	"CarFigures/bot"
	"CarFigures/commands"

	"github.com/bwmarrin/discordgo"
)

// Ping shows the gateway heartbeat latency.
func (m *Module) Ping(_ *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	commands.RespondEphemeral(s, i, pingMessage(s.HeartbeatLatency()))
}

func pingMessage(latency time.Duration) string {
	return fmt.Sprintf("Pong! %dms", latency.Round(time.Millisecond).Milliseconds())
}
