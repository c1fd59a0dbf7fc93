package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
)

// DefaultInvitePermissions is requested by the invite link when the
// application has no install parameters of its own.
const DefaultInvitePermissions int64 = discordgo.PermissionManageWebhooks |
	discordgo.PermissionManageEmojis |
	discordgo.PermissionViewChannel |
	discordgo.PermissionSendMessages |
	discordgo.PermissionEmbedLinks |
	discordgo.PermissionAttachFiles |
	discordgo.PermissionUseExternalEmojis

// MentionAppCommand renders a clickable slash command mention. Without a
// known command id it falls back to plain "/name" text.
func MentionAppCommand(qualifiedName, commandID string) string {
	if commandID == "" {
		return "`/" + qualifiedName + "`"
	}
	return fmt.Sprintf("</%s:%s>", qualifiedName, commandID)
}

// InviteURL builds the OAuth2 link used to add the bot to a server. Without
// scopes it asks for "bot" and "applications.commands".
func InviteURL(applicationID string, permissions int64, scopes ...string) string {
	if len(scopes) == 0 {
		scopes = []string{"bot", "applications.commands"}
	}
	q := url.Values{}
	q.Set("client_id", applicationID)
	q.Set("permissions", strconv.FormatInt(permissions, 10))
	q.Set("scope", strings.Join(scopes, " "))
	return "https://discord.com/oauth2/authorize?" + q.Encode()
}

// FormatCount adds thousands separators, e.g. 12345 -> "12,345".
func FormatCount(n int64) string {
	return humanize.Comma(n)
}

// Title upper-cases the first letter of every word.
func Title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
