package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"CarFigures/bot"
	"CarFigures/catalog"
	"CarFigures/metrics"
	"CarFigures/paginator"

	"github.com/bwmarrin/discordgo"
)

// PageComponentPrefix marks the custom ids of pagination components.
const PageComponentPrefix = "pages"

// Discord embed limits.
const (
	maxFieldValue  = 1024
	maxMenuOptions = 25
)

// Navigation actions carried in component custom ids.
const (
	actionFirst    = "first"
	actionPrevious = "prev"
	actionNext     = "next"
	actionLast     = "last"
	actionJump     = "jump"
)

// PageSource describes how each page of a paginated list is rendered.
type PageSource struct {
	Title     string
	Color     int
	Thumbnail string
	Footer    string
	PerPage   int
}

// PaginationState holds the state of one paginated message
type PaginationState struct {
	mu        sync.Mutex
	UserID    string
	Source    PageSource
	Pages     *paginator.Paginator[catalog.Entry]
	CreatedAt time.Time
	// LastUsed is refreshed on every navigation; sessions expire from it.
	LastUsed time.Time
}

var (
	errSessionExpired = errors.New("pagination session expired")
	errNotOwner       = errors.New("pagination session belongs to another user")
)

// PaginationManager manages pagination states
type PaginationManager struct {
	states map[string]*PaginationState // session id -> state
	mu     sync.RWMutex
	ttl    time.Duration
	now    func() time.Time
}

// NewPaginationManager creates a manager that forgets sessions older than ttl.
func NewPaginationManager(ttl time.Duration) *PaginationManager {
	return &PaginationManager{
		states: make(map[string]*PaginationState),
		ttl:    ttl,
		now:    time.Now,
	}
}

// AddState adds a pagination state
func (pm *PaginationManager) AddState(sessionID string, state *PaginationState) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.states[sessionID] = state
	metrics.PaginationSessions.Set(float64(len(pm.states)))
}

// GetState retrieves a pagination state
func (pm *PaginationManager) GetState(sessionID string) (*PaginationState, bool) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	state, exists := pm.states[sessionID]
	return state, exists
}

// RemoveState removes a pagination state
func (pm *PaginationManager) RemoveState(sessionID string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.states, sessionID)
	metrics.PaginationSessions.Set(float64(len(pm.states)))
}

// Sweep removes sessions idle for longer than the ttl and returns how many
// were dropped.
func (pm *PaginationManager) Sweep() int {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	now := pm.now()
	dropped := 0
	for id, state := range pm.states {
		state.mu.Lock()
		lastUsed := state.LastUsed
		state.mu.Unlock()
		if now.Sub(lastUsed) >= pm.ttl {
			delete(pm.states, id)
			dropped++
		}
	}
	metrics.PaginationSessions.Set(float64(len(pm.states)))
	return dropped
}

// Run sweeps expired sessions every interval until ctx is done.
func (pm *PaginationManager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := pm.Sweep(); n > 0 {
				log.WithField("count", n).Debug("Dropped expired pagination sessions")
			}
		}
	}
}

// NewSession builds the first page for entries and, when there is more than
// one page, remembers the session so the navigation buttons work.
func (pm *PaginationManager) NewSession(sessionID, userID string, src PageSource, entries []catalog.Entry) (*discordgo.InteractionResponseData, error) {
	perPage := src.PerPage
	if perPage == 0 {
		perPage = 1
	}
	pages, err := paginator.New(entries, perPage)
	if err != nil {
		return nil, err
	}

	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{RenderPage(src, pages)},
	}
	if pages.TotalPages() > 1 {
		data.Components = PageComponents(sessionID, pages)
		now := pm.now()
		pm.AddState(sessionID, &PaginationState{
			UserID:    userID,
			Source:    src,
			Pages:     pages,
			CreatedAt: now,
			LastUsed:  now,
		})
	}
	return data, nil
}

// Start answers i with the first page of entries.
func (pm *PaginationManager) Start(s *discordgo.Session, i *discordgo.InteractionCreate, src PageSource, entries []catalog.Entry, ephemeral bool) {
	data, err := pm.NewSession(i.ID, InteractionUserID(i), src, entries)
	if err != nil {
		log.WithError(err).Error("Could not build paginated list")
		RespondEphemeral(s, i, "Error generating list.")
		return
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.WithError(err).Error("Error sending paginated list")
		pm.RemoveState(i.ID)
	}
}

// HandlePagination handles the navigation buttons and page select menu.
func (pm *PaginationManager) HandlePagination(_ *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()
	sessionID, action, ok := parseCustomID(data.CustomID)
	if !ok {
		log.WithField("custom_id", data.CustomID).Warn("Malformed pagination component")
		return
	}

	var arg string
	if len(data.Values) > 0 {
		arg = data.Values[0]
	}

	embed, components, err := pm.navigate(sessionID, InteractionUserID(i), action, arg)
	var oor *paginator.OutOfRangeError
	switch {
	case errors.Is(err, errSessionExpired):
		RespondEphemeral(s, i, "This menu has expired, run the command again.")
		return
	case errors.Is(err, errNotOwner):
		RespondEphemeral(s, i, "This menu belongs to someone else.")
		return
	case errors.As(err, &oor):
		RespondEphemeral(s, i, fmt.Sprintf("Page %d does not exist, there are %d pages.", oor.Requested+1, oor.TotalPages))
		return
	case err != nil:
		log.WithError(err).WithField("custom_id", data.CustomID).Warn("Rejected pagination action")
		RespondEphemeral(s, i, "Invalid page action.")
		return
	}
	metrics.PaginationEvents.WithLabelValues(action).Inc()

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
	if err != nil {
		log.WithError(err).Error("Error editing paginated message")
	}
}

// navigate applies an action to the session on behalf of userID and renders
// the resulting page. Only the user who opened the session may navigate it.
func (pm *PaginationManager) navigate(sessionID, userID, action, arg string) (*discordgo.MessageEmbed, []discordgo.MessageComponent, error) {
	state, exists := pm.GetState(sessionID)
	if !exists {
		return nil, nil, errSessionExpired
	}
	if userID != state.UserID {
		return nil, nil, errNotOwner
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	state.LastUsed = pm.now()
	if err := applyAction(state.Pages, action, arg); err != nil {
		return nil, nil, err
	}
	return RenderPage(state.Source, state.Pages), PageComponents(sessionID, state.Pages), nil
}

// applyAction moves pages according to a navigation action. Moving past
// either end is a no-op; an invalid jump leaves the position unchanged.
func applyAction(pages *paginator.Paginator[catalog.Entry], action, arg string) error {
	switch action {
	case actionFirst:
		pages.First()
	case actionPrevious:
		pages.Previous()
	case actionNext:
		pages.Next()
	case actionLast:
		pages.Last()
	case actionJump:
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid page %q", arg)
		}
		return pages.Jump(n)
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	return nil
}

// RenderPage builds the embed for the current page, one field per entry.
func RenderPage(src PageSource, pages *paginator.Paginator[catalog.Entry]) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: src.Title,
		Color: src.Color,
	}
	if src.Thumbnail != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: src.Thumbnail}
	}

	for _, entry := range pages.CurrentPage() {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  orBlank(entry.Title),
			Value: truncate(orBlank(entry.Body), maxFieldValue),
		})
	}

	footer := fmt.Sprintf("Page %d/%d", pages.Index()+1, pages.TotalPages())
	if src.Footer != "" {
		footer += " • " + src.Footer
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: footer}
	return embed
}

// PageComponents builds the navigation rows for the current position.
func PageComponents(sessionID string, pages *paginator.Paginator[catalog.Entry]) []discordgo.MessageComponent {
	index, total := pages.Index(), pages.TotalPages()
	atStart, atEnd := index == 0, index == total-1

	rows := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			navButton(sessionID, actionFirst, "⏮️", atStart),
			navButton(sessionID, actionPrevious, "◀️", atStart),
			discordgo.Button{
				Label:    fmt.Sprintf("%d/%d", index+1, total),
				Style:    discordgo.SecondaryButton,
				CustomID: customID(sessionID, "current"),
				Disabled: true,
			},
			navButton(sessionID, actionNext, "▶️", atEnd),
			navButton(sessionID, actionLast, "⏭️", atEnd),
		}},
	}

	if total > 2 {
		var options []discordgo.SelectMenuOption
		for n := 0; n < total && n < maxMenuOptions; n++ {
			options = append(options, discordgo.SelectMenuOption{
				Label:   fmt.Sprintf("Page %d", n+1),
				Value:   strconv.Itoa(n),
				Default: n == index,
			})
		}
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    customID(sessionID, actionJump),
				Placeholder: "Jump to page",
				Options:     options,
			},
		}})
	}
	return rows
}

func navButton(sessionID, action, emoji string, disabled bool) discordgo.Button {
	return discordgo.Button{
		Emoji:    &discordgo.ComponentEmoji{Name: emoji},
		Style:    discordgo.PrimaryButton,
		CustomID: customID(sessionID, action),
		Disabled: disabled,
	}
}

func customID(sessionID, action string) string {
	return PageComponentPrefix + ":" + sessionID + ":" + action
}

func parseCustomID(id string) (sessionID, action string, ok bool) {
	parts := strings.Split(id, ":")
	if len(parts) != 3 || parts[0] != PageComponentPrefix || parts[1] == "" {
		return "", "", false
	}
	return parts[1], parts[2], true
}

// orBlank substitutes a zero-width space, since Discord rejects empty fields.
func orBlank(s string) string {
	if s == "" {
		return "\u200b"
	}
	return s
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
