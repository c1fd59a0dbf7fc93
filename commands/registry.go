package commands

import (
	"strings"
	"sync"
	"time"

	"CarFigures/bot"
	"CarFigures/catalog"
	"CarFigures/metrics"
	"CarFigures/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "commands")

type route struct {
	handler  SlashHandler
	cooldown *utils.RateLimiter
}

// Registry holds the registered modules and routes interactions to them.
type Registry struct {
	mu         sync.RWMutex
	modules    []*ModuleInfo
	byName     map[string]*ModuleInfo
	routes     map[string]route
	components map[string]ComponentHandler
	commandIDs map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:     make(map[string]*ModuleInfo),
		routes:     make(map[string]route),
		components: make(map[string]ComponentHandler),
		commandIDs: make(map[string]string),
	}
}

// RegisterModule registers a complete module and its slash command handlers.
// Registering a module name twice replaces the earlier module.
func (r *Registry) RegisterModule(module *ModuleInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, exists := r.byName[module.Name]; exists {
		for i, m := range r.modules {
			if m == old {
				r.modules = append(r.modules[:i], r.modules[i+1:]...)
				break
			}
		}
		for _, cmd := range old.SlashCommands {
			for key := range r.routes {
				if key == cmd.Name || strings.HasPrefix(key, cmd.Name+" ") {
					delete(r.routes, key)
				}
			}
		}
	}

	r.modules = append(r.modules, module)
	r.byName[module.Name] = module

	for _, cmd := range module.SlashCommands {
		if len(cmd.Subcommands) == 0 {
			r.routes[cmd.Name] = route{handler: cmd.Handler, cooldown: cmd.Cooldown}
			continue
		}
		for _, sub := range cmd.Subcommands {
			r.routes[cmd.Name+" "+sub.Name] = route{handler: sub.Handler, cooldown: sub.Cooldown}
		}
	}
	log.WithField("module", module.Name).Debug("Registered module")
}

// RegisterComponent routes message components whose custom id starts with
// prefix followed by ":".
func (r *Registry) RegisterComponent(prefix string, handler ComponentHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components[prefix] = handler
}

// Modules returns the registered modules in registration order.
func (r *Registry) Modules() []*ModuleInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*ModuleInfo(nil), r.modules...)
}

// ApplicationCommands returns the commands to register with Discord.
func (r *Registry) ApplicationCommands() []*discordgo.ApplicationCommand {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var commands []*discordgo.ApplicationCommand
	for _, module := range r.modules {
		for _, cmd := range module.SlashCommands {
			ac := &discordgo.ApplicationCommand{
				Name:        cmd.Name,
				Description: cmd.Description,
				Options:     cmd.Options,
			}
			if len(cmd.Subcommands) > 0 {
				ac.Options = nil
				for _, sub := range cmd.Subcommands {
					ac.Options = append(ac.Options, &discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        sub.Name,
						Description: sub.Description,
						Options:     sub.Options,
					})
				}
			}
			commands = append(commands, ac)
		}
	}
	return commands
}

// SyncCommands overwrites the application's slash commands with the
// registered ones and remembers their ids for mentions. An empty guildID
// registers global commands.
func (r *Registry) SyncCommands(s *discordgo.Session, guildID string) error {
	log.WithField("guild", guildID).Info("Registering slash commands")

	user := BotUser(s)
	if user == nil {
		return errors.New("session is not ready")
	}
	created, err := s.ApplicationCommandBulkOverwrite(user.ID, guildID, r.ApplicationCommands())
	if err != nil {
		return errors.Wrap(err, "could not register slash commands")
	}
	r.SetCommandIDs(created)

	log.WithField("count", len(created)).Info("Slash commands registered successfully")
	return nil
}

// SetCommandIDs records the ids Discord assigned to the top-level commands.
func (r *Registry) SetCommandIDs(commands []*discordgo.ApplicationCommand) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cmd := range commands {
		r.commandIDs[cmd.Name] = cmd.ID
	}
}

// CommandID returns the Discord id of a top-level command, if known.
func (r *Registry) CommandID(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.commandIDs[name]
}

// CatalogItems lists every command, subcommands by their qualified name, in
// module registration order.
func (r *Registry) CatalogItems() []catalog.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []catalog.Item
	for _, module := range r.modules {
		for _, cmd := range module.SlashCommands {
			if len(cmd.Subcommands) == 0 {
				items = append(items, CatalogItem{
					name:        cmd.Name,
					category:    module.category(),
					description: cmd.Description,
					root:        cmd.Name,
				})
				continue
			}
			for _, sub := range cmd.Subcommands {
				items = append(items, CatalogItem{
					name:        cmd.Name + " " + sub.Name,
					category:    module.category(),
					description: sub.Description,
					root:        cmd.Name,
				})
			}
		}
	}
	return items
}

// PruneCooldowns drops expired cooldown windows of every command.
func (r *Registry) PruneCooldowns() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rt := range r.routes {
		if rt.cooldown != nil {
			rt.cooldown.Prune()
		}
	}
}

// Mention renders a catalog item as a clickable command mention.
func (r *Registry) Mention(it catalog.Item) string {
	root := it.Name()
	if ci, ok := it.(CatalogItem); ok {
		root = ci.Root()
	}
	return utils.MentionAppCommand(it.Name(), r.CommandID(root))
}

// Catalog aggregates the public commands into display entries.
func (r *Registry) Catalog() []catalog.Entry {
	items := catalog.Filter(r.CatalogItems(), HiddenCategories...)
	return catalog.Aggregate(items, catalog.WithNameFormat(r.Mention))
}

// HandleInteraction returns the discordgo handler dispatching slash commands
// and message components to their registered handlers.
func (r *Registry) HandleInteraction(b *bot.Bot) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			r.dispatchCommand(b, s, i)
		case discordgo.InteractionMessageComponent:
			r.dispatchComponent(b, s, i)
		}
	}
}

func (r *Registry) dispatchCommand(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	key := commandKey(i.ApplicationCommandData())

	r.mu.RLock()
	rt, exists := r.routes[key]
	r.mu.RUnlock()
	if !exists || rt.handler == nil {
		log.WithField("command", key).Warn("Received unknown command")
		return
	}

	userID := InteractionUserID(i)
	if rt.cooldown != nil && !rt.cooldown.Allow(userID, key) {
		metrics.CommandsRateLimited.WithLabelValues(key).Inc()
		wait := rt.cooldown.RetryAfter(userID, key).Round(time.Second)
		RespondEphemeral(s, i, "This command is on cooldown. Try again in "+wait.String()+".")
		return
	}

	metrics.CommandsInvoked.WithLabelValues(key).Inc()
	log.WithFields(logrus.Fields{"command": key, "user": userID}).Debug("Running command")
	rt.handler(b, s, i)
}

func (r *Registry) dispatchComponent(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	prefix, _, _ := strings.Cut(customID, ":")

	r.mu.RLock()
	handler, exists := r.components[prefix]
	r.mu.RUnlock()
	if !exists {
		log.WithField("custom_id", customID).Warn("Received unknown component")
		return
	}
	handler(b, s, i)
}

// commandKey joins a command and its subcommand, e.g. "info status".
func commandKey(data discordgo.ApplicationCommandInteractionData) string {
	key := data.Name
	for _, opt := range data.Options {
		if opt.Type == discordgo.ApplicationCommandOptionSubCommand {
			return key + " " + opt.Name
		}
	}
	return key
}

// InteractionUserID returns the id of the user who triggered i, in guilds or DMs.
func InteractionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
