package settings

import (
	"strconv"
	"strings"
)

// binding copies one configuration path into a Settings field.
type binding struct {
	path     string
	optional bool
	apply    func(s *Settings, path string, v any) error
}

// bindings lists every key read from the configuration file, in the order
// they are checked. The first failure stops the load.
var bindings = []binding{
	str("settings.bot_token", func(s *Settings) *string { return &s.BotToken }),
	str("settings.bot_name", func(s *Settings) *string { return &s.BotName }),
	str("settings.text_prefix", func(s *Settings) *string { return &s.Prefix }),
	boolean("settings.spawnalert", func(s *Settings) *bool { return &s.SpawnAlert }),
	hexColor("settings.default_embed_color", func(s *Settings) *int { return &s.DefaultEmbedColor }),
	optional(optInt("settings.shard_count", func(s *Settings) **int { return &s.ShardCount })),
	optional(optInt("settings.max_favorites", func(s *Settings) **int { return &s.MaxFavorites })),

	str("appearance.collectible_name", func(s *Settings) *string { return &s.CollectibleName }),
	str("appearance.cartype", func(s *Settings) *string { return &s.CartypeReplacement }),
	str("appearance.country", func(s *Settings) *string { return &s.CountryReplacement }),
	str("appearance.horsepower", func(s *Settings) *string { return &s.HorsepowerReplacement }),
	str("appearance.weight", func(s *Settings) *string { return &s.WeightReplacement }),
	str("appearance.hp", func(s *Settings) *string { return &s.HPReplacement }),
	str("appearance.kg", func(s *Settings) *string { return &s.KGReplacement }),

	str("commands.groups.cars", func(s *Settings) *string { return &s.CarsGroupName }),
	str("commands.groups.sudo", func(s *Settings) *string { return &s.SudoGroupName }),
	str("commands.groups.info", func(s *Settings) *string { return &s.InfoGroupName }),
	str("commands.groups.trade", func(s *Settings) *string { return &s.TradeGroupName }),
	str("commands.groups.server", func(s *Settings) *string { return &s.ServerGroupName }),
	str("commands.groups.player", func(s *Settings) *string { return &s.PlayerGroupName }),

	str("commands.names.garage", func(s *Settings) *string { return &s.GarageCommandName }),
	str("commands.names.exhibit", func(s *Settings) *string { return &s.ExhibitCommandName }),
	str("commands.names.show", func(s *Settings) *string { return &s.ShowCommandName }),
	str("commands.names.info", func(s *Settings) *string { return &s.InfoCommandName }),
	str("commands.names.last", func(s *Settings) *string { return &s.LastCommandName }),
	str("commands.names.favorite", func(s *Settings) *string { return &s.FavoriteCommandName }),
	str("commands.names.give", func(s *Settings) *string { return &s.GiveCommandName }),
	str("commands.names.count", func(s *Settings) *string { return &s.CountCommandName }),
	str("commands.names.rarity", func(s *Settings) *string { return &s.RarityCommandName }),
	str("commands.names.compare", func(s *Settings) *string { return &s.CompareCommandName }),

	str("commands.descs.garage", func(s *Settings) *string { return &s.GarageCommandDesc }),
	str("commands.descs.exhibit", func(s *Settings) *string { return &s.ExhibitCommandDesc }),
	str("commands.descs.show", func(s *Settings) *string { return &s.ShowCommandDesc }),
	str("commands.descs.info", func(s *Settings) *string { return &s.InfoCommandDesc }),
	str("commands.descs.last", func(s *Settings) *string { return &s.LastCommandDesc }),
	str("commands.descs.favorite", func(s *Settings) *string { return &s.FavoriteCommandDesc }),
	str("commands.descs.give", func(s *Settings) *string { return &s.GiveCommandDesc }),
	str("commands.descs.count", func(s *Settings) *string { return &s.CountCommandDesc }),
	str("commands.descs.rarity", func(s *Settings) *string { return &s.RarityCommandDesc }),
	str("commands.descs.compare", func(s *Settings) *string { return &s.CompareCommandDesc }),

	str("info.links.repository_link", func(s *Settings) *string { return &s.RepositoryLink }),
	str("info.links.discord_invite", func(s *Settings) *string { return &s.DiscordInvite }),
	str("info.links.terms_of_service", func(s *Settings) *string { return &s.TermsOfService }),
	str("info.links.privacy_policy", func(s *Settings) *string { return &s.PrivacyPolicy }),
	str("info.links.top_gg", func(s *Settings) *string { return &s.TopGG }),

	str("info.about.description", func(s *Settings) *string { return &s.InfoDescription }),
	str("info.about.history", func(s *Settings) *string { return &s.InfoHistory }),
	strList("info.about.contributors", func(s *Settings) *[]string { return &s.Contributors }),

	intList("superuser.guild_ids", func(s *Settings) *[]int64 { return &s.SuperuserGuildIDs }),
	intList("superuser.root_role_ids", func(s *Settings) *[]int64 { return &s.RootRoleIDs }),
	intList("superuser.superuser_role_ids", func(s *Settings) *[]int64 { return &s.SuperuserRoleIDs }),
	optInt64("superuser.log_channel", func(s *Settings) **int64 { return &s.LogChannel }),

	boolean("owners.team_members_are_owners", func(s *Settings) *bool { return &s.TeamOwners }),
	intList("owners.co_owners", func(s *Settings) *[]int64 { return &s.CoOwners }),

	boolean("prometheus.enabled", func(s *Settings) *bool { return &s.PrometheusEnabled }),
	str("prometheus.host", func(s *Settings) *string { return &s.PrometheusHost }),
	integer("prometheus.port", func(s *Settings) *int { return &s.PrometheusPort }),
}

// Bind validates doc against the binding table and returns the resulting
// Settings. Nothing is returned unless every binding succeeds.
func Bind(doc Document) (*Settings, error) {
	s := Default()
	for _, b := range bindings {
		v, ok := doc.Lookup(b.path)
		if !ok {
			if b.optional {
				continue
			}
			return nil, &MissingKeyError{Path: b.path}
		}
		if err := b.apply(s, b.path, v); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// RequiredPaths returns the configuration paths that must be present, in
// the order they are checked.
func RequiredPaths() []string {
	paths := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.optional {
			paths = append(paths, b.path)
		}
	}
	return paths
}

func optional(b binding) binding {
	b.optional = true
	return b
}

func str(path string, field func(*Settings) *string) binding {
	return binding{path: path, apply: func(s *Settings, path string, v any) error {
		x, ok := v.(string)
		if !ok {
			return &TypeMismatchError{Path: path, Expected: "string", Actual: typeName(v)}
		}
		*field(s) = x
		return nil
	}}
}

func boolean(path string, field func(*Settings) *bool) binding {
	return binding{path: path, apply: func(s *Settings, path string, v any) error {
		x, ok := v.(bool)
		if !ok {
			return &TypeMismatchError{Path: path, Expected: "boolean", Actual: typeName(v)}
		}
		*field(s) = x
		return nil
	}}
}

func integer(path string, field func(*Settings) *int) binding {
	return binding{path: path, apply: func(s *Settings, path string, v any) error {
		x, ok := v.(int64)
		if !ok {
			return &TypeMismatchError{Path: path, Expected: "integer", Actual: typeName(v)}
		}
		*field(s) = int(x)
		return nil
	}}
}

func optInt(path string, field func(*Settings) **int) binding {
	return binding{path: path, apply: func(s *Settings, path string, v any) error {
		x, ok := v.(int64)
		if !ok {
			return &TypeMismatchError{Path: path, Expected: "integer", Actual: typeName(v)}
		}
		n := int(x)
		*field(s) = &n
		return nil
	}}
}

func optInt64(path string, field func(*Settings) **int64) binding {
	return binding{path: path, apply: func(s *Settings, path string, v any) error {
		x, ok := v.(int64)
		if !ok {
			return &TypeMismatchError{Path: path, Expected: "integer", Actual: typeName(v)}
		}
		*field(s) = &x
		return nil
	}}
}

func strList(path string, field func(*Settings) *[]string) binding {
	return binding{path: path, apply: func(s *Settings, path string, v any) error {
		arr, ok := v.([]any)
		if !ok {
			return &TypeMismatchError{Path: path, Expected: "array of strings", Actual: typeName(v)}
		}
		out := make([]string, 0, len(arr))
		for _, item := range arr {
			x, ok := item.(string)
			if !ok {
				return &TypeMismatchError{Path: path, Expected: "array of strings", Actual: "array containing " + typeName(item)}
			}
			out = append(out, x)
		}
		*field(s) = out
		return nil
	}}
}

func intList(path string, field func(*Settings) *[]int64) binding {
	return binding{path: path, apply: func(s *Settings, path string, v any) error {
		arr, ok := v.([]any)
		if !ok {
			return &TypeMismatchError{Path: path, Expected: "array of integers", Actual: typeName(v)}
		}
		out := make([]int64, 0, len(arr))
		for _, item := range arr {
			x, ok := item.(int64)
			if !ok {
				return &TypeMismatchError{Path: path, Expected: "array of integers", Actual: "array containing " + typeName(item)}
			}
			out = append(out, x)
		}
		*field(s) = out
		return nil
	}}
}

// hexColor reads a color written as a hex string, e.g. "1F8B4C". A leading
// "#" or "0x" is accepted.
func hexColor(path string, field func(*Settings) *int) binding {
	return binding{path: path, apply: func(s *Settings, path string, v any) error {
		x, ok := v.(string)
		if !ok {
			return &TypeMismatchError{Path: path, Expected: "hex color string", Actual: typeName(v)}
		}
		n, err := ParseHexColor(x)
		if err != nil {
			return &InvalidFormatError{Path: path, Value: x, Err: err}
		}
		*field(s) = n
		return nil
	}}
}

// ParseHexColor converts a base-16 color string into its integer value.
func ParseHexColor(s string) (int, error) {
	trimmed := strings.TrimPrefix(s, "#")
	trimmed = strings.TrimPrefix(strings.TrimPrefix(trimmed, "0x"), "0X")
	n, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
