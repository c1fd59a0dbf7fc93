package settings

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "settings")

// Settings holds the bot-wide configuration. It is built once at startup by Load
// and handed to every component that needs it; nothing writes to it afterwards.
type Settings struct {
	BotToken          string
	BotName           string
	Prefix            string
	SpawnAlert        bool
	DefaultEmbedColor int
	ShardCount        *int
	MaxFavorites      *int

	// Wording used in place of the default collectible vocabulary
	CollectibleName       string
	CartypeReplacement    string
	CountryReplacement    string
	HorsepowerReplacement string
	WeightReplacement     string
	HPReplacement         string
	KGReplacement         string

	CarsGroupName   string
	SudoGroupName   string
	InfoGroupName   string
	TradeGroupName  string
	ServerGroupName string
	PlayerGroupName string

	GarageCommandName   string
	ExhibitCommandName  string
	ShowCommandName     string
	InfoCommandName     string
	LastCommandName     string
	FavoriteCommandName string
	GiveCommandName     string
	CountCommandName    string
	RarityCommandName   string
	CompareCommandName  string

	GarageCommandDesc   string
	ExhibitCommandDesc  string
	ShowCommandDesc     string
	InfoCommandDesc     string
	LastCommandDesc     string
	FavoriteCommandDesc string
	GiveCommandDesc     string
	CountCommandDesc    string
	RarityCommandDesc   string
	CompareCommandDesc  string

	// /info status
	RepositoryLink string
	DiscordInvite  string
	TermsOfService string
	PrivacyPolicy  string
	TopGG          string

	// /info about
	InfoDescription string
	InfoHistory     string
	Contributors    []string

	SuperuserGuildIDs []int64
	RootRoleIDs       []int64
	SuperuserRoleIDs  []int64
	LogChannel        *int64

	TeamOwners bool
	CoOwners   []int64

	PrometheusEnabled bool
	PrometheusHost    string
	PrometheusPort    int
}

// Default returns a Settings value in its unconfigured state.
func Default() *Settings {
	return &Settings{
		Contributors:      []string{},
		SuperuserGuildIDs: []int64{},
		RootRoleIDs:       []int64{},
		SuperuserRoleIDs:  []int64{},
		CoOwners:          []int64{},
		PrometheusHost:    "0.0.0.0",
		PrometheusPort:    15260,
	}
}

// Load parses the TOML file at path and binds it into a new Settings.
func Load(path string) (*Settings, error) {
	doc, err := Parse(path)
	if err != nil {
		return nil, err
	}

	s, err := Bind(doc)
	if err != nil {
		return nil, err
	}

	log.WithField("path", path).Info("Loaded the bot settings")
	return s, nil
}
