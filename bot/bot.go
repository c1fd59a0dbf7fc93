package bot

import (
	"context"
	"database/sql"
	"time"

	"CarFigures/settings"

	"github.com/bwmarrin/discordgo"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Version is reported by /info status.
const Version = "2.4.0"

var log = logrus.WithField("prefix", "bot")

type Bot struct {
	Db *sql.DB
	// Client is shard 0; REST calls and command registration go through it.
	Client   *discordgo.Session
	Shards   []*discordgo.Session
	Settings *settings.Settings
}

// NewBot creates one Discord session per shard and, when dbURL is set, the
// database handle. The connections to Discord are not opened here.
func NewBot(cfg *settings.Settings, token string, dbURL string) (*Bot, error) {
	count := 1
	if cfg.ShardCount != nil && *cfg.ShardCount > 1 {
		count = *cfg.ShardCount
	}
	shards, err := newShards(token, count)
	if err != nil {
		return nil, err
	}

	b := &Bot{Client: shards[0], Shards: shards, Settings: cfg}
	if dbURL == "" {
		log.Warn("DATABASE_URL not set, status counts will be unavailable")
		return b, nil
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, errors.Wrap(err, "could not open database")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "could not reach database")
	}
	b.Db = db

	return b, nil
}

// newShards builds the sessions for shard ids 0..count-1.
func newShards(token string, count int) ([]*discordgo.Session, error) {
	shards := make([]*discordgo.Session, 0, count)
	for id := 0; id < count; id++ {
		s, err := discordgo.New("Bot " + token)
		if err != nil {
			return nil, errors.Wrap(err, "could not create discord session")
		}
		s.Identify.Intents = discordgo.IntentsGuilds
		s.ShardID = id
		s.ShardCount = count
		shards = append(shards, s)
	}
	return shards, nil
}

// AddHandler registers handler on every shard.
func (b *Bot) AddHandler(handler interface{}) {
	for _, s := range b.Shards {
		s.AddHandler(handler)
	}
}

// Open connects every shard to the gateway. Shards already connected are
// closed again if a later one fails.
func (b *Bot) Open() error {
	for i, s := range b.Shards {
		if err := s.Open(); err != nil {
			for _, opened := range b.Shards[:i] {
				opened.Close()
			}
			return errors.Wrapf(err, "could not connect shard %d", s.ShardID)
		}
		log.WithFields(logrus.Fields{"shard": s.ShardID, "shards": s.ShardCount}).Debug("Shard connected")
	}
	return nil
}

// GuildCount returns the number of guilds seen by all shards.
func (b *Bot) GuildCount() int {
	total := 0
	for _, s := range b.Shards {
		if s.State == nil {
			continue
		}
		s.State.RLock()
		total += len(s.State.Guilds)
		s.State.RUnlock()
	}
	return total
}

// Close releases every shard and the database handle.
func (b *Bot) Close() error {
	var firstErr error
	for _, s := range b.Shards {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "could not close shard %d", s.ShardID)
		}
	}
	if b.Db != nil {
		if err := b.Db.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrap(err, "could not close database")
		}
	}
	return firstErr
}
