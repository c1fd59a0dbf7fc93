package bot

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// ErrNoDatabase is returned by the count helpers when no database is configured.
var ErrNoDatabase = errors.New("no database configured")

// RowCountEstimate returns the planner's row estimate for table, falling back
// to an exact count when the table has never been analysed.
func (b *Bot) RowCountEstimate(ctx context.Context, table string) (int64, error) {
	if b.Db == nil {
		return 0, ErrNoDatabase
	}

	var estimate float64
	err := b.Db.QueryRowContext(ctx,
		"SELECT reltuples FROM pg_class WHERE relname = $1", table).Scan(&estimate)
	if err != nil && err != sql.ErrNoRows {
		return 0, errors.Wrapf(err, "could not estimate rows of %s", table)
	}
	if err == nil && estimate >= 0 {
		return int64(estimate), nil
	}

	var count int64
	if err := b.Db.QueryRowContext(ctx, countQuery(table)).Scan(&count); err != nil {
		return 0, errors.Wrapf(err, "could not count rows of %s", table)
	}
	return count, nil
}

// EnabledCollectibles counts the collectibles that can currently spawn.
func (b *Bot) EnabledCollectibles(ctx context.Context) (int64, error) {
	if b.Db == nil {
		return 0, ErrNoDatabase
	}

	var count int64
	if err := b.Db.QueryRowContext(ctx, "SELECT COUNT(*) FROM car WHERE enabled").Scan(&count); err != nil {
		return 0, errors.Wrap(err, "could not count enabled collectibles")
	}
	return count, nil
}

func countQuery(table string) string {
	return "SELECT COUNT(*) FROM " + pq.QuoteIdentifier(table)
}
