// Package fetchlog keeps a sqlite record of how each gateway call was served,
// so fallbacks and their reasons can be inspected after the fact.
package fetchlog

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/Zachkp/analyst-dashboard/internal/gateway"
)

// Entry is one logged gateway call.
type Entry struct {
	ID        string        `json:"id"`
	Dataset   string        `json:"dataset"`
	Source    string        `json:"source"`
	Reason    string        `json:"reason,omitempty"`
	Rows      int           `json:"rows"`
	Latency   time.Duration `json:"latency_ns"`
	FetchedAt time.Time     `json:"fetched_at"`
}

// DatasetStat aggregates calls for one dataset.
type DatasetStat struct {
	Dataset   string    `json:"dataset"`
	Live      int64     `json:"live"`
	Fallback  int64     `json:"fallback"`
	LastFetch time.Time `json:"last_fetch"`
}

// Stats summarizes the fetch log.
type Stats struct {
	TotalFetches    int64         `json:"total_fetches"`
	LiveFetches     int64         `json:"live_fetches"`
	FallbackFetches int64         `json:"fallback_fetches"`
	FetchesToday    int64         `json:"fetches_last_24h"`
	FetchesThisWeek int64         `json:"fetches_last_7d"`
	ByDataset       []DatasetStat `json:"by_dataset"`
	RecentFallbacks []Entry       `json:"recent_fallbacks"`
}

const recentFallbackLimit = 20

// Store persists gateway outcomes.
type Store struct {
	db     *sql.DB
	logger logrus.FieldLogger
	now    func() time.Time
}

// Open opens (or creates) the sqlite database at path and migrates the schema.
// Use ":memory:" for a throwaway log.
func Open(path string, logger logrus.FieldLogger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "fetchlog: open")
	}
	// sqlite serializes writers anyway, and ":memory:" is per connection.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, logger: logger.WithField("component", "fetchlog"), now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "fetchlog: migrate")
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS fetches (
			id          TEXT PRIMARY KEY,
			dataset     TEXT    NOT NULL,
			source      TEXT    NOT NULL,
			reason      TEXT    NOT NULL DEFAULT '',
			row_count   INTEGER NOT NULL DEFAULT 0,
			latency_ns  INTEGER NOT NULL DEFAULT 0,
			fetched_at  INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_fetches_fetched_at ON fetches(fetched_at);
		CREATE INDEX IF NOT EXISTS idx_fetches_dataset    ON fetches(dataset);
	`)
	return err
}

// Observe implements gateway.Observer. Write errors are logged, never returned.
func (s *Store) Observe(o gateway.Outcome) {
	at := o.At
	if at.IsZero() {
		at = s.now()
	}

	_, err := s.db.Exec(`
		INSERT INTO fetches (id, dataset, source, reason, row_count, latency_ns, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), string(o.Dataset), string(o.Source), o.Reason, o.Rows, int64(o.Latency), at.UnixMilli())
	if err != nil {
		s.logger.WithError(err).WithField("dataset", o.Dataset).Error("Error recording fetch")
	}
}

// Stats aggregates the whole log.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	now := s.now()

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN source = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN source = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN fetched_at >= ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN fetched_at >= ? THEN 1 ELSE 0 END), 0)
		FROM fetches
	`, string(gateway.SourceLive), string(gateway.SourceFallback),
		now.Add(-24*time.Hour).UnixMilli(), now.Add(-7*24*time.Hour).UnixMilli(),
	).Scan(&stats.TotalFetches, &stats.LiveFetches, &stats.FallbackFetches, &stats.FetchesToday, &stats.FetchesThisWeek)
	if err != nil {
		return nil, errors.Wrap(err, "fetchlog: totals")
	}

	if stats.ByDataset, err = s.byDataset(ctx); err != nil {
		return nil, err
	}
	if stats.RecentFallbacks, err = s.recentFallbacks(ctx, recentFallbackLimit); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) byDataset(ctx context.Context) ([]DatasetStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT dataset,
			SUM(CASE WHEN source = ? THEN 1 ELSE 0 END),
			SUM(CASE WHEN source = ? THEN 1 ELSE 0 END),
			MAX(fetched_at)
		FROM fetches
		GROUP BY dataset
		ORDER BY dataset
	`, string(gateway.SourceLive), string(gateway.SourceFallback))
	if err != nil {
		return nil, errors.Wrap(err, "fetchlog: by dataset")
	}
	defer rows.Close()

	var out []DatasetStat
	for rows.Next() {
		var d DatasetStat
		var last int64
		if err := rows.Scan(&d.Dataset, &d.Live, &d.Fallback, &last); err != nil {
			return nil, errors.Wrap(err, "fetchlog: scan dataset stat")
		}
		d.LastFetch = time.UnixMilli(last)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) recentFallbacks(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, dataset, source, reason, row_count, latency_ns, fetched_at
		FROM fetches
		WHERE source = ?
		ORDER BY fetched_at DESC
		LIMIT ?
	`, string(gateway.SourceFallback), limit)
	if err != nil {
		return nil, errors.Wrap(err, "fetchlog: recent fallbacks")
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var latency, at int64
		if err := rows.Scan(&e.ID, &e.Dataset, &e.Source, &e.Reason, &e.Rows, &latency, &at); err != nil {
			return nil, errors.Wrap(err, "fetchlog: scan entry")
		}
		e.Latency = time.Duration(latency)
		e.FetchedAt = time.UnixMilli(at)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Cleanup deletes entries older than retention and returns how many were removed.
func (s *Store) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().Add(-retention).UnixMilli()

	result, err := s.db.ExecContext(ctx, `DELETE FROM fetches WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "fetchlog: cleanup")
	}

	removed, _ := result.RowsAffected()
	if removed > 0 {
		s.logger.Infof("Fetch log cleanup: removed %d entries older than %s", removed, retention)
	}
	return removed, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
