// Package sqlitestore persists dashboard configurations in SQLite. Cards are
// stored as a JSON string column, which is why exported documents may carry a
// string-encoded cards_config that the codec normalizes on import.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	dashboard "github.com/goliatone/go-painel/components/dashboard"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS dashboard_configs (
	scope_key    TEXT PRIMARY KEY,
	view_type    TEXT NOT NULL DEFAULT 'dashboard',
	cards_config TEXT NOT NULL DEFAULT '[]',
	exported_at  TEXT NOT NULL DEFAULT '',
	updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Store implements dashboard.ConfigStore on top of SQLite.
type Store struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*Store, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlitestore: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlitestore: apply schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

var _ dashboard.ConfigStore = (*Store)(nil)

// Load returns the stored document for the scope key.
func (s *Store) Load(ctx context.Context, scopeKey string) (dashboard.ConfigDocument, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT view_type, cards_config, exported_at FROM dashboard_configs WHERE scope_key = ?`,
		scopeKey,
	)
	var (
		viewType   string
		cardsJSON  string
		exportedAt string
	)
	if err := row.Scan(&viewType, &cardsJSON, &exportedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dashboard.ConfigDocument{}, fmt.Errorf("scope %s: %w", scopeKey, dashboard.ErrConfigNotFound)
		}
		return dashboard.ConfigDocument{}, fmt.Errorf("sqlitestore: load %s: %w", scopeKey, err)
	}

	var cards []dashboard.Card
	if err := json.Unmarshal([]byte(cardsJSON), &cards); err != nil {
		return dashboard.ConfigDocument{}, fmt.Errorf("sqlitestore: decode cards for %s: %w", scopeKey, err)
	}
	return dashboard.ConfigDocument{
		CardsConfig: cards,
		ViewType:    dashboard.ViewType(viewType),
		Metadata: dashboard.ConfigMetadata{
			ExportedAt: exportedAt,
			ScopeKey:   scopeKey,
		},
	}, nil
}

// Save upserts the document. Last write wins for concurrent sessions on the
// same scope key.
func (s *Store) Save(ctx context.Context, scopeKey string, doc dashboard.ConfigDocument) error {
	if scopeKey == "" {
		return fmt.Errorf("sqlitestore: scope key is required: %w", dashboard.ErrPersistence)
	}
	cardsJSON, err := json.Marshal(doc.CardsConfig)
	if err != nil {
		return fmt.Errorf("sqlitestore: encode cards for %s: %w", scopeKey, err)
	}
	_, err = s.conn.ExecContext(ctx, `
INSERT INTO dashboard_configs (scope_key, view_type, cards_config, exported_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(scope_key) DO UPDATE SET
	view_type    = excluded.view_type,
	cards_config = excluded.cards_config,
	exported_at  = excluded.exported_at,
	updated_at   = excluded.updated_at`,
		scopeKey,
		string(doc.ViewType),
		string(cardsJSON),
		doc.Metadata.ExportedAt,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("sqlitestore: save %s: %w", scopeKey, err)
	}
	return nil
}
