package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ActivityLog records the outcome of every mutation the client performs, for
// diagnostics (`tada activity`). It is never read back into the todo list;
// the server stays the only source of truth for list contents.
type ActivityLog struct {
	db *sql.DB
}

// ActivityEntry is one recorded mutation outcome.
type ActivityEntry struct {
	Action  string    `json:"action"`
	TodoID  string    `json:"todoId,omitempty"`
	OK      bool      `json:"ok"`
	Message string    `json:"message,omitempty"`
	At      time.Time `json:"at"`
}

// OpenActivityLog opens (creating if needed) the activity database in the
// config dir.
func OpenActivityLog(ctx context.Context) (*ActivityLog, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return OpenActivityLogAt(ctx, filepath.Join(dir, "activity.sqlite"))
}

func OpenActivityLogAt(ctx context.Context, path string) (*ActivityLog, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when CLI and TUI overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS activity (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		todo_id TEXT NOT NULL DEFAULT '',
		ok INTEGER NOT NULL,
		message TEXT NOT NULL DEFAULT '',
		at_unixms INTEGER NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_activity_at ON activity(at_unixms);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &ActivityLog{db: db}, nil
}

func (a *ActivityLog) Close() error { return a.db.Close() }

// Record appends one outcome.
func (a *ActivityLog) Record(ctx context.Context, e ActivityEntry) error {
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO activity (action, todo_id, ok, message, at_unixms) VALUES (?, ?, ?, ?, ?)`,
		e.Action, e.TodoID, boolToInt(e.OK), e.Message, at.UnixMilli(),
	)
	return err
}

// Recent returns up to limit entries, newest first.
func (a *ActivityLog) Recent(ctx context.Context, limit int) ([]ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := a.db.QueryContext(ctx,
		`SELECT action, todo_id, ok, message, at_unixms FROM activity ORDER BY at_unixms DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ActivityEntry
	for rows.Next() {
		var e ActivityEntry
		var ok int
		var atMS int64
		if err := rows.Scan(&e.Action, &e.TodoID, &ok, &e.Message, &atMS); err != nil {
			return nil, err
		}
		e.OK = ok != 0
		e.At = time.UnixMilli(atMS)
		out = append(out, e)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
