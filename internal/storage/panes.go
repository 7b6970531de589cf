package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrPaneNotFound is returned when no pane matches.
var ErrPaneNotFound = errors.New("pane not found")

// SavePane inserts or replaces a pane record. Zero timestamps are filled
// with the current time.
func (s *SQLiteStore) SavePane(ctx context.Context, p *Pane) error {
	if p == nil {
		return errors.New("pane cannot be nil")
	}
	if p.PaneID == "" {
		return errors.New("pane_id is required")
	}
	if p.Kind == "" {
		return errors.New("kind is required")
	}

	now := s.now().UnixMilli()
	if p.CreatedAtUnixMs == 0 {
		p.CreatedAtUnixMs = now
	}
	if p.LastUsedUnixMs == 0 {
		p.LastUsedUnixMs = now
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO panes (pane_id, kind, command, created_at_unix_ms, last_used_unix_ms)
		VALUES (?, ?, ?, ?, ?)
	`, p.PaneID, p.Kind, p.Command, p.CreatedAtUnixMs, p.LastUsedUnixMs)
	if err != nil {
		return fmt.Errorf("failed to save pane: %w", err)
	}
	return nil
}

// TouchPane marks a pane as used now.
func (s *SQLiteStore) TouchPane(ctx context.Context, paneID string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE panes SET last_used_unix_ms = ? WHERE pane_id = ?
	`, s.now().UnixMilli(), paneID)
	if err != nil {
		return fmt.Errorf("failed to touch pane: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrPaneNotFound
	}
	return nil
}

// LastPane returns the most recently used pane, or ErrPaneNotFound.
func (s *SQLiteStore) LastPane(ctx context.Context) (*Pane, error) {
	var p Pane
	err := s.db.QueryRowContext(ctx, `
		SELECT pane_id, kind, command, created_at_unix_ms, last_used_unix_ms
		FROM panes
		ORDER BY last_used_unix_ms DESC, created_at_unix_ms DESC
		LIMIT 1
	`).Scan(&p.PaneID, &p.Kind, &p.Command, &p.CreatedAtUnixMs, &p.LastUsedUnixMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaneNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query last pane: %w", err)
	}
	return &p, nil
}
