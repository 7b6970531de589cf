package storage

import (
	"context"
	"errors"
	"fmt"
)

// errPathRequired is the validation message for a missing path.
const errPathRequired = "path is required"

// RecordOpen marks path as opened now, bumping its open count.
func (s *SQLiteStore) RecordOpen(ctx context.Context, path string) error {
	if path == "" {
		return errors.New(errPathRequired)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO file_activity (path, last_opened_unix_ms, open_count)
		VALUES (?, ?, 1)
		ON CONFLICT(path) DO UPDATE SET
			last_opened_unix_ms = excluded.last_opened_unix_ms,
			open_count = file_activity.open_count + 1
	`, path, s.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to record open: %w", err)
	}
	return nil
}

// RecentFiles returns up to limit entries, most recently opened first.
// Ties are broken by path so the order is stable.
func (s *SQLiteStore) RecentFiles(ctx context.Context, limit int) ([]FileActivity, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT path, last_opened_unix_ms, open_count
		FROM file_activity
		ORDER BY last_opened_unix_ms DESC, path ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent files: %w", err)
	}
	defer rows.Close()

	var out []FileActivity
	for rows.Next() {
		var fa FileActivity
		if err := rows.Scan(&fa.Path, &fa.LastOpenedUnixMs, &fa.OpenCount); err != nil {
			return nil, fmt.Errorf("failed to scan recent file: %w", err)
		}
		out = append(out, fa)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recent files: %w", err)
	}
	return out, nil
}

// ForgetFile removes path from the activity log. Missing paths are ignored.
func (s *SQLiteStore) ForgetFile(ctx context.Context, path string) error {
	if path == "" {
		return errors.New(errPathRequired)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM file_activity WHERE path = ?`, path); err != nil {
		return fmt.Errorf("failed to forget file: %w", err)
	}
	return nil
}
