package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// LoadData returns the blob saved for pluginID, or nil when none exists.
func (s *SQLiteStore) LoadData(ctx context.Context, pluginID string) ([]byte, error) {
	if pluginID == "" {
		return nil, errors.New("plugin_id is required")
	}

	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM plugin_data WHERE plugin_id = ?
	`, pluginID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load plugin data: %w", err)
	}
	return []byte(data), nil
}

// SaveData replaces the blob saved for pluginID.
func (s *SQLiteStore) SaveData(ctx context.Context, pluginID string, data []byte) error {
	if pluginID == "" {
		return errors.New("plugin_id is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO plugin_data (plugin_id, data, updated_at_unix_ms)
		VALUES (?, ?, ?)
		ON CONFLICT(plugin_id) DO UPDATE SET
			data = excluded.data,
			updated_at_unix_ms = excluded.updated_at_unix_ms
	`, pluginID, string(data), s.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save plugin data: %w", err)
	}
	return nil
}
