package content

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/graciegould/snaglet/internal/db"
)

// PostgresStore is the canonical public_content store.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(database *db.DB) *PostgresStore {
	return &PostgresStore{db: database}
}

func (s *PostgresStore) ListPublic(ctx context.Context) ([]Document, error) {

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, payload
		FROM public_content
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("content: list query failed: %w", err)
	}
	defer rows.Close()

	docs := make([]Document, 0)

	for rows.Next() {
		var id uuid.UUID
		var payload []byte

		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("content: scan failed: %w", err)
		}

		fields := make(map[string]any)
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &fields); err != nil {
				return nil, fmt.Errorf("content: payload decode failed for %s: %w", id, err)
			}
		}

		docs = append(docs, Document{
			ID:     id.String(),
			Fields: fields,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("content: row iteration failed: %w", err)
	}

	return docs, nil
}
