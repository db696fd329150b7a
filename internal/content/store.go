package content

import "context"

// Document is one public_content record: its identifier plus the
// stored fields, flattened into the API response alongside "id".
type Document struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// Store reads the public content collection.
type Store interface {
	ListPublic(ctx context.Context) ([]Document, error)
}
