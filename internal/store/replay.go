package store

import (
	"context"
	"fmt"

	"github.com/Epixu/literal-t/internal/registry"
)

// LoadRegistry restores every stored entry into r. Entry IDs are verified
// against their content, so a row altered outside the store fails the load.
func (s *Store) LoadRegistry(ctx context.Context, r *registry.Registry) (int, error) {
	entries, err := s.ReadEntries(ctx)
	if err != nil {
		return 0, fmt.Errorf("load registry: %w", err)
	}
	if err := r.Restore(entries); err != nil {
		return 0, fmt.Errorf("load registry: %w", err)
	}
	return len(entries), nil
}

// SaveRegistry writes every entry of r and returns how many were new.
func (s *Store) SaveRegistry(ctx context.Context, r *registry.Registry) (int, error) {
	n, err := s.WriteEntries(ctx, r.Entries())
	if err != nil {
		return 0, fmt.Errorf("save registry: %w", err)
	}
	return n, nil
}
