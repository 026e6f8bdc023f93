package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/alexanderramin/fabline/internal/repository"
)

// BoardView is the preference key for the production board layout.
const BoardView = "board"

type gridService struct {
	prefs repository.GridPrefRepo
}

func NewGridService(prefs repository.GridPrefRepo) GridService {
	return &gridService{prefs: prefs}
}

func (s *gridService) Columns(ctx context.Context, view string) ([]string, error) {
	pref, err := s.prefs.Get(ctx, view)
	if errors.Is(err, repository.ErrNotFound) {
		return append([]string(nil), domain.DefaultGridColumns...), nil
	}
	if err != nil {
		return nil, err
	}

	// Drop keys the grid no longer knows; a preference saved before a
	// column was renamed must not break the board.
	cols := make([]string, 0, len(pref.Columns))
	for _, c := range pref.Columns {
		if domain.ValidGridColumns[c] {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		return append([]string(nil), domain.DefaultGridColumns...), nil
	}
	return cols, nil
}

func (s *gridService) SaveColumns(ctx context.Context, view string, cols []string) error {
	if view == "" {
		return fmt.Errorf("view name is required")
	}
	if len(cols) == 0 {
		return fmt.Errorf("at least one column is required")
	}
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if !domain.ValidGridColumns[c] {
			return fmt.Errorf("unknown column %q", c)
		}
		if seen[c] {
			return fmt.Errorf("duplicate column %q", c)
		}
		seen[c] = true
	}
	return s.prefs.Upsert(ctx, &domain.GridPreference{
		View:      view,
		Columns:   cols,
		UpdatedAt: time.Now().UTC(),
	})
}
