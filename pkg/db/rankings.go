package db

import (
	"context"
	"time"

	"github.com/bearnovel/bearnovel/pkg/domain"
)

type RankingInterface interface {
	// Daily ranks novels by views and likes made in [since, until).
	//
	// Entries are sorted by score, descending. Ties are ordered by novel id.
	// Novels without any views nor likes in the window are not ranked.
	Daily(ctx context.Context, since time.Time, until time.Time) ([]domain.RankingEntry, error)
}
