package db

import (
	"context"
	"time"

	"github.com/bearnovel/bearnovel/pkg/domain"
)

type GarbageInterface interface {
	// pop a soft-deleted novel, and remove it with its chapters, likes, views and comments.
	//
	// Args
	//
	// - context.Context
	//
	// - time.Time: only novels deleted before this are popped.
	//
	// - func(domain.Novel) error: handler with popped novel.
	//   If this handler returns error, popped novel will be rolled back.
	//   Otherwise, popped novel will be removed from DB.
	//
	// Return
	//
	// - bool: if a novel is popped
	//
	// - error
	Pop(context.Context, time.Time, func(domain.Novel) error) (bool, error)
}
