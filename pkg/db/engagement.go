package db

import "context"

// EngagementInterface records likes and views of novels by users.
type EngagementInterface interface {
	// ToggleLike likes the novel if the user does not, otherwise unlikes it.
	//
	// Return
	//
	// - bool: true if the user likes the novel after this call
	//
	// - int: like count of the novel after this call
	//
	// - error: ErrMissing if the novel is not found.
	ToggleLike(ctx context.Context, novelId int, userId int) (bool, int, error)

	// LikedBy tells which of the novels the user likes.
	LikedBy(ctx context.Context, userId int, novelIds []int) (map[int]bool, error)

	// RecordView records that the user viewed the novel.
	//
	// Each user is counted once per novel.
	//
	// Return
	//
	// - bool: true if this is the first view of the user, and the view count is increased.
	//
	// - error: ErrMissing if the novel is not found.
	RecordView(ctx context.Context, novelId int, userId int) (bool, error)
}
