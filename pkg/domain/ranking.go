package domain

import "time"

// a like weighs as much as this many views in daily rankings.
const LikeWeight = 2

type RankingEntry struct {
	Rank  int
	Novel Novel
	Views int
	Likes int
}

func (re RankingEntry) Score() int {
	return re.Views + LikeWeight*re.Likes
}

// Window of the daily ranking computed at `now`: the previous whole day, in UTC.
func DailyRankingWindow(now time.Time) (since time.Time, until time.Time) {
	until = now.UTC().Truncate(24 * time.Hour)
	since = until.Add(-24 * time.Hour)
	return since, until
}
