// types defines JSON bodies of the API, and composes them from domain values.
package types

import (
	"time"

	"github.com/bearnovel/bearnovel/pkg/domain"
	"github.com/bearnovel/bearnovel/pkg/novels"
)

type Author struct {
	UserId         int    `json:"userId"`
	UserName       string `json:"userName"`
	NickName       string `json:"nickName"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

func ComposeAuthor(a domain.Author) Author {
	return Author{
		UserId:         a.Id,
		UserName:       a.UserName,
		NickName:       a.NickName,
		ProfilePicture: a.ProfilePicture,
	}
}

type Novel struct {
	NovelId        int       `json:"novelId"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	AuthorId       int       `json:"authorId"`
	User           Author    `json:"user"`
	NovelTypes     []int     `json:"novelTypes"`
	IsEnding       bool      `json:"isEnding"`
	ViewCount      int       `json:"viewCount"`
	LikeCount      int       `json:"likeCount"`
	TotalWordCount int       `json:"totalWordCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	IsLiked        bool      `json:"isLiked"`
}

func ComposeNovel(n domain.Novel) Novel {
	nt := make([]int, len(n.NovelTypes))
	for i, t := range n.NovelTypes {
		nt[i] = int(t)
	}
	return Novel{
		NovelId:        n.NovelId,
		Title:          n.Title,
		Description:    n.Description,
		AuthorId:       n.AuthorId,
		User:           ComposeAuthor(n.Author),
		NovelTypes:     nt,
		IsEnding:       n.IsEnding,
		ViewCount:      n.ViewCount,
		LikeCount:      n.LikeCount,
		TotalWordCount: n.TotalWordCount,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}
}

func ComposeItem(i novels.Item) Novel {
	n := ComposeNovel(i.Novel)
	n.IsLiked = i.IsLiked
	return n
}

func ComposeNovels(ns []domain.Novel) []Novel {
	ret := make([]Novel, len(ns))
	for i := range ns {
		ret[i] = ComposeNovel(ns[i])
	}
	return ret
}

func ComposeItems(items []novels.Item) []Novel {
	ret := make([]Novel, len(items))
	for i := range items {
		ret[i] = ComposeItem(items[i])
	}
	return ret
}

// NovelRequest is a body to create or update a novel.
type NovelRequest struct {
	// required for update. it should be same as the id in path.
	NovelId *int `json:"novelId,omitempty"`

	Title       string `json:"title"`
	Description string `json:"description"`
	NovelTypes  []int  `json:"novelTypes"`
	IsEnding    bool   `json:"isEnding"`
}

func (r NovelRequest) Param() domain.NovelParam {
	nt := make([]domain.NovelType, len(r.NovelTypes))
	for i, t := range r.NovelTypes {
		nt[i] = domain.NovelType(t)
	}
	return domain.NovelParam{
		Title:       r.Title,
		Description: r.Description,
		NovelTypes:  nt,
		IsEnding:    r.IsEnding,
	}
}

type NovelType struct {
	Value int    `json:"value"`
	Name  string `json:"name"`
}

func ComposeNovelTypes(nts []domain.NovelType) []NovelType {
	ret := make([]NovelType, len(nts))
	for i, nt := range nts {
		ret[i] = NovelType{Value: int(nt), Name: nt.String()}
	}
	return ret
}

type Like struct {
	LikeCount int  `json:"likeCount"`
	IsLiked   bool `json:"isLiked"`
}

type IsAuthor struct {
	IsAuthor bool `json:"isAuthor"`
}

type RankingEntry struct {
	Rank  int   `json:"rank"`
	Novel Novel `json:"novel"`
	Views int   `json:"views"`
	Likes int   `json:"likes"`
	Score int   `json:"score"`
}

func ComposeRankings(entries []domain.RankingEntry) []RankingEntry {
	ret := make([]RankingEntry, len(entries))
	for i, e := range entries {
		ret[i] = RankingEntry{
			Rank:  e.Rank,
			Novel: ComposeNovel(e.Novel),
			Views: e.Views,
			Likes: e.Likes,
			Score: e.Score(),
		}
	}
	return ret
}
