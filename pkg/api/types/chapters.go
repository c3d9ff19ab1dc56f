package types

import (
	"time"

	"github.com/bearnovel/bearnovel/pkg/domain"
)

type Chapter struct {
	ChapterId     int       `json:"chapterId"`
	NovelId       int       `json:"novelId"`
	ChapterNumber int       `json:"chapterNumber"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	WordCount     int       `json:"wordCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func ComposeChapter(c domain.Chapter) Chapter {
	return Chapter{
		ChapterId:     c.ChapterId,
		NovelId:       c.NovelId,
		ChapterNumber: c.ChapterNumber,
		Title:         c.Title,
		Content:       c.Content,
		WordCount:     c.WordCount,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func ComposeChapters(cs []domain.Chapter) []Chapter {
	ret := make([]Chapter, len(cs))
	for i := range cs {
		ret[i] = ComposeChapter(cs[i])
	}
	return ret
}

type ChapterRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (r ChapterRequest) Param() domain.ChapterParam {
	return domain.ChapterParam{Title: r.Title, Content: r.Content}
}

type Comment struct {
	CommentId int       `json:"commentId"`
	NovelId   int       `json:"novelId"`
	User      Author    `json:"user"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func ComposeComments(cs []domain.Comment) []Comment {
	ret := make([]Comment, len(cs))
	for i := range cs {
		ret[i] = ComposeComment(cs[i])
	}
	return ret
}

func ComposeComment(c domain.Comment) Comment {
	return Comment{
		CommentId: c.CommentId,
		NovelId:   c.NovelId,
		User:      ComposeAuthor(c.Author),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

type CommentRequest struct {
	Content string `json:"content"`
}
