package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxChapterTitleLength = 100

type Chapter struct {
	ChapterId     int
	NovelId       int
	ChapterNumber int
	Title         string
	Content       string
	WordCount     int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

var (
	ErrInvalidChapter        = fmt.Errorf("%w: chapter", ErrInvalid)
	ErrInvalidChapterTitle   = fmt.Errorf("%w: title", ErrInvalidChapter)
	ErrInvalidChapterContent = fmt.Errorf("%w: content", ErrInvalidChapter)
)

type ChapterParam struct {
	Title   string
	Content string
}

// validate parameters and create ChapterSpec.
//
// WordCount of the ChapterSpec is computed from Content.
func (cp ChapterParam) Validate() (*ChapterSpec, error) {
	title := strings.TrimSpace(cp.Title)
	switch {
	case title == "":
		return nil, fmt.Errorf("%w: required", ErrInvalidChapterTitle)
	case MaxChapterTitleLength < utf8.RuneCountInString(title):
		return nil, fmt.Errorf("%w: too long (max %d)", ErrInvalidChapterTitle, MaxChapterTitleLength)
	}
	if strings.TrimSpace(cp.Content) == "" {
		return nil, fmt.Errorf("%w: required", ErrInvalidChapterContent)
	}

	return &ChapterSpec{
		title:     title,
		content:   cp.Content,
		wordCount: CountWords(cp.Content),
	}, nil
}

// Chapter to be created or updated.
//
// to instantiate this struct with validation, use `ChapterParam.Validate`.
type ChapterSpec struct {
	title     string
	content   string
	wordCount int
}

func (cs *ChapterSpec) Title() string {
	return cs.title
}

func (cs *ChapterSpec) Content() string {
	return cs.content
}

func (cs *ChapterSpec) WordCount() int {
	return cs.wordCount
}
