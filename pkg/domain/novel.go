package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxNovelTitleLength       = 100
	MaxNovelDescriptionLength = 2000
)

type Novel struct {
	NovelId     int
	Title       string
	Description string

	AuthorId int
	Author   Author

	NovelTypes []NovelType
	IsEnding   bool

	ViewCount      int
	LikeCount      int
	TotalWordCount int

	IsDeleted bool
	DeletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (n Novel) WrittenBy(userId int) bool {
	return n.AuthorId == userId
}

var (
	ErrInvalidNovel            = fmt.Errorf("%w: novel", ErrInvalid)
	ErrInvalidNovelTitle       = fmt.Errorf("%w: title", ErrInvalidNovel)
	ErrInvalidNovelDescription = fmt.Errorf("%w: description", ErrInvalidNovel)
	ErrInvalidNovelTypes       = fmt.Errorf("%w: novelTypes", ErrInvalidNovel)
)

type NovelParam struct {
	Title       string
	Description string
	NovelTypes  []NovelType
	IsEnding    bool
}

// validate parameters and create NovelSpec.
//
// Duplicated NovelTypes are merged, keeping the first occurrence order.
//
// return:
//
// - *NovelSpec: validated spec
//
// - error: wraps ErrInvalidNovel. if error is not nil, *NovelSpec is nil.
func (np NovelParam) Validate() (*NovelSpec, error) {
	title := strings.TrimSpace(np.Title)
	switch {
	case title == "":
		return nil, fmt.Errorf("%w: required", ErrInvalidNovelTitle)
	case MaxNovelTitleLength < utf8.RuneCountInString(title):
		return nil, fmt.Errorf("%w: too long (max %d)", ErrInvalidNovelTitle, MaxNovelTitleLength)
	}

	if MaxNovelDescriptionLength < utf8.RuneCountInString(np.Description) {
		return nil, fmt.Errorf(
			"%w: too long (max %d)", ErrInvalidNovelDescription, MaxNovelDescriptionLength,
		)
	}

	seen := map[NovelType]struct{}{}
	types := make([]NovelType, 0, len(np.NovelTypes))
	for _, nt := range np.NovelTypes {
		if !nt.IsKnown() {
			return nil, fmt.Errorf("%w: %w: %d", ErrInvalidNovelTypes, ErrUnknownNovelType, int(nt))
		}
		if _, ok := seen[nt]; ok {
			continue
		}
		seen[nt] = struct{}{}
		types = append(types, nt)
	}

	return &NovelSpec{
		title:       title,
		description: np.Description,
		novelTypes:  types,
		isEnding:    np.IsEnding,
	}, nil
}

// Novel to be created or updated.
//
// to instantiate this struct with validation, use `NovelParam.Validate`.
type NovelSpec struct {
	title       string
	description string
	novelTypes  []NovelType
	isEnding    bool
}

func (ns *NovelSpec) Title() string {
	return ns.title
}

func (ns *NovelSpec) Description() string {
	return ns.description
}

func (ns *NovelSpec) NovelTypes() []NovelType {
	ret := make([]NovelType, len(ns.novelTypes))
	copy(ret, ns.novelTypes)
	return ret
}

func (ns *NovelSpec) IsEnding() bool {
	return ns.isEnding
}
