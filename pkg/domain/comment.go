package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxCommentLength = 1000

type Comment struct {
	CommentId int
	NovelId   int
	Author    Author
	Content   string
	CreatedAt time.Time
}

var ErrInvalidComment = fmt.Errorf("%w: comment", ErrInvalid)

type CommentParam struct {
	Content string
}

func (cp CommentParam) Validate() (*CommentSpec, error) {
	content := strings.TrimSpace(cp.Content)
	switch {
	case content == "":
		return nil, fmt.Errorf("%w: content is required", ErrInvalidComment)
	case MaxCommentLength < utf8.RuneCountInString(content):
		return nil, fmt.Errorf("%w: content is too long (max %d)", ErrInvalidComment, MaxCommentLength)
	}
	return &CommentSpec{content: content}, nil
}

type CommentSpec struct {
	content string
}

func (cs *CommentSpec) Content() string {
	return cs.content
}
