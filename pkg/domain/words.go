package domain

import (
	"encoding/json"
	"strings"
	"unicode"
)

// richText is the subset of rich-text editor documents we read.
type richText struct {
	Blocks []struct {
		Text string `json:"text"`
	} `json:"blocks"`
}

// PlainText extracts text from chapter content.
//
// Content is either a rich-text document (JSON object having "blocks")
// or plain text. Anything which is not a rich-text document is plain text.
func PlainText(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") {
		return content
	}

	doc := richText{}
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil || doc.Blocks == nil {
		return content
	}

	lines := make([]string, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		lines = append(lines, b.Text)
	}
	return strings.Join(lines, "\n")
}

// CountWords counts non-space characters in the plain text of content.
func CountWords(content string) int {
	n := 0
	for _, r := range PlainText(content) {
		if !unicode.IsSpace(r) {
			n += 1
		}
	}
	return n
}
