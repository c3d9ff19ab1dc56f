package domain

import (
	"errors"
	"fmt"
	"strings"
)

// NovelType is a genre tag of novels.
//
// Values are persisted and exchanged as integers, so do not reorder them.
type NovelType int

const (
	Romance NovelType = iota
	Ancient
	Doomsday
	ScienceFiction
	Campus
	MartialArts
	System
	RichFamily
	TimeTravel
	Rebirth
	Suspense
	Supernatural
	Imaginary
	Funny
	OnlineGames
	BL
	Lesbian
	CuteBaby
)

var novelTypeNames = []string{
	Romance:        "Romance",
	Ancient:        "Ancient",
	Doomsday:       "Doomsday",
	ScienceFiction: "ScienceFiction",
	Campus:         "Campus",
	MartialArts:    "MartialArts",
	System:         "System",
	RichFamily:     "RichFamily",
	TimeTravel:     "TimeTravel",
	Rebirth:        "Rebirth",
	Suspense:       "Suspense",
	Supernatural:   "Supernatural",
	Imaginary:      "Imaginary",
	Funny:          "Funny",
	OnlineGames:    "OnlineGames",
	BL:             "BL",
	Lesbian:        "Lesbian",
	CuteBaby:       "CuteBaby",
}

var ErrUnknownNovelType = errors.New("unknown novel type")

func (nt NovelType) IsKnown() bool {
	return 0 <= int(nt) && int(nt) < len(novelTypeNames)
}

func (nt NovelType) String() string {
	if !nt.IsKnown() {
		return fmt.Sprintf("NovelType(%d)", int(nt))
	}
	return novelTypeNames[nt]
}

// ParseNovelType returns NovelType named s (case insensitive).
func ParseNovelType(s string) (NovelType, error) {
	for i, name := range novelTypeNames {
		if strings.EqualFold(name, s) {
			return NovelType(i), nil
		}
	}
	return -1, fmt.Errorf(`%w: "%s"`, ErrUnknownNovelType, s)
}

// AllNovelTypes returns all known NovelTypes in order.
func AllNovelTypes() []NovelType {
	ret := make([]NovelType, len(novelTypeNames))
	for i := range novelTypeNames {
		ret[i] = NovelType(i)
	}
	return ret
}
