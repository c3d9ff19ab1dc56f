package domain

import (
	"errors"
	"fmt"
)

type LoopType string

const (
	// recompute daily rankings
	Ranking LoopType = "ranking"

	// remove soft-deleted novels physically
	Purge LoopType = "purge"
)

func (lt LoopType) String() string {
	return string(lt)
}

func (lt LoopType) IsKnown() bool {
	switch lt {
	case Ranking, Purge:
		return true
	default:
		return false
	}
}

func AsLoopType(s string) (LoopType, error) {
	l := LoopType(s)
	if l.IsKnown() {
		return l, nil
	}
	return l, fmt.Errorf(`%w: "%s"`, ErrUnknwonLoopType, s)
}

var ErrUnknwonLoopType = errors.New("unknown loop type")
