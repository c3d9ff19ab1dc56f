// recurring decides how a loop continues from whether the last iteration did something.
package recurring

import (
	"fmt"
	"strings"
	"time"

	"github.com/bearnovel/bearnovel/pkg/loop"
)

// ParsePolicy parses policy notation.
//
// - "forever" or "forever:COOLDOWN" : Forever(COOLDOWN). COOLDOWN is time.Duration, default 0.
//
// - "backlog" : Backlog()
//
// - "once" : Once()
func ParsePolicy(s string) (Policy, error) {
	typ, param, ok := strings.Cut(s, ":")
	switch typ {
	case "forever":
		if !ok || param == "" {
			return Forever(0), nil
		}
		cooldown, err := time.ParseDuration(param)
		if err != nil {
			return nil, fmt.Errorf(`failed to parse: %s as "forever:COOLDOWN": %w`, s, err)
		}
		return Forever(cooldown), nil
	case "backlog", "once":
		if ok {
			return nil, fmt.Errorf("%s policy does not take paramters: %s", typ, s)
		}
		if typ == "once" {
			return Once(), nil
		}
		return Backlog(), nil
	}
	return nil, fmt.Errorf("unknown policy name: %s (should be one of -- forever|backlog|once)", typ)
}

// Policy tells the loop what to do next.
type Policy interface {
	// Next decides the next step.
	//
	// Args
	//
	// - updated: true when the last iteration did something and more backlog can be.
	//
	// - err: error of the last iteration.
	Next(updated bool, err error) loop.Next
	String() string
}

// Forever restarts immediately while there are backlog,
// otherwise restarts after cooldown.
//
// Errors are ignored. Combine with UntilError to stop on errors.
func Forever(cooldown time.Duration) Policy {
	return forever(cooldown)
}

type forever time.Duration

func (f forever) String() string {
	return fmt.Sprintf("forever:%s", time.Duration(f))
}

func (f forever) Next(updated bool, _ error) loop.Next {
	if updated {
		return loop.Continue(0)
	}
	return loop.Continue(time.Duration(f))
}

// Backlog restarts immediately while there are backlog, otherwise breaks.
func Backlog() Policy {
	return backlog{}
}

type backlog struct{}

func (backlog) String() string {
	return "backlog"
}

func (backlog) Next(updated bool, _ error) loop.Next {
	if updated {
		return loop.Continue(0)
	}
	return loop.Break(nil)
}

// Once breaks after the first iteration.
func Once() Policy {
	return once{}
}

type once struct{}

func (once) String() string {
	return "once"
}

func (once) Next(_ bool, err error) loop.Next {
	return loop.Break(err)
}

// UntilError wraps p to break the loop with the error of an iteration.
func UntilError(p Policy) Policy {
	return untilError{base: p}
}

type untilError struct {
	base Policy
}

func (u untilError) String() string {
	return fmt.Sprintf("%s (until error)", u.base)
}

func (u untilError) Next(updated bool, err error) loop.Next {
	if err != nil {
		return loop.Break(err)
	}
	return u.base.Next(updated, err)
}
