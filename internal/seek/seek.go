// Package seek parses seek positions like "+30", "-1:00" or "1:02:03".
package seek

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Errors returned by Parse.
var (
	ErrEmpty      = errors.New("empty seek position")
	ErrNotInteger = errors.New("seek field is not an integer")
	ErrTooLong    = errors.New("seek position has more than three fields")
)

// Direction of a seek relative to the current position.
type Direction int

const (
	Absolute Direction = iota
	Forward
	Back
)

// Arg is a parsed seek position.
type Arg struct {
	Direction Direction
	Seconds   int
}

// Parse parses "[+-][[hh:]mm:]ss". A leading sign makes the seek relative.
func Parse(s string) (Arg, error) {
	if s == "" {
		return Arg{}, ErrEmpty
	}

	var arg Arg
	switch s[0] {
	case '+':
		arg.Direction, s = Forward, s[1:]
	case '-':
		arg.Direction, s = Back, s[1:]
	}

	fields := strings.Split(s, ":")
	if len(fields) > 3 {
		return Arg{}, ErrTooLong
	}
	for _, f := range fields {
		n, err := strconv.ParseUint(f, 10, 31)
		if err != nil {
			return Arg{}, ErrNotInteger
		}
		arg.Seconds = arg.Seconds*60 + int(n)
	}
	return arg, nil
}

// Target returns the absolute position in whole seconds for a song that has
// played for elapsed. Backward seeks stop at the start of the song.
func (a Arg) Target(elapsed time.Duration) int {
	cur := int(elapsed / time.Second)
	switch a.Direction {
	case Forward:
		return cur + a.Seconds
	case Back:
		return max(cur-a.Seconds, 0)
	default:
		return a.Seconds
	}
}
