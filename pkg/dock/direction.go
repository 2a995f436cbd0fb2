package dock

import (
	"strings"

	"github.com/matzehuels/viewdock/pkg/errors"
)

// Direction selects how a split divides its rectangle.
type Direction int

const (
	// Vertical places the two sides left and right of a vertical cut.
	Vertical Direction = iota
	// Horizontal places the two sides above and below a horizontal cut.
	Horizontal
	// Full gives both sides the whole rectangle. Only the first view of a
	// workspace is placed with it.
	Full
)

var directionNames = map[Direction]string{
	Vertical:   "vertical",
	Horizontal: "horizontal",
	Full:       "full",
}

func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return "unknown"
}

// Valid reports whether d is one of the declared directions.
func (d Direction) Valid() bool {
	_, ok := directionNames[d]
	return ok
}

// ParseDirection parses a direction name. Single-letter aliases "v", "h" and
// "f" are accepted; matching is case-insensitive.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical", "v":
		return Vertical, nil
	case "horizontal", "h":
		return Horizontal, nil
	case "full", "f":
		return Full, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidDirection, "invalid direction: %q (must be vertical, horizontal or full)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidDirection, "invalid direction: %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
