package block

import "fmt"

// Direction is the flow direction of a wiring.
type Direction int

const (
	// Covariant flows forward in time/computation.
	Covariant Direction = iota
	// Contravariant flows backward (feedback within a timestep).
	Contravariant
)

var directionNames = map[Direction]string{
	Covariant:     "covariant",
	Contravariant: "contravariant",
}

// String returns the stable lowercase name of the direction.
func (d Direction) String() string {
	if n, ok := directionNames[d]; ok {
		return n
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Valid reports whether d is a defined direction.
func (d Direction) Valid() bool {
	_, ok := directionNames[d]
	return ok
}

// ParseDirection parses a stable direction name.
func ParseDirection(s string) (Direction, error) {
	for d, n := range directionNames {
		if n == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q, must be \"covariant\" or \"contravariant\"", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid direction %d", int(d))
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
