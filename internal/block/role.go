package block

import "fmt"

// Role classifies an atomic block's function in the modeled system.
type Role int

const (
	// RoleBoundary marks exogenous input sources. Boundary blocks must not
	// declare forward inputs.
	RoleBoundary Role = iota
	// RolePolicy marks decision functions.
	RolePolicy
	// RoleMechanism marks state-writing transition functions. Mechanism
	// blocks must not declare backward channels.
	RoleMechanism
	// RoleControl marks admissibility/control decisions.
	RoleControl
)

var roleNames = map[Role]string{
	RoleBoundary:  "boundary",
	RolePolicy:    "policy",
	RoleMechanism: "mechanism",
	RoleControl:   "control",
}

// String returns the stable lowercase name of the role.
func (r Role) String() string {
	if n, ok := roleNames[r]; ok {
		return n
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Valid reports whether r is one of the four defined roles.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRole parses a stable role name into a Role.
func ParseRole(s string) (Role, error) {
	for r, n := range roleNames {
		if n == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q, must be one of boundary, policy, mechanism, control", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid role %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
