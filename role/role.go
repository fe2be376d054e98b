// Package role defines the audiences the guidance engine serves.
//
// A Role is a closed set. Callers parse untrusted strings once with Parse and
// then switch over the three values; there is no fallback role.
package role

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRole is returned when a string does not name a role.
var ErrUnknownRole = errors.New("unknown role")

// Role is one of Student, Parent or Government.
type Role int

const (
	Student Role = iota + 1
	Parent
	Government
)

// All lists every role in display order.
var All = []Role{Student, Parent, Government}

// Parse converts the wire name of a role. Matching is case-insensitive.
func Parse(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "student":
		return Student, nil
	case "parent":
		return Parent, nil
	case "government":
		return Government, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r >= Student && r <= Government
}

func (r Role) String() string {
	switch r {
	case Student:
		return "student"
	case Parent:
		return "parent"
	case Government:
		return "government"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// MarshalText encodes the wire name. The zero Role cannot be encoded.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText decodes a wire name through Parse.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
