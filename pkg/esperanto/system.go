package esperanto

import (
	"errors"
	"fmt"
	"strings"
)

// System identifies one of the three representations of Esperanto text.
type System int

// Supported systems.
const (
	UTF8 System = iota
	XSystem
	HSystem
)

// ErrUnknownSystem is returned when a system name or value is not recognised.
var ErrUnknownSystem = errors.New("unknown transliteration system")

// Systems returns every supported system.
func Systems() []System {
	return []System{UTF8, XSystem, HSystem}
}

// String returns the one-letter code used on the command line.
func (s System) String() string {
	switch s {
	case UTF8:
		return "u"
	case XSystem:
		return "x"
	case HSystem:
		return "h"
	default:
		return fmt.Sprintf("System(%d)", int(s))
	}
}

// Name returns a human-readable name.
func (s System) Name() string {
	switch s {
	case UTF8:
		return "UTF-8"
	case XSystem:
		return "x-system"
	case HSystem:
		return "h-system"
	default:
		return s.String()
	}
}

// Valid reports whether s is one of the supported systems.
func (s System) Valid() bool {
	return s >= UTF8 && s <= HSystem
}

// ParseSystem parses a system code or name, case-insensitively.
func ParseSystem(name string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "u", "utf8", "utf-8":
		return UTF8, nil
	case "x", "x-system", "xsystem":
		return XSystem, nil
	case "h", "h-system", "hsystem":
		return HSystem, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSystem, name)
	}
}
