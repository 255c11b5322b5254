package kz

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode is a KZ game mode as identified by the GlobalAPI
type Mode int

const (
	ModeKZTimer  Mode = 200
	ModeSimpleKZ Mode = 201
	ModeVanilla  Mode = 202
)

// Modes lists every known mode in GlobalAPI id order
var Modes = []Mode{ModeKZTimer, ModeSimpleKZ, ModeVanilla}

// ModeFromID converts a GlobalAPI mode id into a Mode
func ModeFromID(id int) (Mode, error) {
	switch Mode(id) {
	case ModeKZTimer, ModeSimpleKZ, ModeVanilla:
		return Mode(id), nil
	default:
		return 0, fmt.Errorf("unknown mode id: %d", id)
	}
}

// String returns the mode's full name
func (m Mode) String() string {
	switch m {
	case ModeKZTimer:
		return "KZTimer"
	case ModeSimpleKZ:
		return "SimpleKZ"
	case ModeVanilla:
		return "Vanilla"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Short returns the abbreviation used in chat and on KZ:GO
func (m Mode) Short() string {
	switch m {
	case ModeKZTimer:
		return "KZT"
	case ModeSimpleKZ:
		return "SKZ"
	case ModeVanilla:
		return "VNL"
	default:
		return "?"
	}
}

// Tier is the difficulty rating of a map, 1 (Very Easy) through 7 (Death)
type Tier uint8

const (
	TierVeryEasy Tier = iota + 1
	TierEasy
	TierMedium
	TierHard
	TierVeryHard
	TierExtreme
	TierDeath
)

var tierNames = map[Tier]string{
	TierVeryEasy: "Very Easy",
	TierEasy:     "Easy",
	TierMedium:   "Medium",
	TierHard:     "Hard",
	TierVeryHard: "Very Hard",
	TierExtreme:  "Extreme",
	TierDeath:    "Death",
}

// Valid reports whether t is within 1..7
func (t Tier) Valid() bool {
	return t >= TierVeryEasy && t <= TierDeath
}

// String returns the tier's display name
func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tier(%d)", uint8(t))
}

// MapIdentifier identifies a map either by its numeric id or by (part of) its name
type MapIdentifier struct {
	ID   uint16
	Name string
	byID bool
}

// MapID returns an identifier matching a map id exactly
func MapID(id uint16) MapIdentifier {
	return MapIdentifier{ID: id, byID: true}
}

// MapName returns an identifier matched against map names
func MapName(name string) MapIdentifier {
	return MapIdentifier{Name: name}
}

// ParseMapIdentifier treats input that parses as an unsigned 16-bit integer as a
// map id and anything else as a name.
func ParseMapIdentifier(input string) MapIdentifier {
	input = strings.TrimSpace(input)
	if id, err := strconv.ParseUint(input, 10, 16); err == nil {
		return MapID(uint16(id))
	}
	return MapName(input)
}

// IsID reports whether the identifier refers to a map id
func (m MapIdentifier) IsID() bool {
	return m.byID
}

func (m MapIdentifier) String() string {
	if m.byID {
		return strconv.FormatUint(uint64(m.ID), 10)
	}
	return m.Name
}
