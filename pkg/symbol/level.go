package symbol

import (
	"strings"

	"github.com/matzehuels/qrsheet/pkg/errors"
)

// Level is an error-correction level.
type Level int

const (
	// LevelDetect is the detection-only level of M1 symbols.
	LevelDetect Level = iota - 1
	LevelL
	LevelM
	LevelQ
	LevelH
)

// DefaultLevel is used for standard symbols when no level is requested.
const DefaultLevel = LevelL

// String returns the single letter name of the level.
func (l Level) String() string {
	switch l {
	case LevelDetect:
		return "detect"
	case LevelL:
		return "L"
	case LevelM:
		return "M"
	case LevelQ:
		return "Q"
	case LevelH:
		return "H"
	}
	return "unknown"
}

// ParseLevel parses an error-correction level. It accepts the letters
// l, m, q and h and the words low, medium, quartile and high in any case.
// An empty string yields DefaultLevel.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultLevel, nil
	case "l", "low":
		return LevelL, nil
	case "m", "medium":
		return LevelM, nil
	case "q", "quartile":
		return LevelQ, nil
	case "h", "high":
		return LevelH, nil
	}
	return DefaultLevel, errors.New(errors.ErrCodeInvalidInput, "invalid error level %q: use l, m, q or h", s)
}
