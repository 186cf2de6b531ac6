package skill

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Abraxas-365/careerlens/pkg/errx"
)

// Level is a declared proficiency. The zero value is not a valid level.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
	LevelExpert       Level = "Expert"
)

// DefaultLevel is assigned when a source does not state a proficiency
const DefaultLevel = LevelIntermediate

var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

var ErrRegistry = errx.NewRegistry("SKILL")

var CodeInvalidLevel = ErrRegistry.Register("INVALID_LEVEL", errx.TypeValidation, http.StatusBadRequest, "Invalid skill level")

func ErrInvalidLevel() *errx.Error {
	return ErrRegistry.New(CodeInvalidLevel)
}

// ParseLevel accepts any casing of a known level. Blank input yields DefaultLevel.
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLevel, nil
	}
	for _, l := range Levels {
		if strings.EqualFold(s, string(l)) {
			return l, nil
		}
	}
	return "", ErrInvalidLevel().
		WithDetail("level", s).
		WithDetail("allowed", Levels)
}

func (l Level) IsValid() bool {
	for _, known := range Levels {
		if l == known {
			return true
		}
	}
	return false
}

func (l *Level) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrInvalidLevel().WithCause(err)
	}
	parsed, err := ParseLevel(raw)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
