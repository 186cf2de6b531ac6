// Package jsonfix decodes JSON produced by language models. Decoding runs
// through three stages: Strict, then a single Repaired attempt, then Failed.
package jsonfix

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

type Stage int

const (
	StageStrict Stage = iota
	StageRepaired
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageStrict:
		return "strict"
	case StageRepaired:
		return "repaired"
	default:
		return "failed"
	}
}

// ErrUnparseable is returned once both the strict and the repaired decode failed
var ErrUnparseable = errors.New("jsonfix: output is not valid JSON after repair")

var fence = regexp.MustCompile("```[a-zA-Z]*")

// StripFences removes markdown code fence markers and surrounding whitespace
func StripFences(s string) string {
	return strings.TrimSpace(fence.ReplaceAllString(s, ""))
}

// Decode strips fences from raw and unmarshals it into v. It returns the
// stage that produced v; on StageFailed the error wraps ErrUnparseable.
func Decode(raw string, v any) (Stage, error) {
	text := StripFences(raw)

	strictErr := json.Unmarshal([]byte(text), v)
	if strictErr == nil {
		return StageStrict, nil
	}

	repaired := Repair(text)
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return StageFailed, fmt.Errorf("%w: strict: %v; repaired: %v", ErrUnparseable, strictErr, err)
	}
	return StageRepaired, nil
}
