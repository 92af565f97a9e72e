// Package fieldparse recovers structured (field id, value) answers from
// the serialized dynamic-field blob stored on each registration.
package fieldparse

import (
	"regexp"
	"strconv"
	"strings"
)

// Answer is one parsed dynamic-field answer.
type Answer struct {
	FieldID int64
	Value   string
}

// One answer per line: "<digits>: <rest-of-line>". Values never contain
// embedded newlines; surrounding whitespace is insignificant.
var answerRe = regexp.MustCompile(`(\d+):[ \t]*([^\n]*)`)

// Parse scans a raw blob for "<field_id>: <value>" pairs. Malformed
// lines (no colon, non-numeric key, numeric overflow) are skipped, not
// errors. Values are trimmed of surrounding whitespace.
func Parse(raw string) []Answer {
	if raw == "" {
		return nil
	}

	matches := answerRe.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil
	}

	answers := make([]Answer, 0, len(matches))
	for _, m := range matches {
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		answers = append(answers, Answer{
			FieldID: id,
			Value:   strings.TrimSpace(m[2]),
		})
	}
	return answers
}
