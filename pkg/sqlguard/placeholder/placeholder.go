// Package placeholder infers how many bound parameters a SQL statement expects.
//
// Three placeholder conventions are recognized, checked in order, and never mixed:
//
//   - positional: ? (mysql, sqlite)
//   - numbered:   $1, $2 (postgres)
//   - named:      :name
//
// The scan is purely textual. Placeholders inside string literals or comments are counted too.
package placeholder

import (
	"regexp"
	"strconv"
	"strings"
)

// Style is the placeholder convention detected in a statement.
type Style int

const (
	StyleNone Style = iota
	StylePositional
	StyleNumbered
	StyleNamed
)

var (
	numberedPattern = regexp.MustCompile(`\$(\d+)`)
	namedPattern    = regexp.MustCompile(`:\w+`)
)

func (s Style) String() string {
	switch s {
	case StylePositional:
		return "positional"
	case StyleNumbered:
		return "numbered"
	case StyleNamed:
		return "named"
	default:
		return "none"
	}
}

// Detect returns the first placeholder style found in sql.
func Detect(sql string) Style {
	switch {
	case strings.Contains(sql, "?"):
		return StylePositional
	case numberedPattern.MatchString(sql):
		return StyleNumbered
	case namedPattern.MatchString(sql):
		return StyleNamed
	default:
		return StyleNone
	}
}

// Count returns the number of parameters sql expects.
//
// Positional markers are counted per occurrence. Numbered markers count once per distinct number,
// so "$1 ... $1" expects a single parameter. Named markers count per occurrence, so ":a ... :a" expects two.
func Count(sql string) int {
	switch Detect(sql) {
	case StylePositional:
		return strings.Count(sql, "?")
	case StyleNumbered:
		return countDistinctNumbers(sql)
	case StyleNamed:
		return len(namedPattern.FindAllStringIndex(sql, -1))
	default:
		return 0
	}
}

func countDistinctNumbers(sql string) int {
	seen := make(map[string]struct{})

	for _, m := range numberedPattern.FindAllStringSubmatch(sql, -1) {
		key := m[1]

		// $01 and $1 refer to the same parameter.
		if n, err := strconv.ParseUint(m[1], 10, 64); err == nil {
			key = strconv.FormatUint(n, 10)
		}

		seen[key] = struct{}{}
	}

	return len(seen)
}
