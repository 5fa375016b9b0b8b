package engine

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Log is the debug record written for every adapter call.
type Log struct {
	Type     string `json:"type"`
	Kind     string `json:"kind"`
	Query    string `json:"query"`
	Duration int64  `json:"duration"`
	Args     []any  `json:"args,omitempty"`
}

var whitespace = regexp.MustCompile(`\s+`)

func (l *Log) PrettyPrint(writer io.Writer) {
	fmt.Fprintf(writer, "\u001B[38;5;8m%-32s \u001B[38;5;24m%-8s\u001B[0m %8d\u001B[38;5;8mµs\u001B[0m %s\n",
		l.Type, l.Kind, l.Duration, clean(l.Query))
}

func clean(query string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(query, " "))
}

// operationType is the upper-cased first keyword of query, used as the "type" metric label.
func operationType(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}

	return strings.ToUpper(fields[0])
}
