package placeholder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected int
	}{
		{name: "no placeholders", sql: "SELECT * FROM users", expected: 0},
		{name: "single positional", sql: "SELECT * FROM users WHERE id = ?", expected: 1},
		{name: "two positional", sql: "SELECT * FROM users WHERE id = ? AND name = ?", expected: 2},
		{name: "positional inside literal", sql: "SELECT '?' FROM users WHERE id = ?", expected: 2},
		{name: "numbered distinct", sql: "SELECT * FROM users WHERE id = $1 AND name = $2", expected: 2},
		{name: "numbered repeated", sql: "SELECT * FROM users WHERE id = $1 OR parent_id = $1", expected: 1},
		{name: "numbered leading zero", sql: "SELECT * FROM users WHERE id = $01 OR parent_id = $1", expected: 1},
		{name: "numbered out of order", sql: "UPDATE users SET name = $2 WHERE id = $1", expected: 2},
		{name: "named", sql: "SELECT * FROM users WHERE id = :id", expected: 1},
		{name: "named repeated", sql: "SELECT * FROM users WHERE id = :a OR parent_id = :a", expected: 2},
		{name: "positional wins over numbered", sql: "SELECT $1 FROM users WHERE id = ?", expected: 1},
		{name: "numbered wins over named", sql: "SELECT * FROM users WHERE id = $1 AND name = :name", expected: 1},
		{name: "empty", sql: "", expected: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Count(tc.sql))
		})
	}
}

func TestCount_PositionalIgnoresSurroundingText(t *testing.T) {
	for n := 0; n < 20; n++ {
		sql := "INSERT INTO t VALUES (" + strings.Repeat("?, ", n) + "now()) -- :named $3"
		if n == 0 {
			// with no ? the numbered marker in the comment is picked up instead
			assert.Equal(t, 1, Count(sql))
			continue
		}

		assert.Equal(t, n, Count(sql), "n=%d", n)
	}
}

func TestDetect(t *testing.T) {
	assert.Equal(t, StylePositional, Detect("a = ?"))
	assert.Equal(t, StyleNumbered, Detect("a = $3"))
	assert.Equal(t, StyleNamed, Detect("a = :x"))
	assert.Equal(t, StyleNone, Detect("SELECT 1"))
	assert.Equal(t, "numbered", StyleNumbered.String())
	assert.Equal(t, "none", Style(42).String())
}
