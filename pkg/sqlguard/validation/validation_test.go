package validation

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sllt/sqlguard/pkg/sqlguard/errs"
)

func newTestValidator() (*Validator, *[]errs.Diagnostic) {
	var records []errs.Diagnostic

	c := errs.NewClassifier(errs.SinkFunc(func(d errs.Diagnostic) {
		records = append(records, d)
	}))

	return New(c), &records
}

func TestValidate(t *testing.T) {
	empty := ""
	name := "john"

	var nilPtr *int

	tests := []struct {
		name     string
		sql      string
		params   any
		category errs.Category
	}{
		{name: "matching positional", sql: "SELECT * FROM users WHERE id = ?", params: []any{1}},
		{name: "no placeholders nil params", sql: "SELECT * FROM users", params: nil},
		{name: "no placeholders empty params", sql: "SELECT * FROM users", params: []any{}},
		{name: "scalar param", sql: "SELECT * FROM users WHERE id = ?", params: 7},
		{name: "typed slice", sql: "SELECT * FROM users WHERE id IN (?, ?)", params: []int{1, 2}},
		{name: "array", sql: "SELECT * FROM users WHERE id IN (?, ?)", params: [2]string{"a", "b"}},
		{name: "bytes are one value", sql: "INSERT INTO blobs (data) VALUES (?)", params: []byte("xyz")},
		{name: "zero values are not empty", sql: "SELECT ?, ?", params: []any{0, false}},
		{name: "valid null type", sql: "SELECT ?", params: []any{sql.NullString{String: "x", Valid: true}}},
		{name: "string pointer", sql: "SELECT ?", params: []any{&name}},
		{name: "numbered repeated", sql: "SELECT * FROM t WHERE a = $1 OR b = $1", params: []any{1}},
		{name: "named repeated", sql: "SELECT * FROM t WHERE a = :a OR b = :a", params: []any{1, 1}},

		{name: "too few", sql: "SELECT * FROM users WHERE id = ? AND name = ?", params: []any{1},
			category: errs.CategoryValidationMismatch},
		{name: "too many", sql: "SELECT * FROM users", params: []any{1},
			category: errs.CategoryValidationMismatch},
		{name: "nil params with placeholder", sql: "SELECT * FROM users WHERE id = ?", params: nil,
			category: errs.CategoryValidationMismatch},
		{name: "named repeated counted twice", sql: "SELECT * FROM t WHERE a = :a OR b = :a", params: []any{1},
			category: errs.CategoryValidationMismatch},
		{name: "nil element", sql: "SELECT ?, ?", params: []any{1, nil}, category: errs.CategoryValidationEmpty},
		{name: "empty string", sql: "SELECT ?", params: []any{""}, category: errs.CategoryValidationEmpty},
		{name: "scalar empty string", sql: "SELECT ?", params: "", category: errs.CategoryValidationEmpty},
		{name: "nil pointer", sql: "SELECT ?", params: []any{nilPtr}, category: errs.CategoryValidationEmpty},
		{name: "empty string pointer", sql: "SELECT ?", params: []any{&empty}, category: errs.CategoryValidationEmpty},
		{name: "invalid null type", sql: "SELECT ?", params: []any{sql.NullInt64{}}, category: errs.CategoryValidationEmpty},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, records := newTestValidator()

			err := v.Validate(tc.sql, tc.params)

			if tc.category == "" {
				require.NoError(t, err)
				assert.Empty(t, *records)

				return
			}

			require.Error(t, err)

			e, ok := errs.As(err)
			require.True(t, ok)
			assert.Equal(t, tc.category, e.Category)
			assert.Equal(t, "Invalid request parameters", e.UserMessage)
			assert.Contains(t, e.Detail, tc.sql)
			require.Len(t, *records, 1)
			assert.Equal(t, e.Detail, (*records)[0].Detail)
		})
	}
}

func TestValidate_MismatchDetail(t *testing.T) {
	v, _ := newTestValidator()

	err := v.Validate("SELECT * FROM users WHERE id = ? AND name = ?", []any{1})

	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t,
		"Parameter count mismatch. Expected 2, got 1. SQL: SELECT * FROM users WHERE id = ? AND name = ?, Params: [1]",
		e.Detail)
}

func TestValidate_EmptyReportsFirstIndex(t *testing.T) {
	v, _ := newTestValidator()

	err := v.Validate("SELECT ?, ?, ?", []any{1, "", nil})

	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Contains(t, e.Detail, "Parameter at index 1 is null, undefined, or empty.")
	assert.Contains(t, e.Detail, `Params: [1,"",null]`)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, []any{}, Normalize(nil))
	assert.Equal(t, []any{}, Normalize([]int(nil)))
	assert.Equal(t, []any{5}, Normalize(5))
	assert.Equal(t, []any{"a", "b"}, Normalize([]string{"a", "b"}))
	assert.Equal(t, []any{[]byte("x")}, Normalize([]byte("x")))

	in := []any{1, 2}
	out := Normalize(in)
	out[0] = 99
	assert.Equal(t, 1, in[0], "caller slice must not be modified")
}
