package errs

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	records []Diagnostic
}

func (r *recordingSink) Record(d Diagnostic) {
	r.records = append(r.records, d)
}

type codedError struct {
	code string
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() string  { return e.code }

type sqliteLikeError struct{ code int }

func (e *sqliteLikeError) Error() string { return fmt.Sprintf("constraint failed (%d)", e.code) }
func (e *sqliteLikeError) Code() int     { return e.code }

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassify_RuleTable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category Category
		message  string
		code     string
	}{
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1' for key 'PRIMARY'"},
			CategoryDuplicate, MessageDuplicate, "ER_DUP_ENTRY"},
		{"postgres duplicate via pq", &pq.Error{Code: "23505", Message: "duplicate key value"},
			CategoryDuplicate, MessageDuplicate, "23505"},
		{"postgres duplicate via pgx", &pgconn.PgError{Code: "23505", Message: "duplicate key value"},
			CategoryDuplicate, MessageDuplicate, "23505"},
		{"sqlite unique", &sqliteLikeError{code: 2067}, CategoryDuplicate, MessageDuplicate, "SQLITE_CONSTRAINT_UNIQUE"},
		{"coded duplicate", codedError{code: "ER_DUP_ENTRY", msg: "dup"}, CategoryDuplicate, MessageDuplicate, "ER_DUP_ENTRY"},
		{"mysql missing table", &mysql.MySQLError{Number: 1146, Message: "Table 'app.nope' doesn't exist"},
			CategoryTableNotFound, MessageUnprocessable, "ER_NO_SUCH_TABLE"},
		{"postgres missing relation", &pq.Error{Code: "42P01", Message: "relation does not exist"},
			CategoryTableNotFound, MessageUnprocessable, "42P01"},
		{"mysql unknown column", &mysql.MySQLError{Number: 1054, Message: "Unknown column 'x'"},
			CategoryFieldError, MessageInvalidParameters, "ER_BAD_FIELD_ERROR"},
		{"postgres unknown column", &pgconn.PgError{Code: "42703"}, CategoryFieldError, MessageInvalidParameters, "42703"},
		{"mysql foreign key", &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"},
			CategoryForeignKey, MessageNotPermitted, "ER_NO_REFERENCED_ROW_2"},
		{"sqlite foreign key", &sqliteLikeError{code: 787}, CategoryForeignKey, MessageNotPermitted,
			"SQLITE_CONSTRAINT_FOREIGNKEY"},
		{"refused", fmt.Errorf("dial: %w", syscall.ECONNREFUSED), CategoryConnection, MessageConnection, "ECONNREFUSED"},
		{"dns", &net.DNSError{Err: "no such host", Name: "db.local", IsNotFound: true},
			CategoryConnection, MessageConnection, "ENOTFOUND"},
		{"deadline", context.DeadlineExceeded, CategoryConnection, MessageConnection, "ETIMEDOUT"},
		{"os deadline", os.ErrDeadlineExceeded, CategoryConnection, MessageConnection, "ETIMEDOUT"},
		{"net timeout", timeoutError{}, CategoryConnection, MessageConnection, "ETIMEDOUT"},
		{"connect message", errors.New("could not connect to server"), CategoryConnection, MessageConnection, ""},
		{"syntax message", errors.New("near \"SELEC\": syntax error"), CategoryQuery, MessageUnprocessable, ""},
		{"SQL message", &mysql.MySQLError{Number: 1064, Message: "You have an error in your SQL syntax"},
			CategoryQuery, MessageUnprocessable, "ER_PARSE_ERROR"},
		{"unknown", errors.New("disk full"), CategoryUnknown, MessageUnknown, ""},
		{"message match is case sensitive", errors.New("sql went wrong"), CategoryUnknown, MessageUnknown, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sink := &recordingSink{}
			c := NewClassifier(sink)

			got := c.Classify(tc.err, "SELECT 1", nil)

			require.NotNil(t, got)
			assert.Equal(t, tc.category, got.Category)
			assert.Equal(t, tc.message, got.UserMessage)
			assert.Equal(t, tc.message, got.Error())
			assert.Equal(t, tc.code, got.Code)
			require.ErrorIs(t, got, tc.err)
			require.Len(t, sink.records, 1)
			assert.Equal(t, got.ID, sink.records[0].ID)
		})
	}
}

func TestClassify_DetailContents(t *testing.T) {
	sink := &recordingSink{}
	c := NewClassifier(sink)
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	raw := pkgerrors.WithStack(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	got := c.Classify(raw, "INSERT INTO users (id) VALUES (?)", []any{1})

	assert.Contains(t, got.Detail, "Original error: Error 1062: Duplicate entry")
	assert.Contains(t, got.Detail, "SQL: INSERT INTO users (id) VALUES (?)")
	assert.Contains(t, got.Detail, "Params: [1]")
	assert.Contains(t, got.Detail, "Error code: ER_DUP_ENTRY")
	assert.Contains(t, got.Detail, "classifier_test.go")
	assert.NotContains(t, got.Error(), "INSERT")

	require.Len(t, sink.records, 1)

	d := sink.records[0]
	assert.Equal(t, fixed, d.Time)
	assert.Equal(t, CategoryDuplicate, d.Category)
	assert.Equal(t, MessageDuplicate, d.UserMessage)
	assert.Equal(t, got.Detail, d.Detail)
}

func TestClassify_NoStackNoCode(t *testing.T) {
	c := NewClassifier(&recordingSink{})

	got := c.Classify(errors.New("boom"), "SELECT ?", []any{"x"})

	assert.Contains(t, got.Detail, "Stack: not available")
	assert.Contains(t, got.Detail, "Error code: N/A")
	assert.Contains(t, got.Detail, `Params: ["x"]`)
}

func TestClassify_PassesThroughClassified(t *testing.T) {
	sink := &recordingSink{}
	c := NewClassifier(sink)

	first := c.Classify(errors.New("boom"), "SELECT 1", nil)
	wrapped := fmt.Errorf("nested: %w", first)

	second := c.Classify(wrapped, "SELECT 2", nil)

	assert.Same(t, first, second)
	assert.Len(t, sink.records, 1)
}

func TestClassify_Nil(t *testing.T) {
	assert.Nil(t, NewClassifier(&recordingSink{}).Classify(nil, "", nil))
}

func TestCategoryHelpers(t *testing.T) {
	c := NewClassifier(SinkFunc(func(Diagnostic) {}))
	e := c.New(CategoryValidationEmpty, MessageInvalidParameters, "detail", "", nil)

	cat, ok := CategoryOf(fmt.Errorf("wrap: %w", e))
	require.True(t, ok)
	assert.Equal(t, CategoryValidationEmpty, cat)
	assert.True(t, cat.IsValidation())
	assert.False(t, CategoryDuplicate.IsValidation())
	assert.True(t, Is(e, CategoryValidationEmpty))
	assert.False(t, Is(errors.New("plain"), CategoryValidationEmpty))
	require.ErrorIs(t, e, &Error{Category: CategoryValidationEmpty})
	assert.NotErrorIs(t, e, &Error{Category: CategoryDuplicate})

	got, ok := As(e)
	require.True(t, ok)
	assert.Same(t, e, got)
	assert.Len(t, Categories(), 10)
}

func TestFormatParams(t *testing.T) {
	assert.Equal(t, "[]", FormatParams(nil))
	assert.Equal(t, `[1,"a",null]`, FormatParams([]any{1, "a", nil}))
	assert.Contains(t, FormatParams([]any{make(chan int)}), "chan int")
}

func TestConfiguration(t *testing.T) {
	sink := &recordingSink{}
	e := NewClassifier(sink).Configuration("adapter kind is required", nil)

	assert.Equal(t, CategoryConfiguration, e.Category)
	assert.Equal(t, "Database is not configured correctly: adapter kind is required", e.Error())
	assert.Equal(t, "adapter kind is required", e.Detail)
	assert.Len(t, sink.records, 1)
}
