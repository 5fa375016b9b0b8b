package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sllt/sqlguard/pkg/sqlguard/logging"
)

type rule struct {
	category Category
	message  string
	codes    []string
	contains []string
}

// Checked in order, first match wins. Message matching is case-sensitive.
var rules = []rule{
	{
		category: CategoryDuplicate,
		message:  MessageDuplicate,
		codes:    []string{"ER_DUP_ENTRY", "ER_DUP_KEY", "23505", "SQLITE_CONSTRAINT_UNIQUE", "SQLITE_CONSTRAINT_PRIMARYKEY"},
	},
	{
		category: CategoryTableNotFound,
		message:  MessageUnprocessable,
		codes:    []string{"ER_NO_SUCH_TABLE", "42P01"},
	},
	{
		category: CategoryFieldError,
		message:  MessageInvalidParameters,
		codes:    []string{"ER_BAD_FIELD_ERROR", "42703"},
	},
	{
		category: CategoryForeignKey,
		message:  MessageNotPermitted,
		codes: []string{"ER_NO_REFERENCED_ROW_2", "ER_ROW_IS_REFERENCED_2", "ER_NO_REFERENCED_ROW",
			"ER_ROW_IS_REFERENCED", "23503", "SQLITE_CONSTRAINT_FOREIGNKEY"},
	},
	{
		category: CategoryConnection,
		message:  MessageConnection,
		codes:    []string{codeConnRefused, codeNotFound, codeTimeout},
		contains: []string{"connect"},
	},
	{
		category: CategoryQuery,
		message:  MessageUnprocessable,
		contains: []string{"syntax", "SQL"},
	},
}

func (r rule) matches(s Signal) bool {
	for _, c := range r.codes {
		if s.Code == c {
			return true
		}
	}

	for _, sub := range r.contains {
		if strings.Contains(s.Message, sub) {
			return true
		}
	}

	return false
}

// Match returns the category and user message the rule table assigns to s.
func Match(s Signal) (Category, string) {
	for _, r := range rules {
		if r.matches(s) {
			return r.category, r.message
		}
	}

	return CategoryUnknown, MessageUnknown
}

// Sink receives a Diagnostic for every classified error at the moment it is built.
type Sink interface {
	Record(d Diagnostic)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(d Diagnostic)

func (f SinkFunc) Record(d Diagnostic) { f(d) }

// LoggerSink writes diagnostics at ERROR level.
type LoggerSink struct {
	Logger logging.Logger
}

func (s LoggerSink) Record(d Diagnostic) {
	s.Logger.Error(d)
}

// Classifier builds classified errors and reports each one to its sink.
type Classifier struct {
	sink Sink
	now  func() time.Time
}

// NewClassifier creates a Classifier. A nil sink logs diagnostics to stdout/stderr at ERROR level.
func NewClassifier(sink Sink) *Classifier {
	if sink == nil {
		sink = LoggerSink{Logger: logging.NewLogger(logging.ERROR)}
	}

	return &Classifier{sink: sink, now: time.Now}
}

var (
	defaultClassifier *Classifier
	defaultOnce       sync.Once
)

// Default returns the process-wide classifier that logs to stdout/stderr.
func Default() *Classifier {
	defaultOnce.Do(func() {
		defaultClassifier = NewClassifier(nil)
	})

	return defaultClassifier
}

// New builds an Error and emits its Diagnostic.
func (c *Classifier) New(category Category, userMessage, detail, code string, cause error) *Error {
	e := &Error{
		ID:          uuid.NewString(),
		Category:    category,
		UserMessage: userMessage,
		Detail:      detail,
		Code:        code,
		cause:       cause,
	}

	c.sink.Record(Diagnostic{
		ID:          e.ID,
		Time:        c.now(),
		Category:    e.Category,
		UserMessage: e.UserMessage,
		Detail:      e.Detail,
		Code:        e.Code,
	})

	return e
}

// Classify turns a raw driver error into an *Error. An error that already carries a classification is
// returned as is and is not reported a second time. A nil err yields nil.
func (c *Classifier) Classify(err error, sql string, params []any) *Error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	sig := ReadSignal(err)
	category, message := Match(sig)

	return c.New(category, message, detail(sig, sql, params), sig.Code, err)
}

// Configuration builds a CONFIGURATION error. These describe wiring mistakes rather than driver failures,
// so reason is part of the user message as well as the detail.
func (c *Classifier) Configuration(reason string, cause error) *Error {
	return c.New(CategoryConfiguration, MessageConfiguration+": "+reason, reason, "", cause)
}

func detail(sig Signal, sql string, params []any) string {
	stack := sig.Stack
	if stack == "" {
		stack = notAvailable
	}

	code := sig.Code
	if code == "" {
		code = noCode
	}

	return fmt.Sprintf("Original error: %s\nStack: %s\nSQL: %s\nParams: %s\nError code: %s",
		sig.Message, stack, sql, FormatParams(params), code)
}

// FormatParams serializes params for diagnostic output.
func FormatParams(params []any) string {
	if params == nil {
		params = []any{}
	}

	b, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%#v", params)
	}

	return string(b)
}
