// Package validation rejects malformed parameter sets before a statement reaches the database.
package validation

import (
	"database/sql/driver"
	"fmt"
	"reflect"

	"github.com/sllt/sqlguard/pkg/sqlguard/errs"
	"github.com/sllt/sqlguard/pkg/sqlguard/placeholder"
)

// Validator checks parameter sets and reports failures through its classifier.
type Validator struct {
	classifier *errs.Classifier
}

// New returns a Validator. A nil classifier uses errs.Default().
func New(classifier *errs.Classifier) *Validator {
	if classifier == nil {
		classifier = errs.Default()
	}

	return &Validator{classifier: classifier}
}

// Validate checks params against sql using the default classifier.
func Validate(sql string, params any) error {
	return New(nil).Validate(sql, params)
}

// Validate succeeds when the number of params equals the placeholder count of sql and no param is
// nil or an empty string. Failures are *errs.Error values in a VALIDATION_* category.
func (v *Validator) Validate(sql string, params any) error {
	normalized := Normalize(params)

	expected := placeholder.Count(sql)
	if expected != len(normalized) {
		return v.classifier.New(errs.CategoryValidationMismatch, errs.MessageInvalidParameters,
			fmt.Sprintf("Parameter count mismatch. Expected %d, got %d. SQL: %s, Params: %s",
				expected, len(normalized), sql, errs.FormatParams(normalized)), "", nil)
	}

	for i, p := range normalized {
		if isEmpty(p) {
			return v.classifier.New(errs.CategoryValidationEmpty, errs.MessageInvalidParameters,
				fmt.Sprintf("Parameter at index %d is null, undefined, or empty. SQL: %s, Params: %s",
					i, sql, errs.FormatParams(normalized)), "", nil)
		}
	}

	return nil
}

// Normalize turns params into an ordered parameter list. nil becomes an empty list, a slice or array
// is copied element by element, and any other value becomes a one-element list. []byte is treated as
// a single value since drivers bind it as one blob.
func Normalize(params any) []any {
	switch v := params.(type) {
	case nil:
		return []any{}
	case []any:
		out := make([]any, len(v))
		copy(out, v)

		return out
	case []byte:
		return []any{v}
	}

	rv := reflect.ValueOf(params)

	switch rv.Kind() { //nolint:exhaustive // everything else is a scalar
	case reflect.Slice:
		if rv.IsNil() {
			return []any{}
		}

		fallthrough
	case reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}

		return out
	default:
		return []any{params}
	}
}

// isEmpty reports whether p is nil, a nil pointer, a driver.Valuer yielding nil, or "".
func isEmpty(p any) bool {
	if p == nil {
		return true
	}

	switch v := p.(type) {
	case string:
		return v == ""
	case *string:
		return v == nil || *v == ""
	case driver.Valuer:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
			return true
		}

		val, err := v.Value()

		return err == nil && isEmpty(val)
	}

	rv := reflect.ValueOf(p)
	switch rv.Kind() { //nolint:exhaustive // only nillable kinds matter here
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
