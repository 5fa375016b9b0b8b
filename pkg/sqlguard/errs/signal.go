package errs

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"syscall"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	pkgerrors "github.com/pkg/errors"
)

// Signal is what the classifier reads from a raw error.
type Signal struct {
	Code    string
	Message string
	Stack   string
}

const (
	codeConnRefused = "ECONNREFUSED"
	codeNotFound    = "ENOTFOUND"
	codeTimeout     = "ETIMEDOUT"

	notAvailable = "not available"
	noCode       = "N/A"
)

// mysql error numbers mapped onto the symbolic names the rule table uses.
var mysqlCodes = map[uint16]string{
	1022: "ER_DUP_KEY",
	1062: "ER_DUP_ENTRY",
	1146: "ER_NO_SUCH_TABLE",
	1054: "ER_BAD_FIELD_ERROR",
	1216: "ER_NO_REFERENCED_ROW",
	1217: "ER_ROW_IS_REFERENCED",
	1451: "ER_ROW_IS_REFERENCED_2",
	1452: "ER_NO_REFERENCED_ROW_2",
	1064: "ER_PARSE_ERROR",
}

// sqlite extended result codes, as reported by modernc.org/sqlite's Error.Code().
var sqliteCodes = map[int]string{
	1555: "SQLITE_CONSTRAINT_PRIMARYKEY",
	2067: "SQLITE_CONSTRAINT_UNIQUE",
	787:  "SQLITE_CONSTRAINT_FOREIGNKEY",
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

type stringCoder interface {
	Code() string
}

type intCoder interface {
	Code() int
}

type sqlStater interface {
	SQLState() string
}

// ReadSignal extracts the engine code, message and stack from err.
func ReadSignal(err error) Signal {
	if err == nil {
		return Signal{}
	}

	return Signal{
		Code:    extractCode(err),
		Message: err.Error(),
		Stack:   extractStack(err),
	}
}

//nolint:gocyclo // one branch per driver error shape
func extractCode(err error) string {
	var (
		myErr  *mysql.MySQLError
		pqErr  *pq.Error
		pgErr  *pgconn.PgError
		dnsErr *net.DNSError
		netErr net.Error
		sc     stringCoder
		ic     intCoder
		ss     sqlStater
	)

	switch {
	case errors.As(err, &myErr):
		if name, ok := mysqlCodes[myErr.Number]; ok {
			return name
		}

		return strconv.Itoa(int(myErr.Number))
	case errors.As(err, &pqErr):
		return string(pqErr.Code)
	case errors.As(err, &pgErr):
		return pgErr.Code
	case errors.As(err, &ic):
		if name, ok := sqliteCodes[ic.Code()]; ok {
			return name
		}

		return strconv.Itoa(ic.Code())
	case errors.As(err, &sc):
		return sc.Code()
	case errors.As(err, &ss):
		return ss.SQLState()
	case errors.Is(err, syscall.ECONNREFUSED):
		return codeConnRefused
	case errors.As(err, &dnsErr):
		return codeNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, os.ErrDeadlineExceeded):
		return codeTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return codeTimeout
	}

	return ""
}

func extractStack(err error) string {
	var st stackTracer

	// the outermost stack is the one closest to the call site
	if errors.As(err, &st) {
		return fmt.Sprintf("%+v", st.StackTrace())
	}

	return ""
}
