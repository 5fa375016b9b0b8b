package adapter

import (
	"strings"
)

// Kind identifies an adapter implementation. The set is closed.
type Kind string

const (
	KindMySQL    Kind = "mysql"
	KindPostgres Kind = "postgres"
	KindSQLite   Kind = "sqlite"
)

// Kinds lists every known kind.
func Kinds() []Kind {
	return []Kind{KindMySQL, KindPostgres, KindSQLite}
}

func (k Kind) String() string {
	return string(k)
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindMySQL, KindPostgres, KindSQLite:
		return true
	default:
		return false
	}
}

// ParseKind maps a dialect name or alias onto a Kind.
//
// Supported values include:
//   - mysql, mariadb
//   - postgres, postgresql, supabase, cockroachdb
//   - sqlite, sqlite3
func ParseKind(name string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case string(KindMySQL), "mariadb":
		return KindMySQL, true
	case string(KindPostgres), "postgresql", "supabase", "cockroachdb":
		return KindPostgres, true
	case string(KindSQLite), "sqlite3":
		return KindSQLite, true
	default:
		return "", false
	}
}
