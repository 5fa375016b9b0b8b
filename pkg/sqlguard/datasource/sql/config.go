package sql

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTrans "github.com/go-playground/validator/v10/translations/en"
	"github.com/go-sql-driver/mysql"

	"github.com/sllt/sqlguard/pkg/sqlguard/adapter"
	"github.com/sllt/sqlguard/pkg/sqlguard/config"
)

var errUnsupportedDialect = errors.New("unsupported dialect")

// DBConfig holds the connection settings read from the DB_* keys.
type DBConfig struct {
	Dialect     string `label:"DB_DIALECT" validate:"required,oneof=mysql postgres sqlite"`
	HostName    string `label:"DB_HOST" validate:"required_unless=Dialect sqlite"`
	User        string `label:"DB_USER" validate:"required_unless=Dialect sqlite"`
	Password    string `label:"DB_PASSWORD"`
	Port        string `label:"DB_PORT" validate:"omitempty,numeric"`
	Database    string `label:"DB_NAME" validate:"required"`
	SSLMode     string `label:"DB_SSL_MODE" validate:"omitempty,oneof=disable require verify-ca verify-full"`
	MaxIdleConn int    `label:"DB_MAX_IDLE_CONNECTION" validate:"gte=0"`
	MaxOpenConn int    `label:"DB_MAX_OPEN_CONNECTION" validate:"gte=0"`
}

const (
	defaultMaxIdleConn = 2
	defaultMySQLPort   = "3306"
	defaultPGPort      = "5432"
)

// ReadConfig builds a DBConfig from c. Dialect aliases such as postgresql or sqlite3 are normalized.
// The result is not validated yet.
func ReadConfig(c config.Config) *DBConfig {
	dialect := c.Get("DB_DIALECT")
	if k, ok := adapter.ParseKind(dialect); ok {
		dialect = k.String()
	}

	return &DBConfig{
		Dialect:     dialect,
		HostName:    c.Get("DB_HOST"),
		User:        c.Get("DB_USER"),
		Password:    c.Get("DB_PASSWORD"),
		Port:        c.Get("DB_PORT"),
		Database:    c.Get("DB_NAME"),
		SSLMode:     c.GetOrDefault("DB_SSL_MODE", "disable"),
		MaxIdleConn: intOrDefault(c.Get("DB_MAX_IDLE_CONNECTION"), defaultMaxIdleConn),
		MaxOpenConn: intOrDefault(c.Get("DB_MAX_OPEN_CONNECTION"), 0),
	}
}

func intOrDefault(s string, def int) int {
	if s == "" {
		return def
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}

	return n
}

var (
	validate     *validator.Validate
	trans        ut.Translator
	validateOnce sync.Once
)

func initValidator() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}

		return fld.Name
	})

	loc := en.New()
	uni := ut.New(loc, loc)
	trans, _ = uni.GetTranslator("en")
	_ = enTrans.RegisterDefaultTranslations(validate, trans)
}

// Validate checks the config and returns a readable, translated message per invalid key.
func (c *DBConfig) Validate() error {
	validateOnce.Do(initValidator)

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Translate(trans))
	}

	return fmt.Errorf("invalid database config: %s", strings.Join(msgs, "; "))
}

// Kind returns the adapter kind of the configured dialect.
func (c *DBConfig) Kind() adapter.Kind {
	k, _ := adapter.ParseKind(c.Dialect)
	return k
}

func (c *DBConfig) driverName() string {
	switch c.Kind() {
	case adapter.KindSQLite:
		return "sqlite"
	case adapter.KindPostgres:
		return "postgres"
	default:
		return "mysql"
	}
}

// DSN returns the data source name for the configured dialect.
func (c *DBConfig) DSN() (string, error) {
	switch c.Kind() {
	case adapter.KindMySQL:
		cfg := mysql.NewConfig()
		cfg.User = c.User
		cfg.Passwd = c.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(c.HostName, orDefault(c.Port, defaultMySQLPort))
		cfg.DBName = c.Database
		cfg.ParseTime = true
		cfg.InterpolateParams = true

		return cfg.FormatDSN(), nil
	case adapter.KindPostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     net.JoinHostPort(c.HostName, orDefault(c.Port, defaultPGPort)),
			Path:     "/" + c.Database,
			RawQuery: url.Values{"sslmode": {orDefault(c.SSLMode, "disable")}}.Encode(),
		}

		return u.String(), nil
	case adapter.KindSQLite:
		return "file:" + c.Database, nil
	default:
		return "", fmt.Errorf("%w: %q", errUnsupportedDialect, c.Dialect)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}

	return v
}
