package gateway

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ErrorKind string

const (
	KindTransport   ErrorKind = "transport"
	KindNotFound    ErrorKind = "not_found"
	KindSchemaDrift ErrorKind = "schema_drift"
	KindDuplicate   ErrorKind = "duplicate"
	KindForeignKey  ErrorKind = "foreign_key"
	KindPermission  ErrorKind = "permission"
)

// RemoteError is every failure the backend reports, classified.
type RemoteError struct {
	Op      string
	Table   string
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Table, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func KindOf(err error) ErrorKind {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

func IsSchemaDrift(err error) bool {
	return KindOf(err) == KindSchemaDrift
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func wrap(op, table string, err error) error {
	if err == nil {
		return nil
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return err
	}
	kind, code := Classify(err)
	return &RemoteError{Op: op, Table: table, Kind: kind, Code: code, Message: err.Error(), Err: err}
}

// Classify maps a driver error to its kind using the driver's own error
// codes. Message matching is only used for drivers without codes.
func Classify(err error) (ErrorKind, string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return KindNotFound, ""
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42703":
			return KindSchemaDrift, pgErr.Code
		case "23505":
			return KindDuplicate, pgErr.Code
		case "23503":
			return KindForeignKey, pgErr.Code
		case "42501":
			return KindPermission, pgErr.Code
		}
		return KindTransport, pgErr.Code
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		code := fmt.Sprintf("%d", myErr.Number)
		switch myErr.Number {
		case 1054:
			return KindSchemaDrift, code
		case 1062:
			return KindDuplicate, code
		case 1451, 1452:
			return KindForeignKey, code
		case 1044, 1142, 1143:
			return KindPermission, code
		}
		return KindTransport, code
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "no such column"),
		strings.Contains(msg, "has no column named"),
		strings.Contains(msg, "column") && strings.Contains(msg, "does not exist"):
		return KindSchemaDrift, ""
	case strings.Contains(msg, "unique constraint failed"),
		strings.Contains(msg, "duplicate"):
		return KindDuplicate, ""
	case strings.Contains(msg, "foreign key constraint failed"):
		return KindForeignKey, ""
	case strings.Contains(msg, "permission denied"):
		return KindPermission, ""
	}
	return KindTransport, ""
}
