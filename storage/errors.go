package storage

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/valubaby/valu-store/internal/apperr"
	"modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// MapError translates driver errors into the apperr taxonomy. notFound is the
// message used when the query matched no row.
func MapError(err error, notFound string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("%s", notFound)
	}

	switch constraintOf(err) {
	case constraintUnique:
		return apperr.Duplicate("This record already exists", err)
	case constraintForeignKey:
		return &apperr.Error{Kind: apperr.KindValidation, Message: "Referenced record does not exist or is still in use", Err: err}
	case constraintCheck:
		return &apperr.Error{Kind: apperr.KindValidation, Message: "Value violates a data constraint", Err: err}
	}

	return err
}

type constraint int

const (
	constraintNone constraint = iota
	constraintUnique
	constraintForeignKey
	constraintCheck
)

func constraintOf(err error) constraint {
	var modErr *sqlite.Error
	if errors.As(err, &modErr) {
		switch modErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return constraintUnique
		case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
			return constraintForeignKey
		case sqlite3lib.SQLITE_CONSTRAINT_CHECK:
			return constraintCheck
		}
	}

	var cgoErr sqlite3.Error
	if errors.As(err, &cgoErr) {
		switch cgoErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return constraintUnique
		case sqlite3.ErrConstraintForeignKey:
			return constraintForeignKey
		case sqlite3.ErrConstraintCheck:
			return constraintCheck
		}
	}

	// Fall back on the message shared by both drivers.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return constraintUnique
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return constraintForeignKey
	case strings.Contains(msg, "CHECK constraint failed"):
		return constraintCheck
	}
	return constraintNone
}
