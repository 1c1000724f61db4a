package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Kind tags the outcome of a storage call so services never inspect driver codes.
type Kind int

const (
	KindOK Kind = iota
	KindNotFound
	KindConflict
	KindOther
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("constraint conflict")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// Classify maps driver errors onto ErrNotFound or ErrConflict while keeping
// the original error in the chain. Anything else is returned untouched.
func Classify(err error) error {
	switch KindOf(err) {
	case KindOK:
		return nil
	case KindNotFound:
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case KindConflict:
		if errors.Is(err, ErrConflict) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		return err
	}
}

// KindOf reports the storage outcome for err.
func KindOf(err error) Kind {
	if err == nil {
		return KindOK
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return KindNotFound
	}
	if errors.Is(err, ErrConflict) || errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return KindConflict
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return kindForSQLState(pgxErr.Code)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return kindForSQLState(string(pqErr.Code))
	}

	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "CHECK constraint failed") {
		return KindConflict
	}
	return KindOther
}

func kindForSQLState(code string) Kind {
	switch code {
	case pgUniqueViolation, pgForeignKeyViolation, pgCheckViolation:
		return KindConflict
	default:
		return KindOther
	}
}

// IsUniqueViolation reports whether err is a unique violation. When
// constraintName is provided the constraint must match as well.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == pgUniqueViolation && (constraintName == "" || pgxErr.ConstraintName == constraintName)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation && (constraintName == "" || pqErr.Constraint == constraintName)
	}
	msg := err.Error()
	if !strings.Contains(msg, "duplicate key value") && !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	return constraintName == "" || strings.Contains(msg, constraintName)
}
