package dbutil

import (
	"github.com/Aidin1998/apiexercises/pkg/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL error codes (class 23, integrity constraint violation)
const (
	DuplicateKeyErrorCode     = "23505"
	ForeignKeyErrorCode       = "23503"
	CheckViolationErrorCode   = "23514"
	NotNullViolationErrorCode = "23502"
)

// ErrConstraint marks integrity violations that are not uniqueness related.
var ErrConstraint = errors.Invalid.Reason("Constraint Violation").Explain("constraint violation")

// WrapError wraps a gorm error.
func WrapError(err error) error {
	var pgErr *pgconn.PgError

	if err == nil {
		return nil
	} else if _, ok := err.(*errors.Error); ok {
		return err
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.NotFound.Wrap(err)
	} else if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Conflict.Explain("duplication of key").Wrap(err)
	} else if errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return ErrConstraint.Wrap(err)
	} else if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case DuplicateKeyErrorCode:
			return errors.Conflict.
				Explain("duplication of key").
				Wrap(err)
		case ForeignKeyErrorCode, CheckViolationErrorCode, NotNullViolationErrorCode:
			return ErrConstraint.Wrap(err)
		}
	}

	return err
}

// IsConstraintViolation reports whether WrapError classified err as an
// integrity violation of any sort, uniqueness included.
func IsConstraintViolation(err error) bool {
	return errors.Is(err, errors.Conflict) || errors.Is(err, ErrConstraint)
}
