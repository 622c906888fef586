// Package pgutil holds the error translation and optimistic-locking helpers
// shared by the GORM repositories.
package pgutil

import (
	"context"
	"errors"

	"dispatch/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// UniqueViolation is the SQLSTATE PostgreSQL reports for a duplicate key.
const UniqueViolation = "23505"

// IsUniqueViolation reports whether err carries a PostgreSQL duplicate-key error.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == UniqueViolation
}

// TranslateInsert maps a duplicate key to a ConflictError and passes everything else through.
func TranslateInsert(err error, subject, reason string) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) {
		return errs.NewConflictErrorWithCause(subject, reason, err)
	}
	return err
}

// VersionedUpdateResult explains a conditional UPDATE that touched no row:
// the row is gone (ObjectNotFound) or another transaction changed it first (VersionIsInvalid).
func VersionedUpdateResult(ctx context.Context, db *gorm.DB, model any, name string, id any, rowsAffected int64) error {
	if rowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError(name, id)
	}
	return errs.NewVersionIsInvalidError(name)
}

// NotFound maps gorm.ErrRecordNotFound to an ObjectNotFoundError.
func NotFound(err error, name string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(name, id)
	}
	return err
}
