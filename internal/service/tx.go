package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Strife-cyber/agro/internal/apierror"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// asNotFound maps a repository miss to the domain taxonomy; anything else
// unexpected becomes an internal error. Domain errors pass through.
func asNotFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound(entity)
	}
	if _, ok := apierror.As(err); ok {
		return err
	}
	return apierror.Internal(err)
}
