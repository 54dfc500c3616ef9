package mysql

import (
	"errors"
	"fmt"

	"agrocredito/internal/domain"

	"gorm.io/gorm"
)

// storeErr maps gorm errors onto the domain taxonomy while keeping the original in the chain.
func storeErr(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", notFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", domain.ErrConcurrentModification, err)
	case errors.Is(err, domain.ErrConcurrentModification):
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
}
