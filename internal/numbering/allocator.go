// Package numbering hands out per-type sequential document numbers.
//
// Allocation happens inside the caller's transaction. The type's counter row
// is written first, which takes a row lock on postgres (and the write lock on
// sqlite), so concurrent allocations of one type queue up while other types
// proceed. The unique (type, number) index backs this up: a violation makes
// the caller retry the whole transaction a bounded number of times.
package numbering

import (
	"context"
	"strings"
	"time"

	"github.com/azuldeco/azul-admin/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrConflict is returned once every attempt hit a duplicate number.
var ErrConflict = errors.New("document number conflict")

const DefaultMaxAttempts = 5

// Allocator picks the next number for a type within a transaction.
type Allocator interface {
	Next(tx *gorm.DB, t models.DocumentType) (int, error)
}

// CounterAllocator locks the type's counter row, then returns MAX(number)+1.
type CounterAllocator struct{}

func (CounterAllocator) Next(tx *gorm.DB, t models.DocumentType) (int, error) {
	if !t.Valid() {
		return 0, errors.Errorf("unknown document type %q", t)
	}
	seed := models.DocumentCounter{Type: t}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return 0, errors.Wrap(err, "ensure counter")
	}
	lock := tx.Model(&models.DocumentCounter{}).Where("type = ?", t).Update("updated_at", time.Now())
	if lock.Error != nil {
		return 0, errors.Wrap(lock.Error, "lock counter")
	}
	var counter models.DocumentCounter
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("type = ?", t).First(&counter).Error; err != nil {
		return 0, errors.Wrap(err, "read counter")
	}

	var current int
	if err := tx.Model(&models.Document{}).Where("type = ?", t).Select("COALESCE(MAX(number), 0)").Scan(&current).Error; err != nil {
		return 0, errors.Wrap(err, "read max number")
	}
	next := current + 1
	if err := tx.Model(&models.DocumentCounter{}).Where("type = ?", t).Update("last_number", next).Error; err != nil {
		return 0, errors.Wrap(err, "store counter")
	}
	return next, nil
}

// IsDuplicate reports a unique-key violation from either driver.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint failed")
}

// IsBusy reports sqlite's single-writer lock error.
func IsBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "sqlite_busy")
}

// WithRetry runs fn until it succeeds, fails for another reason, or hits
// maxAttempts duplicate-key or busy failures. fn must run a complete transaction.
func WithRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	var last error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		last = fn(attempt)
		if !IsDuplicate(last) && !IsBusy(last) {
			return last
		}
	}
	return errors.Wrapf(ErrConflict, "after %d attempts: %v", maxAttempts, last)
}
