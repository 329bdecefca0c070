package services

import (
	"github.com/azuldeco/azul-admin/internal/numbering"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Sentinel errors mapped to HTTP statuses by the handlers. Field-level
// problems are returned as validation.Violations.
var (
	ErrNotFound       = errors.New("not_found")
	ErrDuplicateCode  = errors.New("fabric_code_taken")
	ErrDuplicatePhone = errors.New("client_phone_taken")
	ErrDuplicateName  = errors.New("color_name_taken")
	ErrInvalidStatus  = errors.New("invalid_status")
	ErrNumberConflict = numbering.ErrConflict
)

// notFound converts gorm's miss into ErrNotFound and wraps anything else.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(ErrNotFound, what)
	}
	return errors.Wrapf(err, "load %s", what)
}
