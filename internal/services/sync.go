package services

import (
	"fmt"

	"github.com/azuldeco/azul-admin/validation"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// collection describes one owned set of rows for syncCollection.
type collection[T any] struct {
	field   string
	scope   func(*gorm.DB) *gorm.DB
	id      func(*T) uint
	prepare func(*T)
	columns []string
}

// syncCollection makes the scoped rows equal to incoming: rows whose id is not
// sent are deleted, entries with an id are updated in place and entries
// without one are inserted. Ids of kept rows survive.
func syncCollection[T any](tx *gorm.DB, incoming []T, c collection[T]) error {
	var existing []T
	if err := c.scope(tx.Model(new(T))).Find(&existing).Error; err != nil {
		return errors.Wrapf(err, "load %s", c.field)
	}
	known := make(map[uint]bool, len(existing))
	for i := range existing {
		known[c.id(&existing[i])] = true
	}

	keep := make(map[uint]bool, len(incoming))
	vs := validation.Violations{}
	for i := range incoming {
		id := c.id(&incoming[i])
		if id == 0 {
			continue
		}
		if !known[id] {
			vs[fmt.Sprintf("%s[%d].id", c.field, i)] = "unknown"
		}
		keep[id] = true
	}
	if !vs.Empty() {
		return vs
	}

	var toDelete []uint
	for id := range known {
		if !keep[id] {
			toDelete = append(toDelete, id)
		}
	}
	if len(toDelete) > 0 {
		if err := tx.Delete(new(T), toDelete).Error; err != nil {
			return errors.Wrapf(err, "delete %s", c.field)
		}
	}

	for i := range incoming {
		row := &incoming[i]
		if c.prepare != nil {
			c.prepare(row)
		}
		var err error
		if c.id(row) != 0 {
			err = tx.Model(row).Select(c.columns).Updates(row).Error
		} else {
			err = tx.Create(row).Error
		}
		if err != nil {
			return errors.Wrapf(err, "save %s[%d]", c.field, i)
		}
	}
	return nil
}
