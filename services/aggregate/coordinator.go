// Package aggregate persists a parent entity together with its fixed set of
// one-to-one content blocks in one logical save. Every block table carries a
// unique index on its parent-id column, which is what makes the per-block
// upsert well-defined.
package aggregate

import (
	"context"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Parent is an aggregate root row.
type Parent interface {
	PrimaryID() uint
}

// Child is a one-to-one content block keyed by its parent's ID.
type Child interface {
	SetParentID(id uint)
	ParentColumn() string
}

// Coordinator wraps the aggregate save in a single transaction so a crash
// mid-sequence cannot leave the parent with a subset of blocks written.
type Coordinator struct {
	db *gorm.DB
}

// NewCoordinator creates a new coordinator
func NewCoordinator(db *gorm.DB) *Coordinator {
	return &Coordinator{db: db}
}

// Save creates the parent when its ID is zero (otherwise updates it), then
// upserts every non-nil block keyed by the parent ID. The whole sequence
// runs inside one transaction.
func (c *Coordinator) Save(ctx context.Context, parent Parent, blocks ...Child) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if parent.PrimaryID() == 0 {
			if err := tx.Create(parent).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Save(parent).Error; err != nil {
				return err
			}
		}

		for _, block := range blocks {
			if isNil(block) {
				continue
			}
			block.SetParentID(parent.PrimaryID())
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: block.ParentColumn()}},
				UpdateAll: true,
			}).Create(block).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// isNil reports whether a Child interface wraps a nil pointer.
func isNil(c Child) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
