// Package softdelete implements the idempotent delete ⇄ restore flip used by
// every primary entity: a nullable timestamp column, never a physical delete.
package softdelete

import (
	"time"

	"gorm.io/gorm"
)

// State reports which side of the flip a toggle landed on.
type State string

const (
	StateDeleted  State = "deleted"
	StateRestored State = "restored"
)

// Toggle fetches the row (deleted or not), clears deleted_at if it is set,
// otherwise stamps it with the current time. Returns
// gorm.ErrRecordNotFound when no row exists at all.
func Toggle(db *gorm.DB, model interface{}, id uint) (State, error) {
	var row struct {
		DeletedAt gorm.DeletedAt
	}
	err := db.Unscoped().Model(model).
		Select("deleted_at").
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		return "", err
	}

	tx := db.Unscoped().Model(model).Where("id = ?", id)
	if row.DeletedAt.Valid {
		if err := tx.Update("deleted_at", nil).Error; err != nil {
			return "", err
		}
		return StateRestored, nil
	}

	if err := tx.Update("deleted_at", time.Now()).Error; err != nil {
		return "", err
	}
	return StateDeleted, nil
}
