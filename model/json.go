package model

import (
	"database/sql/driver"
	"encoding/json"
)

// IDList is a denormalized list of foreign IDs stored as a jsonb array.
// Scanning is tolerant: legacy rows hold arrays, bare numbers, or garbage,
// and anything unreadable degrades to an empty list instead of failing the
// row load.
type IDList []int64

// Scan implements sql.Scanner.
func (l *IDList) Scan(value interface{}) error {
	*l = IDList{}

	var data []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var ids []int64
	if err := json.Unmarshal(data, &ids); err == nil {
		if ids != nil {
			*l = ids
		}
		return nil
	}

	// Legacy rows sometimes hold a single bare number
	var single int64
	if err := json.Unmarshal(data, &single); err == nil {
		*l = IDList{single}
		return nil
	}

	return nil
}

// Value implements driver.Valuer.
func (l IDList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal([]int64(l))
}
