// Package refs resolves denormalized ID-list associations: JSON arrays of
// foreign IDs stored in a column instead of a join table. Legacy rows have
// stored the same relation under several key names over time, so collection
// is defensive and never fails on malformed input.
package refs

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"
)

// Resolver batch-loads the rows referenced by a denormalized ID list.
type Resolver struct {
	db *gorm.DB
}

// NewResolver creates a new resolver
func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Resolve collects the referenced IDs out of raw and loads the matching
// non-deleted rows into dest (a pointer to a model slice) with one
// WHERE id IN (...) query. An empty ID set loads nothing and issues no query.
func (r *Resolver) Resolve(ctx context.Context, raw interface{}, dest interface{}, keys ...string) error {
	ids := CollectIDs(raw, keys...)
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Find(dest).Error
}

// CollectIDs normalizes a raw value that may be nil, a single object, or an
// array of objects into a deduplicated list of IDs. For each object the
// recognized keys are tried in the given priority order; the first one
// holding a non-empty value (scalar or array) wins. Bare numbers are treated
// as IDs directly. Nulls and unrecognized shapes are dropped, never reported
// as errors.
func CollectIDs(raw interface{}, keys ...string) []int64 {
	if raw == nil {
		return []int64{}
	}

	elements, ok := raw.([]interface{})
	if !ok {
		elements = []interface{}{raw}
	}

	seen := make(map[int64]bool)
	out := []int64{}
	add := func(ids []int64) {
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}

	for _, el := range elements {
		if el == nil {
			continue
		}

		obj, isObj := el.(map[string]interface{})
		if !isObj {
			add(asIDs(el))
			continue
		}

		for _, key := range keys {
			if ids := asIDs(obj[key]); len(ids) > 0 {
				add(ids)
				break
			}
		}
	}

	return out
}

// asIDs flattens a scalar-or-array value into IDs, dropping anything that is
// not a positive-width integer representation.
func asIDs(v interface{}) []int64 {
	switch val := v.(type) {
	case nil:
		return nil
	case float64:
		return []int64{int64(val)}
	case int:
		return []int64{int64(val)}
	case int64:
		return []int64{val}
	case uint:
		return []int64{int64(val)}
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return []int64{n}
		}
		return nil
	case string:
		var n json.Number = json.Number(val)
		if id, err := n.Int64(); err == nil {
			return []int64{id}
		}
		return nil
	case []int64:
		return val
	case []interface{}:
		out := make([]int64, 0, len(val))
		for _, item := range val {
			out = append(out, asIDs(item)...)
		}
		return out
	default:
		return nil
	}
}
