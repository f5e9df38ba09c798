package refs

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestCollectIDsNil(t *testing.T) {
	got := CollectIDs(nil, "approval_id", "id")
	if got == nil || len(got) != 0 {
		t.Fatalf("nil input should yield an empty non-nil slice, got %v", got)
	}
}

func TestCollectIDsObjectArray(t *testing.T) {
	// Legacy rows mix key names and include nulls
	raw := []interface{}{
		map[string]interface{}{"approval_id": float64(5)},
		map[string]interface{}{"id": float64(7)},
		nil,
	}
	got := CollectIDs(raw, "approval_id", "id")
	want := []int64{5, 7}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CollectIDs = %v, want %v", got, want)
	}
}

func TestCollectIDsKeyPriority(t *testing.T) {
	// When both keys are present the first listed key wins
	raw := []interface{}{
		map[string]interface{}{"approval_id": float64(3), "id": float64(9)},
	}
	got := CollectIDs(raw, "approval_id", "id")
	if !reflect.DeepEqual(got, []int64{3}) {
		t.Errorf("CollectIDs = %v, want [3]", got)
	}
}

func TestCollectIDsEmptyValueFallsThrough(t *testing.T) {
	// An empty array under the priority key falls through to the next key
	raw := []interface{}{
		map[string]interface{}{"approval_id": []interface{}{}, "id": float64(4)},
	}
	got := CollectIDs(raw, "approval_id", "id")
	if !reflect.DeepEqual(got, []int64{4}) {
		t.Errorf("CollectIDs = %v, want [4]", got)
	}
}

func TestCollectIDsBareNumbers(t *testing.T) {
	raw := []interface{}{float64(1), "2", json.Number("3")}
	got := CollectIDs(raw, "id")
	if !reflect.DeepEqual(got, []int64{1, 2, 3}) {
		t.Errorf("CollectIDs = %v, want [1 2 3]", got)
	}
}

func TestCollectIDsDedupesPreservingOrder(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{"id": float64(7)},
		map[string]interface{}{"id": float64(2)},
		map[string]interface{}{"id": float64(7)},
	}
	got := CollectIDs(raw, "id")
	if !reflect.DeepEqual(got, []int64{7, 2}) {
		t.Errorf("CollectIDs = %v, want [7 2]", got)
	}
}

func TestCollectIDsNestedArrays(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{"approval_ids": []interface{}{float64(1), "2"}},
	}
	got := CollectIDs(raw, "approval_ids")
	if !reflect.DeepEqual(got, []int64{1, 2}) {
		t.Errorf("CollectIDs = %v, want [1 2]", got)
	}
}

func TestCollectIDsSingleObject(t *testing.T) {
	raw := map[string]interface{}{"id": float64(11)}
	got := CollectIDs(raw, "id")
	if !reflect.DeepEqual(got, []int64{11}) {
		t.Errorf("CollectIDs = %v, want [11]", got)
	}
}

func TestCollectIDsUnrecognizedShapes(t *testing.T) {
	raw := []interface{}{
		true,
		map[string]interface{}{"unrelated": "x"},
		"not-a-number",
	}
	got := CollectIDs(raw, "id")
	if len(got) != 0 {
		t.Errorf("unrecognized shapes should be dropped, got %v", got)
	}
}
