package coerce

import (
	"reflect"
	"testing"
)

func TestUint(t *testing.T) {
	cases := map[string]uint{
		"42":    42,
		" 7 ":   7,
		"":      0,
		"abc":   0,
		"-3":    0,
		"4.5":   0,
		"00012": 12,
	}
	for in, want := range cases {
		if got := Uint(in); got != want {
			t.Errorf("Uint(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestMerge(t *testing.T) {
	if got := Merge("new", "old"); got != "new" {
		t.Errorf("Merge should take the new value, got %q", got)
	}
	if got := Merge("", "old"); got != "old" {
		t.Errorf("Merge should keep the stored value for blank input, got %q", got)
	}
	if got := Merge("   ", "old"); got != "old" {
		t.Errorf("Merge should treat whitespace as blank, got %q", got)
	}
}

func TestIDs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []int64
	}{
		{"json number array", "[1,2,3]", []int64{1, 2, 3}},
		{"json string array", `["4","5"]`, []int64{4, 5}},
		{"bare number", "9", []int64{9}},
		{"comma separated", "1, 2,3", []int64{1, 2, 3}},
		{"empty", "", []int64{}},
		{"malformed json", "[1,2", []int64{}},
		{"object", `{"id":1}`, []int64{}},
		{"garbage", "hello", []int64{}},
		{"mixed garbage in array", `["7","x"]`, []int64{7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IDs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("IDs(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMergeJSON(t *testing.T) {
	type block struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}

	t.Run("merges onto stored values", func(t *testing.T) {
		b := block{Title: "old title", Content: "old content"}
		MergeJSON(`{"title":"new title"}`, &b)
		if b.Title != "new title" {
			t.Errorf("title = %q, want new title", b.Title)
		}
		if b.Content != "old content" {
			t.Errorf("absent field should keep stored value, got %q", b.Content)
		}
	})

	t.Run("malformed input leaves block untouched", func(t *testing.T) {
		b := block{Title: "old title", Content: "old content"}
		MergeJSON(`{"title":"broken`, &b)
		if b.Title != "old title" || b.Content != "old content" {
			t.Errorf("malformed JSON mutated the block: %+v", b)
		}
	})

	t.Run("blank input is a no-op", func(t *testing.T) {
		b := block{Title: "old title"}
		MergeJSON("   ", &b)
		if b.Title != "old title" {
			t.Errorf("blank input mutated the block: %+v", b)
		}
	})

	t.Run("garbage input is a no-op", func(t *testing.T) {
		b := block{Title: "old title"}
		MergeJSON("not json at all", &b)
		if b.Title != "old title" {
			t.Errorf("garbage input mutated the block: %+v", b)
		}
	})
}

func TestJSONArray(t *testing.T) {
	if got := string(JSONArray(`[{"a":1}]`)); got != `[{"a":1}]` {
		t.Errorf("valid array should pass through, got %s", got)
	}
	if got := string(JSONArray(`{"a":1}`)); got != `[{"a":1}]` {
		t.Errorf("single object should be wrapped, got %s", got)
	}
	if got := string(JSONArray("not json")); got != "[]" {
		t.Errorf("garbage should degrade to empty array, got %s", got)
	}
	if got := string(JSONArray("")); got != "[]" {
		t.Errorf("empty input should degrade to empty array, got %s", got)
	}
}

func TestJSONObject(t *testing.T) {
	if got := string(JSONObject(`{"a":1}`)); got != `{"a":1}` {
		t.Errorf("valid object should pass through, got %s", got)
	}
	if got := string(JSONObject("[1]")); got != "{}" {
		t.Errorf("array should degrade to empty object, got %s", got)
	}
}
