package model

import (
	"reflect"
	"testing"
)

func TestIDListScan(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want IDList
	}{
		{"json array", []byte("[1,2,3]"), IDList{1, 2, 3}},
		{"string input", "[4,5]", IDList{4, 5}},
		{"bare number", []byte("7"), IDList{7}},
		{"null", []byte("null"), IDList{}},
		{"nil", nil, IDList{}},
		{"malformed", []byte("[1,2"), IDList{}},
		{"object", []byte(`{"id":1}`), IDList{}},
		{"empty array", []byte("[]"), IDList{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l IDList
			if err := l.Scan(tt.in); err != nil {
				t.Fatalf("Scan must never error, got %v", err)
			}
			if !reflect.DeepEqual(l, tt.want) {
				t.Errorf("Scan(%v) = %v, want %v", tt.in, l, tt.want)
			}
		})
	}
}

func TestIDListValue(t *testing.T) {
	v, err := IDList{1, 2}.Value()
	if err != nil {
		t.Fatal(err)
	}
	if string(v.([]byte)) != "[1,2]" {
		t.Errorf("Value = %s, want [1,2]", v)
	}

	v, err = IDList(nil).Value()
	if err != nil {
		t.Fatal(err)
	}
	if string(v.([]byte)) != "[]" {
		t.Errorf("nil list Value = %s, want []", v)
	}
}
