package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"MBA (Online) — 2024", "mba-online-2024"},
		{"  Delhi University  ", "delhi-university"},
		{"B.Tech_Computer Science", "b-tech-computer-science"},
		{"already-a-slug", "already-a-slug"},
		{"Multiple    Spaces", "multiple-spaces"},
		{"--leading & trailing--", "leading-trailing"},
		{"", ""},
		{"!!!", ""},
		{"École 42", "école-42"},
	}
	for _, tt := range tests {
		if got := Make(tt.in); got != tt.want {
			t.Errorf("Make(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
