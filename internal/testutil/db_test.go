package testutil

import (
	"strings"
	"testing"
)

func TestDBNameFor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"TestList", "stratamember_test_TestList"},
		{"TestList/page 2", "stratamember_test_TestList_page_2"},
		{"TestX/ü", "stratamember_test_TestX__"},
	}
	for _, tt := range tests {
		if got := DBNameFor(tt.in); got != tt.want {
			t.Errorf("DBNameFor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	long := DBNameFor(strings.Repeat("a", 100))
	if len(long) != maxDBNameLen {
		t.Errorf("len(DBNameFor(long)) = %d, want %d", len(long), maxDBNameLen)
	}
}
