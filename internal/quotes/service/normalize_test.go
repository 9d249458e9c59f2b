package service

import (
	"reflect"
	"testing"
)

func TestMergeProductSlugs_DedupesKeepingFirstSeenOrder(t *testing.T) {
	got := MergeProductSlugs([]string{"a", "b", "a"}, nil)
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("expected [a b], got %v", got)
	}
}

func TestMergeProductSlugs_TrimsAndDropsEmpties(t *testing.T) {
	got := MergeProductSlugs([]string{" a ", "", "  ", "b"}, nil)
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("expected [a b], got %v", got)
	}
}

func TestMergeProductSlugs_LegacyFallback(t *testing.T) {
	legacy := " x "
	got := MergeProductSlugs(nil, &legacy)
	if !reflect.DeepEqual(got, []string{"x"}) {
		t.Fatalf("expected [x], got %v", got)
	}
}

func TestMergeProductSlugs_ArrayWinsOverLegacy(t *testing.T) {
	legacy := "old"
	got := MergeProductSlugs([]string{"new"}, &legacy)
	if !reflect.DeepEqual(got, []string{"new"}) {
		t.Fatalf("expected [new], got %v", got)
	}
}

func TestMergeProductSlugs_BothEmpty(t *testing.T) {
	empty := "   "
	if got := MergeProductSlugs([]string{""}, &empty); len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}

func TestNormalizeDateRange(t *testing.T) {
	cases := []struct {
		start, end         string
		wantStart, wantEnd string
	}{
		{"2025-06-01", "2025-06-03", "2025-06-01", "2025-06-03"},
		{"2025-06-01", "", "2025-06-01", "2025-06-01"},
		{"", "2025-06-03", "2025-06-03", "2025-06-03"},
		{"", "", "", ""},
		{" 2025-06-01 ", " 2025-06-02 ", "2025-06-01", "2025-06-02"},
	}

	for _, tc := range cases {
		gotStart, gotEnd := NormalizeDateRange(tc.start, tc.end)
		if gotStart != tc.wantStart || gotEnd != tc.wantEnd {
			t.Fatalf("NormalizeDateRange(%q, %q) = (%q, %q), want (%q, %q)",
				tc.start, tc.end, gotStart, gotEnd, tc.wantStart, tc.wantEnd)
		}
	}
}
