package invoicing

import (
	"testing"
	"time"
)

func TestNumberPrefix(t *testing.T) {
	d := time.Date(2025, time.January, 15, 23, 59, 0, 0, time.Local)
	if got := NumberPrefix(d); got != "INV-20250115-" {
		t.Fatalf("expected INV-20250115- got %s", got)
	}
}

func TestNextNumberFirstOfDay(t *testing.T) {
	got, err := NextNumber("", "INV-20250115-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "INV-20250115-001" {
		t.Fatalf("expected INV-20250115-001 got %s", got)
	}
}

func TestNextNumberIncrements(t *testing.T) {
	cases := []struct {
		last string
		want string
	}{
		{"INV-20250115-001", "INV-20250115-002"},
		{"INV-20250115-006", "INV-20250115-007"},
		{"INV-20250115-099", "INV-20250115-100"},
		// the pad is a minimum width, not a cap
		{"INV-20250115-999", "INV-20250115-1000"},
		{"INV-20250115-1042", "INV-20250115-1043"},
	}
	for _, tc := range cases {
		got, err := NextNumber(tc.last, "INV-20250115-")
		if err != nil {
			t.Fatalf("NextNumber(%q): unexpected error %v", tc.last, err)
		}
		if got != tc.want {
			t.Fatalf("NextNumber(%q): expected %s got %s", tc.last, tc.want, got)
		}
	}
}

func TestNextNumberSequentialAllocationsDifferByOne(t *testing.T) {
	prefix := NumberPrefix(time.Now())
	first, err := NextNumber("", prefix)
	if err != nil {
		t.Fatalf("first allocation: %v", err)
	}
	second, err := NextNumber(first, prefix)
	if err != nil {
		t.Fatalf("second allocation: %v", err)
	}
	third, err := NextNumber(second, prefix)
	if err != nil {
		t.Fatalf("third allocation: %v", err)
	}
	if first != prefix+"001" || second != prefix+"002" || third != prefix+"003" {
		t.Fatalf("expected 001/002/003 got %s %s %s", first, second, third)
	}
}

func TestNextNumberCorruptSuffixIsFatal(t *testing.T) {
	for _, last := range []string{"INV-20250115-abc", "INV-20250115", "INV-20250115-00-7"} {
		if _, err := NextNumber(last, "INV-20250115-"); err == nil {
			t.Fatalf("expected error for corrupt number %q", last)
		}
	}
}
