package id

import (
	"regexp"
	"testing"
)

var reID32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

func TestNewID32_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		s := NewID32()
		if !reID32.MatchString(s) {
			t.Fatalf("NewID32 produced %q, want 32 lowercase hex chars", s)
		}
	}
}

func TestNewID32_Unique(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		s := NewID32()
		if seen[s] {
			t.Fatalf("duplicate id %q after %d draws", s, i)
		}
		seen[s] = true
	}
}
