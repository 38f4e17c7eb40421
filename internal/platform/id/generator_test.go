package id

import (
	"encoding/hex"
	"strings"
	"testing"
)

func TestRandomGeneratorProducesUniqueHexIDs(t *testing.T) {
	g := NewRandomGenerator()

	seen := make(map[string]bool, 64)
	for range 64 {
		got, err := g.NewID()
		if err != nil {
			t.Fatalf("new id failed: %v", err)
		}
		if len(got) != 24 {
			t.Fatalf("id %q has length %d, want 24", got, len(got))
		}
		if _, err := hex.DecodeString(got); err != nil {
			t.Fatalf("id %q is not hex: %v", got, err)
		}
		if seen[got] {
			t.Fatalf("duplicate id %q", got)
		}
		seen[got] = true
	}
}

func TestPrefixedGeneratorTagsIDs(t *testing.T) {
	got, err := NewPrefixed("mt").NewID()
	if err != nil {
		t.Fatalf("new id failed: %v", err)
	}
	if !strings.HasPrefix(got, "mt-") {
		t.Fatalf("id %q missing mt- prefix", got)
	}
	if len(got) != len("mt-")+24 {
		t.Fatalf("id %q has unexpected length", got)
	}

	bare, err := NewPrefixed(" ").NewID()
	if err != nil {
		t.Fatalf("new id failed: %v", err)
	}
	if strings.Contains(bare, "-") {
		t.Fatalf("blank prefix must yield a bare id, got %q", bare)
	}
}
