package random

import "testing"

func TestSeedOrKeepsExplicitSeed(t *testing.T) {
	got, err := SeedOr(42)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestSeedOrGeneratesSeed(t *testing.T) {
	a, err := SeedOr(0)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if a == b {
		t.Fatalf("expected two distinct seeds, got %d twice", a)
	}
}
