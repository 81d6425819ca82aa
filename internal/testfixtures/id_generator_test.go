package testfixtures

import "testing"

func TestIDGenerator(t *testing.T) {
	t.Parallel()

	gen := NewIDGenerator("block")
	if got := gen.Next(); got != "block-1" {
		t.Fatalf("expected block-1, got %s", got)
	}
	if got := gen.Next(); got != "block-2" {
		t.Fatalf("expected block-2, got %s", got)
	}

	fallback := NewIDGenerator("")
	if got := fallback.Next(); got != "id-1" {
		t.Fatalf("expected id-1 for empty prefix, got %s", got)
	}

	var nilGen *IDGenerator
	if got := nilGen.NextFunc()(); got != "" {
		t.Fatalf("expected empty id from nil generator, got %s", got)
	}
}
