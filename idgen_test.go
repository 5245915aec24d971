package bankfmt

import (
	"strings"
	"testing"
)

func TestSynthesizeMessageIDTruncatesTo35(t *testing.T) {
	id := SynthesizeMessageID("MT940", "A-VERY-LONG-REFERENCE-ID-INDEED", mustDate(2026, 1, 15))
	if len(id) > 35 {
		t.Errorf("len(id) = %d, want <= 35", len(id))
	}
	if !strings.HasPrefix(id, "MT940-") {
		t.Errorf("id = %q, want MT940- prefix", id)
	}
}

func TestSynthesizeSplitReferenceIndexing(t *testing.T) {
	if got := SynthesizeSplitReference("BATCH1", 1); got != "BATCH1-001" {
		t.Errorf("SynthesizeSplitReference(BATCH1, 1) = %q, want BATCH1-001", got)
	}
	if got := SynthesizeSplitReference("BATCH1", 42); got != "BATCH1-042" {
		t.Errorf("SynthesizeSplitReference(BATCH1, 42) = %q, want BATCH1-042", got)
	}
}

// TestSynthesizeSplitReferenceTruncatesToLast16 exercises the "truncated to
// the last 16 characters" rule of SynthesizeSplitReference (idgen.go) for
// references that would otherwise overflow the 16-character field.
func TestSynthesizeSplitReferenceTruncatesToLast16(t *testing.T) {
	got := SynthesizeSplitReference("THIS-IS-A-VERY-LONG-BATCH-REFERENCE", 7)
	if len(got) != 16 {
		t.Fatalf("len(got) = %d, want 16, got %q", len(got), got)
	}
	if !strings.HasSuffix(got, "-007") {
		t.Errorf("got = %q, want suffix -007", got)
	}
}

func TestSynthesizeDATEVReferenceTruncatesTo16(t *testing.T) {
	got := SynthesizeDATEVReference("1/1", mustDate(2026, 1, 15))
	if len(got) > 16 {
		t.Errorf("len(got) = %d, want <= 16", len(got))
	}
	if !strings.HasPrefix(got, "DATEV") {
		t.Errorf("got = %q, want DATEV prefix", got)
	}
}

func TestNewUUIDReferenceLength(t *testing.T) {
	ref := NewUUIDReference()
	if len(ref) != 8 {
		t.Errorf("len(ref) = %d, want 8", len(ref))
	}
	if ref != strings.ToUpper(ref) {
		t.Errorf("ref = %q, want all-uppercase", ref)
	}
}
