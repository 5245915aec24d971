package bankfmt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScanFields(t *testing.T) {
	body := ":20:REF123\r\n:25:1234567890\r\n:61:260115C1000,00NTRFNONREF\r\nmore purpose text\r\n:62F:C260115EUR1000,00\r\n"
	fields, err := scanFields(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []mtField{
		{Tag: "20", Lines: []string{"REF123"}},
		{Tag: "25", Lines: []string{"1234567890"}},
		{Tag: "61", Lines: []string{"260115C1000,00NTRFNONREF", "more purpose text"}},
		{Tag: "62F", Lines: []string{"C260115EUR1000,00"}},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Errorf("scanFields mismatch (-want +got):\n%s", diff)
	}
}

func TestScanFieldsRejectsLeadingContinuation(t *testing.T) {
	_, err := scanFields("not a tag line\r\n:20:REF\r\n")
	if err == nil {
		t.Fatal("expected an error when a continuation line precedes any tag")
	}
}

func TestScanFieldsEmptyBody(t *testing.T) {
	fields, err := scanFields("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields != nil {
		t.Errorf("expected nil fields, got %v", fields)
	}
}

func TestFindField(t *testing.T) {
	fields := []mtField{{Tag: "20", Lines: []string{"REF"}}, {Tag: "25", Lines: []string{"ACCT"}}}
	f, ok := findField(fields, "25")
	if !ok || f.Value() != "ACCT" {
		t.Errorf("findField(25) = (%v, %v)", f, ok)
	}
	if _, ok := findField(fields, "99"); ok {
		t.Error("expected ok=false for a tag that is not present")
	}
}

func TestEncodeAndSerializeFields(t *testing.T) {
	got := serializeFields([]string{encodeField("20", "REF123"), encodeField("25", "ACCT")})
	want := ":20:REF123\r\n:25:ACCT"
	if got != want {
		t.Errorf("serializeFields = %q, want %q", got, want)
	}
}
