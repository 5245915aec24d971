package bankfmt

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPainMandateBuilderBuild(t *testing.T) {
	doc, err := NewPainMandateBuilder(Pain009).
		MessageID("MSG-MNDT-1").
		CreationTimestamp(mustDate(2026, 3, 1)).
		Mandate(PainMandate{
			MandateID:     "MNDT-1",
			CreationDate:  mustDate(2026, 2, 15),
			Debtor:        Party{Name: "Max Mustermann"},
			DebtorAccount: "DE89370400440532013000",
			Creditor:      Party{Name: "Firma GmbH"},
			Amount:        decimal.NewFromInt(100),
			Currency:      "EUR",
			FrequencyType: "MNTH",
		}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if doc.Type != Pain009 {
		t.Errorf("Type = %v, want Pain009", doc.Type)
	}
	if !doc.Type.IsMandateLifecycle() {
		t.Error("Pain009 must report IsMandateLifecycle() == true")
	}
	if doc.Mandate.MandateID != "MNDT-1" {
		t.Errorf("MandateID = %q, want MNDT-1", doc.Mandate.MandateID)
	}
}

func TestPainMandateBuilderRejectsMissingMandateID(t *testing.T) {
	_, err := NewPainMandateBuilder(Pain009).MessageID("MSG-1").Build()
	if err == nil {
		t.Fatal("expected an error for a mandate with no mandate id")
	}
	ce := err.(*CodecError)
	if !ce.HasKind(KindMissingField) {
		t.Errorf("expected KindMissingField, got %v", ce.Violations())
	}
}

// TestEncodeXMLPainMandate exercises the mandate-lifecycle branch of
// EncodeXMLPain: NbOfTxs is fixed at 1 and the mandate payload is rendered
// under UndrlygMsg rather than PmtInf (spec.md §3).
func TestEncodeXMLPainMandate(t *testing.T) {
	doc, err := NewPainMandateBuilder(Pain012).
		MessageID("MSG-MNDT-2").
		CreationTimestamp(mustDate(2026, 3, 1)).
		Mandate(PainMandate{
			MandateID:     "MNDT-2",
			Debtor:        Party{Name: "Max Mustermann"},
			DebtorAccount: "DE89370400440532013000",
			Creditor:      Party{Name: "Firma GmbH"},
			CreditorAccount: "DE91100000000123456789",
			Amount:        decimal.NewFromInt(250),
			Currency:      "EUR",
		}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	out, err := EncodeXMLPain(doc)
	if err != nil {
		t.Fatalf("EncodeXMLPain: %v", err)
	}
	xmlStr := string(out)
	if !strings.Contains(xmlStr, "<NbOfTxs>1</NbOfTxs>") {
		t.Errorf("expected NbOfTxs of 1, got:\n%s", xmlStr)
	}
	if !strings.Contains(xmlStr, "<UndrlygMsg>") {
		t.Errorf("expected an UndrlygMsg wrapper, got:\n%s", xmlStr)
	}
	if !strings.Contains(xmlStr, "<MndtId>MNDT-2</MndtId>") {
		t.Errorf("expected MndtId MNDT-2, got:\n%s", xmlStr)
	}
	if strings.Contains(xmlStr, "<PmtInf>") {
		t.Errorf("mandate-lifecycle messages must not carry PmtInf, got:\n%s", xmlStr)
	}
}
