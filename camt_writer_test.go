package bankfmt

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

// TestEncodeCAMT053Structure exercises the camt.053 XML shape produced from
// an MT940 projection: fixed namespace, balance codes, and entry details.
func TestEncodeCAMT053Structure(t *testing.T) {
	opening, err := NewBalance(Credit, mustDate(2026, 1, 15), "EUR", decimal.NewFromInt(1000), BalanceTypeNone)
	if err != nil {
		t.Fatalf("NewBalance: %v", err)
	}
	closing, err := NewBalance(Credit, mustDate(2026, 1, 15), "EUR", decimal.NewFromInt(1500), BalanceTypeFinal)
	if err != nil {
		t.Fatalf("NewBalance: %v", err)
	}
	doc := &CAMTDocument{
		Type:              CAMT053,
		MessageID:         "MSG-001",
		ID:                "STMT-1",
		AccountID:         "DE89370400440532013000",
		Currency:          "EUR",
		CreationTimestamp: mustDate(2026, 1, 15),
		OpeningBalance:    &opening,
		ClosingBalance:    &closing,
		Entries: []CAMTEntry{
			{
				BookingDate:     mustDate(2026, 1, 15),
				ValueDate:       mustDate(2026, 1, 15),
				Direction:       Credit,
				Amount:          decimal.NewFromInt(500),
				Currency:        "EUR",
				Status:          StatusBook,
				TransactionCode: "NTRF",
				EndToEndID:      "END2END-1",
				Purpose:         "Rechnung 100",
			},
		},
	}
	out, err := EncodeCAMT(doc)
	if err != nil {
		t.Fatalf("EncodeCAMT: %v", err)
	}
	xmlStr := string(out)
	if !strings.Contains(xmlStr, `xmlns="urn:iso:std:iso:20022:tech:xsd:camt.053.001.08"`) {
		t.Errorf("expected camt.053.001.08 namespace, got:\n%s", xmlStr)
	}
	if !strings.Contains(xmlStr, "<BkToCstmrStmt>") {
		t.Errorf("expected BkToCstmrStmt wrapper, got:\n%s", xmlStr)
	}
	if !strings.Contains(xmlStr, "<Cd>PRCD</Cd>") {
		t.Errorf("expected opening balance code PRCD, got:\n%s", xmlStr)
	}
	if !strings.Contains(xmlStr, "<Cd>CLBD</Cd>") {
		t.Errorf("expected closing balance code CLBD, got:\n%s", xmlStr)
	}
	if !strings.Contains(xmlStr, "<EndToEndId>END2END-1</EndToEndId>") {
		t.Errorf("expected EndToEndId, got:\n%s", xmlStr)
	}
	if !strings.Contains(xmlStr, "500.00") {
		t.Errorf("expected entry amount 500.00, got:\n%s", xmlStr)
	}
}

// TestEncodeCAMT054OmitsBalances confirms camt.054 notifications carry no
// balance elements (spec.md §3: "camt.054 omits balances").
func TestEncodeCAMT054OmitsBalances(t *testing.T) {
	doc := &CAMTDocument{
		Type:              CAMT054,
		MessageID:         "MSG-002",
		AccountID:         "ACCT",
		CreationTimestamp: mustDate(2026, 2, 1),
		Entries: []CAMTEntry{
			{BookingDate: mustDate(2026, 2, 1), ValueDate: mustDate(2026, 2, 1), Direction: Debit, Amount: decimal.NewFromInt(250), Currency: "EUR", Status: StatusBook},
		},
	}
	out, err := EncodeCAMT(doc)
	if err != nil {
		t.Fatalf("EncodeCAMT: %v", err)
	}
	xmlStr := string(out)
	if strings.Contains(xmlStr, "<Bal>") {
		t.Errorf("expected no Bal elements for camt.054, got:\n%s", xmlStr)
	}
	if !strings.Contains(xmlStr, "<CdtDbtInd>DBIT</CdtDbtInd>") {
		t.Errorf("expected a DBIT indicator, got:\n%s", xmlStr)
	}
}
