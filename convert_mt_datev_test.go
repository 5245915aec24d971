package bankfmt

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/speedata/paymentformats/pkg/datevfields"
)

// TestConvertMT940ToDATEVNullPurpose exercises spec.md §8 boundary
// behaviour 10: an MT940 transaction with no purpose produces empty
// purpose fields without a row-level failure.
func TestConvertMT940ToDATEVNullPurpose(t *testing.T) {
	src := &MTDocument{
		Type:           MT940,
		AccountID:      "DE89370400440532013000",
		OpeningBalance: mustBalance(t, Credit, mustDate(2026, 1, 15), "EUR", decimal.Zero, BalanceTypeNone),
		ClosingBalance: mustBalance(t, Credit, mustDate(2026, 1, 15), "EUR", decimal.NewFromInt(100), BalanceTypeFinal),
		Transactions: []MTTransaction{
			{Direction: Credit, Amount: decimal.NewFromInt(100), Currency: "EUR", ValueDate: mustDate(2026, 1, 15)},
		},
	}
	doc, err := ConvertMT940ToDATEV(src, 1000, 1600, time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ConvertMT940ToDATEV: %v", err)
	}
	if len(doc.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(doc.Rows))
	}
	if ce := ValidateDATEVRow(doc.Rows[0], DATEVBuchungsstapel, 3); ce != nil {
		t.Errorf("expected no validation failures for a null-purpose row, got %v", ce.Violations())
	}
}

func TestConvertMT940ToDATEVRoundTrip(t *testing.T) {
	src := &MTDocument{
		Type:            MT940,
		AccountID:       "DE89370400440532013000",
		StatementNumber: "1/1",
		OpeningBalance:  mustBalance(t, Credit, mustDate(2026, 1, 15), "EUR", decimal.NewFromInt(1000), BalanceTypeNone),
		ClosingBalance:  mustBalance(t, Credit, mustDate(2026, 1, 15), "EUR", decimal.NewFromInt(1500), BalanceTypeFinal),
		Transactions: []MTTransaction{
			{
				Direction:           Credit,
				Amount:              decimal.NewFromInt(500),
				Currency:            "EUR",
				ValueDate:           mustDate(2026, 1, 15),
				TransactionTypeCode: "TRF",
				Purpose:             "EREF+E2E-1 SVWZ+Invoice 100",
			},
		},
	}
	datevDoc, err := ConvertMT940ToDATEV(src, 1000, 1600, time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ConvertMT940ToDATEV: %v", err)
	}

	opening := mustBalance(t, Credit, mustDate(2026, 1, 15), "EUR", decimal.NewFromInt(1000), BalanceTypeNone)
	back, err := ConvertDATEVToMT940(datevDoc, src.AccountID, src.StatementNumber, opening, 2026)
	if err != nil {
		t.Fatalf("ConvertDATEVToMT940: %v", err)
	}
	if len(back.Transactions) != 1 {
		t.Fatalf("expected 1 reconstructed transaction, got %d", len(back.Transactions))
	}
	tx := back.Transactions[0]
	if tx.Direction != Credit || !tx.Amount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("reconstructed transaction = %+v", tx)
	}
	if !back.ClosingBalance.Amount.Equal(src.ClosingBalance.Amount) {
		t.Errorf("reconstructed closing balance = %+v, want %+v", back.ClosingBalance, src.ClosingBalance)
	}
}

func TestConvertDATEVToMT940FallsBackToNonref(t *testing.T) {
	idx := func(name string) int { return datevfields.ColumnIndex(21, name) }
	row := NewDATEVRow(DATEVBuchungsstapel)
	row[idx("Umsatz")] = "100,00"
	row[idx("SollHabenKennzeichen")] = "H"
	row[idx("WKZUmsatz")] = "EUR"
	row[idx("Belegdatum")] = "0115"
	doc := &DATEVDocument{Category: DATEVBuchungsstapel, Rows: []DATEVRow{row}}

	opening := mustBalance(t, Credit, mustDate(2026, 1, 15), "EUR", decimal.Zero, BalanceTypeNone)
	back, err := ConvertDATEVToMT940(doc, "ACCT", "1/1", opening, 2026)
	if err != nil {
		t.Fatalf("ConvertDATEVToMT940: %v", err)
	}
	if back.Transactions[0].Reference.Value != NoReference {
		t.Errorf("Reference.Value = %q, want %q (NONREF fallback)", back.Transactions[0].Reference.Value, NoReference)
	}
}
