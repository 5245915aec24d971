package bankfmt

import (
	"testing"

	"github.com/shopspring/decimal"
)

// TestStatementBuilderComputesMissingClosing exercises the "opening set,
// closing omitted" branch of StatementBuilder.Build: the closing balance is
// derived as opening + sum(signed transactions).
func TestStatementBuilderComputesMissingClosing(t *testing.T) {
	doc, err := NewStatementBuilder(MT940).
		SendersReference("REF1").
		Account("DE89370400440532013000").
		OpeningBalance(mustBalance(t, Credit, mustDate(2026, 1, 15), "EUR", decimal.NewFromInt(1000), BalanceTypeNone)).
		Transaction(MTTransaction{Direction: Credit, Amount: decimal.NewFromInt(500), Currency: "EUR"}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !doc.ClosingBalance.Amount.Equal(decimal.NewFromInt(1500)) || doc.ClosingBalance.Direction != Credit {
		t.Errorf("closing balance = %+v, want 1500.00 Credit", doc.ClosingBalance)
	}
}

// TestStatementBuilderComputesMissingOpening exercises the reverse branch:
// closing set, opening omitted.
func TestStatementBuilderComputesMissingOpening(t *testing.T) {
	doc, err := NewStatementBuilder(MT942).
		SendersReference("REF1").
		Account("ACCT").
		ClosingBalance(mustBalance(t, Credit, mustDate(2026, 1, 15), "EUR", decimal.NewFromInt(1500), BalanceTypeFinal)).
		Transaction(MTTransaction{Direction: Credit, Amount: decimal.NewFromInt(500), Currency: "EUR"}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !doc.OpeningBalance.Amount.Equal(decimal.NewFromInt(1000)) || doc.OpeningBalance.Direction != Credit {
		t.Errorf("opening balance = %+v, want 1000.00 Credit", doc.OpeningBalance)
	}
}

// TestStatementBuilderRejectsInconsistentBalances exercises spec.md §4.3's
// "fatal unless explicitly skipped" rule: both balances set, sum mismatching.
func TestStatementBuilderRejectsInconsistentBalances(t *testing.T) {
	_, err := NewStatementBuilder(MT940).
		SendersReference("REF1").
		Account("ACCT").
		OpeningBalance(mustBalance(t, Credit, mustDate(2026, 1, 15), "EUR", decimal.NewFromInt(1000), BalanceTypeNone)).
		ClosingBalance(mustBalance(t, Credit, mustDate(2026, 1, 15), "EUR", decimal.NewFromInt(9999), BalanceTypeFinal)).
		Transaction(MTTransaction{Direction: Credit, Amount: decimal.NewFromInt(500), Currency: "EUR"}).
		Build()
	if err == nil {
		t.Fatal("expected an error for an inconsistent balance")
	}
	ce := err.(*CodecError)
	if !ce.HasKind(KindBalanceInconsistent) {
		t.Errorf("expected KindBalanceInconsistent, got %v", ce.Violations())
	}
}

// TestStatementBuilderSkipBalanceValidation confirms the escape hatch lets an
// inconsistent pair of balances through unchanged.
func TestStatementBuilderSkipBalanceValidation(t *testing.T) {
	doc, err := NewStatementBuilder(MT940).
		SendersReference("REF1").
		Account("ACCT").
		OpeningBalance(mustBalance(t, Credit, mustDate(2026, 1, 15), "EUR", decimal.NewFromInt(1000), BalanceTypeNone)).
		ClosingBalance(mustBalance(t, Credit, mustDate(2026, 1, 15), "EUR", decimal.NewFromInt(9999), BalanceTypeFinal)).
		Transaction(MTTransaction{Direction: Credit, Amount: decimal.NewFromInt(500), Currency: "EUR"}).
		SkipBalanceValidation().
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !doc.ClosingBalance.Amount.Equal(decimal.NewFromInt(9999)) {
		t.Errorf("closing balance = %+v, want the unmodified preset 9999.00", doc.ClosingBalance)
	}
}

func TestStatementBuilderRejectsMissingAccount(t *testing.T) {
	_, err := NewStatementBuilder(MT940).
		SendersReference("REF1").
		OpeningBalance(mustBalance(t, Credit, mustDate(2026, 1, 15), "EUR", decimal.Zero, BalanceTypeNone)).
		ClosingBalance(mustBalance(t, Credit, mustDate(2026, 1, 15), "EUR", decimal.Zero, BalanceTypeFinal)).
		Build()
	if err == nil {
		t.Fatal("expected an error for a missing account id")
	}
	ce := err.(*CodecError)
	if !ce.HasKind(KindMissingField) {
		t.Errorf("expected KindMissingField, got %v", ce.Violations())
	}
}

// TestOrderBatchBuilderS2 exercises spec.md §8 scenario S2: building an
// MT103 single order via BeginTransaction/Amount/Beneficiary/Charges/Done.
func TestOrderBatchBuilderS2(t *testing.T) {
	doc, err := NewOrderBatchBuilder(MT103).
		SendersReference("MT103REF").
		OrderingCustomer(Party{Name: "Firma GmbH", Account: "DE89370400440532013000"}).
		BeginTransaction("LEG-001").
		Amount("250315", "EUR", decimal.NewFromInt(1000)).
		Beneficiary(Party{Name: "Max Mustermann", Account: "DE91100000000123456789"}).
		Charges(ChargesSHA).
		Done().
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(doc.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(doc.Transactions))
	}
	tx := doc.Transactions[0]
	if tx.Beneficiary.Name != "Max Mustermann" {
		t.Errorf("beneficiary = %+v", tx.Beneficiary)
	}
	if tx.Charges != ChargesSHA {
		t.Errorf("charges = %v, want ChargesSHA", tx.Charges)
	}
	if !tx.Amount.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("amount = %s, want 1000", tx.Amount)
	}
	if tx.ValueDate.IsZero() {
		t.Error("expected Amount() to parse the YYMMDD value date")
	}
}

func TestOrderBatchBuilderRejectsEmptyBatch(t *testing.T) {
	_, err := NewOrderBatchBuilder(MT101).SendersReference("REF1").Build()
	if err == nil {
		t.Fatal("expected an error for an empty batch")
	}
	ce := err.(*CodecError)
	if !ce.HasKind(KindEmptyBatch) {
		t.Errorf("expected KindEmptyBatch, got %v", ce.Violations())
	}
}

// TestOrderBatchBuilderRejectsHeterogeneousCurrency exercises the non-MT101
// mixed-currency guard.
func TestOrderBatchBuilderRejectsHeterogeneousCurrency(t *testing.T) {
	_, err := NewOrderBatchBuilder(MT104).
		SendersReference("REF1").
		BeginTransaction("LEG-1").Amount("250315", "EUR", decimal.NewFromInt(10)).Done().
		BeginTransaction("LEG-2").Amount("250315", "USD", decimal.NewFromInt(10)).Done().
		Build()
	if err == nil {
		t.Fatal("expected an error for mixed currencies in a non-MT101 batch")
	}
	ce := err.(*CodecError)
	if !ce.HasKind(KindHeterogeneousBatch) {
		t.Errorf("expected KindHeterogeneousBatch, got %v", ce.Violations())
	}
}

// TestOrderBatchBuilderAllowsHeterogeneousMT101 confirms MT101 batches (one
// order per instructed currency) are exempt from the mixed-currency guard.
func TestOrderBatchBuilderAllowsHeterogeneousMT101(t *testing.T) {
	_, err := NewOrderBatchBuilder(MT101).
		SendersReference("REF1").
		BeginTransaction("LEG-1").Amount("250315", "EUR", decimal.NewFromInt(10)).Done().
		BeginTransaction("LEG-2").Amount("250315", "USD", decimal.NewFromInt(10)).Done().
		Build()
	if err != nil {
		t.Fatalf("MT101 batches must allow mixed currencies, got: %v", err)
	}
}

func TestInstitutionTransferBuilderRejectsZeroAmount(t *testing.T) {
	_, err := NewInstitutionTransferBuilder(MT202).SendersReference("REF1").Build()
	if err == nil {
		t.Fatal("expected an error for a zero transfer amount")
	}
	ce := err.(*CodecError)
	if !ce.HasKind(KindMissingField) {
		t.Errorf("expected KindMissingField, got %v", ce.Violations())
	}
}

func TestInstitutionTransferBuilderBuild(t *testing.T) {
	doc, err := NewInstitutionTransferBuilder(MT202).
		SendersReference("REF1").
		Transfer(TransferDetails{ValueDate: mustDate(2026, 3, 15), Currency: "EUR", Amount: decimal.NewFromInt(10000)}).
		OrderingInstitution(Party{Name: "Bank A", BIC: "DEUTDEFF"}).
		BeneficiaryInstitution(Party{Name: "Bank B", BIC: "COBADEFF"}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if doc.OrderingInstitution == nil || doc.OrderingInstitution.BIC != "DEUTDEFF" {
		t.Errorf("ordering institution = %+v", doc.OrderingInstitution)
	}
	if doc.BeneficiaryInstitution == nil || doc.BeneficiaryInstitution.BIC != "COBADEFF" {
		t.Errorf("beneficiary institution = %+v", doc.BeneficiaryInstitution)
	}
}

func TestConfirmationBuilderRejectsMissingAccount(t *testing.T) {
	_, err := NewConfirmationBuilder(MT900).
		SendersReference("REF1").
		Transfer(TransferDetails{Currency: "EUR", Amount: decimal.NewFromInt(100)}).
		Build()
	if err == nil {
		t.Fatal("expected an error for a missing account id")
	}
	ce := err.(*CodecError)
	if !ce.HasKind(KindMissingField) {
		t.Errorf("expected KindMissingField, got %v", ce.Violations())
	}
}

func TestConfirmationBuilderBuild(t *testing.T) {
	doc, err := NewConfirmationBuilder(MT910).
		SendersReference("REF1").
		Account("ACCT").
		Transfer(TransferDetails{Currency: "EUR", Amount: decimal.NewFromInt(100)}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if doc.Type != MT910 {
		t.Errorf("doc.Type = %v, want MT910", doc.Type)
	}
}

func TestRequestBuilderBuild(t *testing.T) {
	doc, err := NewRequestBuilder().
		SendersReference("REF1").
		Account("ACCT").
		RequestedMessageType("940").
		FloorLimit(mustBalance(t, Credit, mustDate(2026, 1, 15), "EUR", decimal.NewFromInt(100), BalanceTypeNone)).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if doc.RequestedMessageType != "940" {
		t.Errorf("RequestedMessageType = %q, want 940", doc.RequestedMessageType)
	}
	if doc.FloorLimit == nil || !doc.FloorLimit.Amount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("FloorLimit = %+v", doc.FloorLimit)
	}
}

func TestRequestBuilderRejectsMissingAccount(t *testing.T) {
	_, err := NewRequestBuilder().SendersReference("REF1").Build()
	if err == nil {
		t.Fatal("expected an error for a missing account id")
	}
	ce := err.(*CodecError)
	if !ce.HasKind(KindMissingField) {
		t.Errorf("expected KindMissingField, got %v", ce.Violations())
	}
}

func TestSendersReferenceTooLongRejected(t *testing.T) {
	_, err := NewStatementBuilder(MT940).
		SendersReference("THIS-REFERENCE-IS-WAY-TOO-LONG").
		Account("ACCT").
		OpeningBalance(mustBalance(t, Credit, mustDate(2026, 1, 15), "EUR", decimal.Zero, BalanceTypeNone)).
		ClosingBalance(mustBalance(t, Credit, mustDate(2026, 1, 15), "EUR", decimal.Zero, BalanceTypeFinal)).
		Build()
	if err == nil {
		t.Fatal("expected an error for a senders reference over 16 characters")
	}
	ce := err.(*CodecError)
	if !ce.HasKind(KindFieldTooLong) {
		t.Errorf("expected KindFieldTooLong, got %v", ce.Violations())
	}
}
