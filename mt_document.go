package bankfmt

import (
	"time"

	"github.com/shopspring/decimal"
)

// MTDocument is a tagged variant over every SWIFT MT message type this
// library supports (spec.md §3). Type selects which of the fields below are
// populated; Parse/Serialize and the builders dispatch on it. Not every
// field applies to every type — see the per-field comments.
type MTDocument struct {
	Type MTType

	// Common header (all types): tag 20.
	SendersReference string
	// CreationTimestamp is set by neither the MT parser nor the MT builders;
	// callers assign it directly. The wire format does not carry it explicitly except inside the block-1/2 envelope, which is
	// outside the scope of this library (spec.md §1 treats transport framing
	// as an external collaborator). Kept for API completeness.
	CreationTimestamp time.Time

	// RelatedReference is tag 21, used by MT200/202/202COV/900/910/920.
	RelatedReference string

	// Payment orders (MT101/102/103/104): ordering customer (field 50) plus
	// one transaction per beneficiary.
	OrderingCustomer Party
	Transactions     []MTTransaction

	// Statements (MT940/941/942/950): account id (25), statement number
	// (28C), balances, and transactions.
	AccountID             string
	StatementNumber        string
	OpeningBalance         Balance
	ClosingBalance         Balance
	ClosingAvailableBalance *Balance // field 64
	ForwardAvailableBalance *Balance // field 65

	// Financial-institution transfers (MT200/202/202COV) and confirmations
	// (MT900/910): a single transfer, not a list.
	Transfer                TransferDetails
	OrderingInstitution      *Party // field 52
	IntermediaryInstitution  *Party // field 56
	AccountWithInstitution   *Party // field 57
	BeneficiaryInstitution   *Party // field 58
	Reference                Reference

	// MT920 (request message): which message type is requested and an
	// optional floor limit (field 34F).
	RequestedMessageType string
	FloorLimit           *Balance

	// MT942: opaque datetime indicator (field 13D); not interpreted further,
	// per SPEC_FULL.md §8.
	DateTimeIndicator string

	// Dialect records which subfield packing produced/will produce tag 86
	// (SWIFT free text vs DATEV ?nn slots), per spec.md §4.1.
	Dialect Dialect
}

// MTTransaction is one payment-order line (MT101/102/104) or one statement
// movement (MT940/941/942/950), depending on the parent document's Type.
type MTTransaction struct {
	BookingDate time.Time
	ValueDate   time.Time
	Direction   Direction
	Amount      decimal.Decimal
	Currency    string
	Reference   Reference
	Purpose     string

	// Payment-order-only fields (MT101/104).
	Beneficiary      Party
	MandateReference string
	Charges          ChargesCode

	// Statement-only fields (MT940/941/942/950), from field 61.
	TransactionTypeCode string // field-61 form ("NTRF") or bare 3-letter code ("TRF")
	BankReference       string // the //... suffix of field 61
}

// Signed returns Amount with the sign implied by Direction.
func (t MTTransaction) Signed() decimal.Decimal {
	if t.Direction == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionSum returns the signed sum of all transactions, per the
// closing = opening + sum(signed) invariant (spec.md §3, testable property 1).
func TransactionSum(txs []MTTransaction) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txs {
		sum = sum.Add(t.Signed())
	}
	return sum
}
