package bankfmt

import (
	"time"

	"github.com/shopspring/decimal"
)

// PainDocument is a tagged variant over the pain.001/007/008/009-014/017/018
// message family (spec.md §3). Payment-initiation types (001/007/008)
// carry PaymentInstructions; mandate-lifecycle types (009-012/017/018, see
// PainType.IsMandateLifecycle) carry a single Mandate instead.
type PainDocument struct {
	Type PainType

	MessageID         string
	CreationTimestamp time.Time
	InitiatingParty   Party

	// NumberOfTransactions and ControlSum are always recomputed from
	// PaymentInstructions at generation time (spec.md §4.4); any value set
	// here is a pre-build hint only.
	NumberOfTransactions int
	ControlSum           decimal.Decimal

	PaymentInstructions []PainPaymentInstruction
	Mandate             *PainMandate
}

// PainPaymentInstruction is one payment-instruction-level batch within a
// pain.001/008 message: its own control sum, its own execution date, one
// debtor shared by every child transaction.
type PainPaymentInstruction struct {
	InstructionID          string
	PaymentMethod          string // "TRF" (credit transfer) or "DD" (direct debit)
	RequestedExecutionDate time.Time
	Debtor                 Party
	DebtorAccount          string // IBAN
	DebtorAgent            string // BIC

	// NumberOfTransactions and ControlSum mirror the group header's
	// recompute-at-generation rule, scoped to this instruction's children.
	NumberOfTransactions int
	ControlSum           decimal.Decimal

	Transactions []PainTransaction
}

// PainTransaction is a single credit-transfer or direct-debit leg.
type PainTransaction struct {
	EndToEndID string
	Amount     decimal.Decimal
	Currency   string

	Creditor        Party
	CreditorAccount string // IBAN
	CreditorAgent   string // BIC

	RemittanceInfo string

	// Direct-debit mandate reference (pain.008 only).
	MandateID            string
	MandateSignatureDate time.Time
}

// PainMandate carries the mandate lifecycle message types' payload
// (pain.009 mandate initiation through pain.018 mandate suspension).
type PainMandate struct {
	MandateID    string
	CreationDate time.Time

	Debtor        Party
	DebtorAccount string
	DebtorAgent   string

	Creditor        Party
	CreditorAccount string
	CreditorAgent   string

	Amount       decimal.Decimal
	Currency     string
	FrequencyType string
	Reason       string
}

// RecomputeTotals recomputes NumberOfTransactions/ControlSum at the group
// header and at every payment instruction from their actual children,
// ignoring any pre-set value (spec.md §4.4, §3 invariant 2).
func (d *PainDocument) RecomputeTotals() {
	total := decimal.Zero
	count := 0
	for i := range d.PaymentInstructions {
		pi := &d.PaymentInstructions[i]
		sum := decimal.Zero
		for _, tx := range pi.Transactions {
			sum = sum.Add(tx.Amount)
		}
		pi.ControlSum = sum
		pi.NumberOfTransactions = len(pi.Transactions)
		total = total.Add(sum)
		count += len(pi.Transactions)
	}
	d.ControlSum = total
	d.NumberOfTransactions = count
}
