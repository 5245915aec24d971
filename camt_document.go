package bankfmt

import (
	"time"

	"github.com/shopspring/decimal"
)

// CAMTDocument is a tagged variant over camt.052/053/054 (spec.md §3). Type
// selects which entries[] shape and which balances apply.
type CAMTDocument struct {
	Type CAMTType

	MessageID         string
	ID                string
	AccountID         string
	AccountOwner      string
	ServicerBIC       string
	Currency          string
	CreationTimestamp time.Time
	SequenceNumber    int

	// Balances: camt.053 carries opening (PRCD)/closing (CLBD); camt.052
	// additionally carries closing-available (CLAV); camt.054 omits balances.
	OpeningBalance         *Balance
	ClosingBalance         *Balance
	ClosingAvailableBalance *Balance

	Entries []CAMTEntry
}

// CAMTEntry is one statement/notification line.
type CAMTEntry struct {
	BookingDate time.Time
	ValueDate   time.Time
	Direction   Direction
	Amount      decimal.Decimal
	Currency    string
	Status      EntryStatus
	Reversal    bool

	EndToEndID      string
	MandateID       string
	CreditorID      string
	InstructionID   string
	EntryReference  string
	ServicerReference string

	CounterpartyName string
	CounterpartyIBAN string
	CounterpartyBIC  string

	Purpose           string
	TransactionCode   string
	// ProprietaryCode preserves the MT940 transaction code (TransactionTypeCode,
	// 3-letter or 4-character field-61 form) verbatim alongside TransactionCode's mapped CAMT equivalent, per
	// SPEC_FULL.md §8 open question 1 (a passthrough slot for codes the
	// NTRF default would otherwise discard).
	ProprietaryCode string
}

// Signed returns Amount with the sign implied by Direction.
func (e CAMTEntry) Signed() decimal.Decimal {
	if e.Direction == Debit {
		return e.Amount.Neg()
	}
	return e.Amount
}
