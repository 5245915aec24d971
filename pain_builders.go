package bankfmt

import (
	"time"

	"github.com/shopspring/decimal"
)

// PainBatchBuilder assembles pain.001/pain.007/pain.008 payment-initiation
// messages: a group header plus one or more payment instructions, each a
// batch of transactions accumulated via BeginTransaction/Done (spec.md
// §4.3).
type PainBatchBuilder struct {
	doc PainBatchState
}

// PainBatchState is the mutable scratch state threaded through a
// PainBatchBuilder's copy-on-write chain: the document under construction
// plus whichever instruction/transaction is currently open.
type PainBatchState struct {
	doc       PainDocument
	curInstr  *PainPaymentInstruction
	curTx     *PainTransaction
}

// NewPainBatchBuilder starts a builder for one of Pain001/Pain007/Pain008.
func NewPainBatchBuilder(typ PainType) PainBatchBuilder {
	return PainBatchBuilder{doc: PainBatchState{doc: PainDocument{Type: typ}}}
}

func (b PainBatchBuilder) MessageID(id string) PainBatchBuilder {
	b.doc.doc.MessageID = id
	return b
}

func (b PainBatchBuilder) CreationTimestamp(t time.Time) PainBatchBuilder {
	b.doc.doc.CreationTimestamp = t
	return b
}

func (b PainBatchBuilder) InitiatingParty(p Party) PainBatchBuilder {
	b.doc.doc.InitiatingParty = p
	return b
}

// BeginInstruction opens a new payment-instruction-level batch.
func (b PainBatchBuilder) BeginInstruction(instructionID, paymentMethod string) PainBatchBuilder {
	b = b.doneInstruction()
	instr := PainPaymentInstruction{InstructionID: instructionID, PaymentMethod: paymentMethod}
	b.doc.curInstr = &instr
	return b
}

func (b PainBatchBuilder) ExecutionDate(t time.Time) PainBatchBuilder {
	if b.doc.curInstr != nil {
		b.doc.curInstr.RequestedExecutionDate = t
	}
	return b
}

func (b PainBatchBuilder) Debtor(p Party, account, agentBIC string) PainBatchBuilder {
	if b.doc.curInstr != nil {
		b.doc.curInstr.Debtor = p
		b.doc.curInstr.DebtorAccount = account
		b.doc.curInstr.DebtorAgent = agentBIC
	}
	return b
}

// BeginTransaction opens one transaction leg inside the current instruction.
func (b PainBatchBuilder) BeginTransaction(endToEndID string, amount decimal.Decimal, currency string) PainBatchBuilder {
	b = b.doneTransaction()
	tx := PainTransaction{EndToEndID: endToEndID, Amount: amount, Currency: currency}
	b.doc.curTx = &tx
	return b
}

func (b PainBatchBuilder) Creditor(p Party, account, agentBIC string) PainBatchBuilder {
	if b.doc.curTx != nil {
		b.doc.curTx.Creditor = p
		b.doc.curTx.CreditorAccount = account
		b.doc.curTx.CreditorAgent = agentBIC
	}
	return b
}

func (b PainBatchBuilder) RemittanceInfo(text string) PainBatchBuilder {
	if b.doc.curTx != nil {
		b.doc.curTx.RemittanceInfo = text
	}
	return b
}

func (b PainBatchBuilder) MandateReference(id string, signatureDate time.Time) PainBatchBuilder {
	if b.doc.curTx != nil {
		b.doc.curTx.MandateID = id
		b.doc.curTx.MandateSignatureDate = signatureDate
	}
	return b
}

// Done closes the current transaction (spec.md §4.3's "beginTransaction →
// … → done" contract).
func (b PainBatchBuilder) Done() PainBatchBuilder {
	return b.doneTransaction()
}

// DoneInstruction closes the current payment instruction.
func (b PainBatchBuilder) DoneInstruction() PainBatchBuilder {
	return b.doneInstruction()
}

func (b PainBatchBuilder) doneTransaction() PainBatchBuilder {
	if b.doc.curTx == nil || b.doc.curInstr == nil {
		return b
	}
	b.doc.curInstr.Transactions = append(b.doc.curInstr.Transactions, *b.doc.curTx)
	b.doc.curTx = nil
	return b
}

func (b PainBatchBuilder) doneInstruction() PainBatchBuilder {
	b = b.doneTransaction()
	if b.doc.curInstr == nil {
		return b
	}
	b.doc.doc.PaymentInstructions = append(b.doc.doc.PaymentInstructions, *b.doc.curInstr)
	b.doc.curInstr = nil
	return b
}

// Build closes any open instruction/transaction, recomputes control sums
// (spec.md §4.4: "always re-computed... ignoring any pre-set value") and
// validates mandatory fields.
func (b PainBatchBuilder) Build() (*PainDocument, error) {
	b = b.doneInstruction()
	doc := b.doc.doc
	doc.RecomputeTotals()

	var violations []Violation
	if doc.MessageID == "" {
		violations = append(violations, Violation{Kind: KindMissingField, Reason: "message id is required", Field: "message_id"})
	}
	if len(doc.PaymentInstructions) == 0 {
		violations = append(violations, Violation{Kind: KindEmptyBatch, Reason: "pain batch carries no payment instructions"})
	}
	for _, instr := range doc.PaymentInstructions {
		if len(instr.Transactions) == 0 {
			violations = append(violations, Violation{Kind: KindEmptyBatch, Reason: "payment instruction " + instr.InstructionID + " carries no transactions"})
		}
	}
	if len(violations) > 0 {
		return nil, &CodecError{violations: violations}
	}
	return &doc, nil
}

// PainMandateBuilder assembles pain.009-012/017/018 mandate-lifecycle
// messages.
type PainMandateBuilder struct {
	doc PainDocument
}

func NewPainMandateBuilder(typ PainType) PainMandateBuilder {
	return PainMandateBuilder{doc: PainDocument{Type: typ, Mandate: &PainMandate{}}}
}

func (b PainMandateBuilder) MessageID(id string) PainMandateBuilder {
	b.doc.MessageID = id
	return b
}

func (b PainMandateBuilder) CreationTimestamp(t time.Time) PainMandateBuilder {
	b.doc.CreationTimestamp = t
	return b
}

func (b PainMandateBuilder) Mandate(m PainMandate) PainMandateBuilder {
	b.doc.Mandate = &m
	return b
}

func (b PainMandateBuilder) Build() (*PainDocument, error) {
	var violations []Violation
	if b.doc.MessageID == "" {
		violations = append(violations, Violation{Kind: KindMissingField, Reason: "message id is required", Field: "message_id"})
	}
	if b.doc.Mandate == nil || b.doc.Mandate.MandateID == "" {
		violations = append(violations, Violation{Kind: KindMissingField, Reason: "mandate id is required", Field: "mandate_id"})
	}
	if len(violations) > 0 {
		return nil, &CodecError{violations: violations}
	}
	doc := b.doc
	return &doc, nil
}
