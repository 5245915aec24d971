package bankfmt

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewSendersReference synthesizes a tag-20 reference when the caller has none
// of its own, using a UUID fragment to stay within the 16-character field
// limit (spec.md §4.3).
func NewSendersReference() string {
	return "REF" + uuid.NewString()[:13]
}

// checkSendersReferenceLength enforces spec.md §4.3's "senders_reference ≤ 16"
// rule, reported as FieldTooLong rather than silently truncated.
func checkSendersReferenceLength(ref string) []Violation {
	if len(ref) > 16 {
		return []Violation{{Kind: KindFieldTooLong, Reason: "senders reference exceeds 16 characters", Field: "senders_reference", Limit: 16}}
	}
	return nil
}

// StatementBuilder assembles an MT940/941/942/950 document. Every method
// returns a new value; Build validates invariants and yields an immutable
// *MTDocument (spec.md §4.3: "fluent chainable interface... operations are
// pure").
type StatementBuilder struct {
	doc                   MTDocument
	openingSet, closingSet bool
	skipBalanceValidation bool
}

// NewStatementBuilder starts a builder for one of MT940/941/942/950.
func NewStatementBuilder(typ MTType) StatementBuilder {
	return StatementBuilder{doc: MTDocument{Type: typ, Dialect: DialectSWIFT}}
}

func (b StatementBuilder) SendersReference(ref string) StatementBuilder {
	b.doc.SendersReference = ref
	return b
}

func (b StatementBuilder) Account(id string) StatementBuilder {
	b.doc.AccountID = id
	return b
}

func (b StatementBuilder) StatementNumber(n string) StatementBuilder {
	b.doc.StatementNumber = n
	return b
}

func (b StatementBuilder) OpeningBalance(bal Balance) StatementBuilder {
	b.doc.OpeningBalance = bal
	b.openingSet = true
	return b
}

func (b StatementBuilder) ClosingBalance(bal Balance) StatementBuilder {
	b.doc.ClosingBalance = bal
	b.closingSet = true
	return b
}

func (b StatementBuilder) ClosingAvailableBalance(bal Balance) StatementBuilder {
	b.doc.ClosingAvailableBalance = &bal
	return b
}

func (b StatementBuilder) ForwardAvailableBalance(bal Balance) StatementBuilder {
	b.doc.ForwardAvailableBalance = &bal
	return b
}

func (b StatementBuilder) DateTimeIndicator(s string) StatementBuilder {
	b.doc.DateTimeIndicator = s
	return b
}

func (b StatementBuilder) Dialect(d Dialect) StatementBuilder {
	b.doc.Dialect = d
	return b
}

// Transaction appends one statement line, copy-on-write.
func (b StatementBuilder) Transaction(tx MTTransaction) StatementBuilder {
	txs := make([]MTTransaction, len(b.doc.Transactions)+1)
	copy(txs, b.doc.Transactions)
	txs[len(txs)-1] = tx
	b.doc.Transactions = txs
	return b
}

// SkipBalanceValidation disables the closing = opening + sum(signed) check
// (spec.md §4.3: "fatal unless explicitly skipped via a skipBalanceValidation
// flag").
func (b StatementBuilder) SkipBalanceValidation() StatementBuilder {
	b.skipBalanceValidation = true
	return b
}

// Build validates mandatory fields, completes whichever one balance side is
// missing, and yields an immutable document.
func (b StatementBuilder) Build() (*MTDocument, error) {
	var violations []Violation
	if b.doc.SendersReference == "" {
		b.doc.SendersReference = NewSendersReference()
	}
	violations = append(violations, checkSendersReferenceLength(b.doc.SendersReference)...)
	if b.doc.AccountID == "" {
		violations = append(violations, Violation{Kind: KindMissingField, Reason: "account id is required", Field: "account_id"})
	}

	sum := TransactionSum(b.doc.Transactions)
	switch {
	case b.doc.Type == MT941:
		// balance-only: no transactions, opening is not meaningful.
	case b.openingSet && !b.closingSet:
		signed := b.doc.OpeningBalance.Signed().Add(sum)
		b.doc.ClosingBalance = BalanceFromSigned(signed, b.doc.OpeningBalance.Date, b.doc.OpeningBalance.Currency, BalanceTypeFinal)
	case !b.openingSet && b.closingSet:
		signed := b.doc.ClosingBalance.Signed().Sub(sum)
		b.doc.OpeningBalance = BalanceFromSigned(signed, b.doc.ClosingBalance.Date, b.doc.ClosingBalance.Currency, BalanceTypeNone)
	case b.openingSet && b.closingSet && !b.skipBalanceValidation:
		want := b.doc.OpeningBalance.Signed().Add(sum)
		got := b.doc.ClosingBalance.Signed()
		if !want.Equal(got) {
			violations = append(violations, Violation{
				Kind:   KindBalanceInconsistent,
				Reason: "closing balance " + FormatMTAmount(got.Abs()) + " does not equal opening + sum(transactions) " + FormatMTAmount(want.Abs()),
			})
		}
	}

	if len(violations) > 0 {
		return nil, &CodecError{violations: violations}
	}
	doc := b.doc
	return &doc, nil
}

// OrderBatchBuilder assembles an MT101/102/103/104 document, collecting one
// transaction per BeginTransaction/Done pair (spec.md §4.3). It keeps no
// control sum or transaction count of its own; the built document carries
// neither as a separate field.
type OrderBatchBuilder struct {
	doc MTDocument
	cur *MTTransaction
}

// NewOrderBatchBuilder starts a builder for one of MT101/102/103/104.
func NewOrderBatchBuilder(typ MTType) OrderBatchBuilder {
	return OrderBatchBuilder{doc: MTDocument{Type: typ}}
}

func (b OrderBatchBuilder) SendersReference(ref string) OrderBatchBuilder {
	b.doc.SendersReference = ref
	return b
}

func (b OrderBatchBuilder) OrderingCustomer(p Party) OrderBatchBuilder {
	b.doc.OrderingCustomer = p
	return b
}

// BeginTransaction opens one payment-order line, identified by reference.
func (b OrderBatchBuilder) BeginTransaction(reference string) OrderBatchBuilder {
	tx := MTTransaction{Reference: Reference{Value: reference}}
	b.cur = &tx
	return b
}

func (b OrderBatchBuilder) Amount(valueDate string, currency string, amount decimal.Decimal) OrderBatchBuilder {
	if b.cur == nil {
		return b
	}
	date, err := parseDateYYMMDD(valueDate)
	if err == nil {
		b.cur.ValueDate = date
	}
	b.cur.Currency = currency
	b.cur.Amount = amount
	return b
}

func (b OrderBatchBuilder) Beneficiary(p Party) OrderBatchBuilder {
	if b.cur == nil {
		return b
	}
	b.cur.Beneficiary = p
	return b
}

func (b OrderBatchBuilder) MandateReference(ref string) OrderBatchBuilder {
	if b.cur == nil {
		return b
	}
	b.cur.MandateReference = ref
	return b
}

func (b OrderBatchBuilder) Purpose(text string) OrderBatchBuilder {
	if b.cur == nil {
		return b
	}
	b.cur.Purpose = text
	return b
}

func (b OrderBatchBuilder) Charges(code ChargesCode) OrderBatchBuilder {
	if b.cur == nil {
		return b
	}
	b.cur.Charges = code
	return b
}

// Done closes the current transaction and appends it to the batch.
func (b OrderBatchBuilder) Done() OrderBatchBuilder {
	if b.cur == nil {
		return b
	}
	txs := make([]MTTransaction, len(b.doc.Transactions)+1)
	copy(txs, b.doc.Transactions)
	txs[len(txs)-1] = *b.cur
	b.doc.Transactions = txs
	b.cur = nil
	return b
}

// Build validates mandatory fields and yields an immutable document.
func (b OrderBatchBuilder) Build() (*MTDocument, error) {
	b = b.Done()
	var violations []Violation
	if b.doc.SendersReference == "" {
		b.doc.SendersReference = NewSendersReference()
	}
	violations = append(violations, checkSendersReferenceLength(b.doc.SendersReference)...)
	if len(b.doc.Transactions) == 0 {
		violations = append(violations, Violation{Kind: KindEmptyBatch, Reason: "batch carries no transactions"})
	}
	for _, tx := range b.doc.Transactions {
		if len(tx.Reference.Value) > 16 {
			violations = append(violations, Violation{Kind: KindFieldTooLong, Reason: "transaction reference exceeds 16 characters", Field: "transaction_reference", Limit: 16})
		}
	}
	if b.doc.Type != MT101 {
		ccy := ""
		for _, tx := range b.doc.Transactions {
			if ccy == "" {
				ccy = tx.Currency
			} else if tx.Currency != ccy {
				violations = append(violations, Violation{Kind: KindHeterogeneousBatch, Reason: "mixed currencies in a non-MT101 batch"})
				break
			}
		}
	}
	if len(violations) > 0 {
		return nil, &CodecError{violations: violations}
	}
	doc := b.doc
	return &doc, nil
}

// InstitutionTransferBuilder assembles an MT200/202/202COV document.
type InstitutionTransferBuilder struct {
	doc MTDocument
}

func NewInstitutionTransferBuilder(typ MTType) InstitutionTransferBuilder {
	return InstitutionTransferBuilder{doc: MTDocument{Type: typ}}
}

func (b InstitutionTransferBuilder) SendersReference(ref string) InstitutionTransferBuilder {
	b.doc.SendersReference = ref
	return b
}

func (b InstitutionTransferBuilder) RelatedReference(ref string) InstitutionTransferBuilder {
	b.doc.RelatedReference = ref
	return b
}

func (b InstitutionTransferBuilder) Transfer(t TransferDetails) InstitutionTransferBuilder {
	b.doc.Transfer = t
	return b
}

func (b InstitutionTransferBuilder) OrderingInstitution(p Party) InstitutionTransferBuilder {
	b.doc.OrderingInstitution = &p
	return b
}

func (b InstitutionTransferBuilder) IntermediaryInstitution(p Party) InstitutionTransferBuilder {
	b.doc.IntermediaryInstitution = &p
	return b
}

func (b InstitutionTransferBuilder) AccountWithInstitution(p Party) InstitutionTransferBuilder {
	b.doc.AccountWithInstitution = &p
	return b
}

func (b InstitutionTransferBuilder) BeneficiaryInstitution(p Party) InstitutionTransferBuilder {
	b.doc.BeneficiaryInstitution = &p
	return b
}

func (b InstitutionTransferBuilder) Build() (*MTDocument, error) {
	var violations []Violation
	if b.doc.SendersReference == "" {
		b.doc.SendersReference = NewSendersReference()
	}
	violations = append(violations, checkSendersReferenceLength(b.doc.SendersReference)...)
	if b.doc.Transfer.Amount.IsZero() {
		violations = append(violations, Violation{Kind: KindMissingField, Reason: "transfer amount is required", Field: "transfer.amount"})
	}
	if len(violations) > 0 {
		return nil, &CodecError{violations: violations}
	}
	doc := b.doc
	return &doc, nil
}

// ConfirmationBuilder assembles an MT900/910 document.
type ConfirmationBuilder struct {
	doc MTDocument
}

func NewConfirmationBuilder(typ MTType) ConfirmationBuilder {
	return ConfirmationBuilder{doc: MTDocument{Type: typ}}
}

func (b ConfirmationBuilder) SendersReference(ref string) ConfirmationBuilder {
	b.doc.SendersReference = ref
	return b
}

func (b ConfirmationBuilder) RelatedReference(ref string) ConfirmationBuilder {
	b.doc.RelatedReference = ref
	return b
}

func (b ConfirmationBuilder) Account(id string) ConfirmationBuilder {
	b.doc.AccountID = id
	return b
}

func (b ConfirmationBuilder) Transfer(t TransferDetails) ConfirmationBuilder {
	b.doc.Transfer = t
	return b
}

func (b ConfirmationBuilder) OrderingInstitution(p Party) ConfirmationBuilder {
	b.doc.OrderingInstitution = &p
	return b
}

func (b ConfirmationBuilder) Build() (*MTDocument, error) {
	var violations []Violation
	if b.doc.SendersReference == "" {
		b.doc.SendersReference = NewSendersReference()
	}
	violations = append(violations, checkSendersReferenceLength(b.doc.SendersReference)...)
	if b.doc.AccountID == "" {
		violations = append(violations, Violation{Kind: KindMissingField, Reason: "account id is required", Field: "account_id"})
	}
	if len(violations) > 0 {
		return nil, &CodecError{violations: violations}
	}
	doc := b.doc
	return &doc, nil
}

// RequestBuilder assembles an MT920 request message.
type RequestBuilder struct {
	doc MTDocument
}

func NewRequestBuilder() RequestBuilder {
	return RequestBuilder{doc: MTDocument{Type: MT920}}
}

func (b RequestBuilder) SendersReference(ref string) RequestBuilder {
	b.doc.SendersReference = ref
	return b
}

func (b RequestBuilder) RequestedMessageType(t string) RequestBuilder {
	b.doc.RequestedMessageType = t
	return b
}

func (b RequestBuilder) Account(id string) RequestBuilder {
	b.doc.AccountID = id
	return b
}

func (b RequestBuilder) FloorLimit(bal Balance) RequestBuilder {
	b.doc.FloorLimit = &bal
	return b
}

func (b RequestBuilder) Build() (*MTDocument, error) {
	var violations []Violation
	if b.doc.SendersReference == "" {
		b.doc.SendersReference = NewSendersReference()
	}
	violations = append(violations, checkSendersReferenceLength(b.doc.SendersReference)...)
	if b.doc.AccountID == "" {
		violations = append(violations, Violation{Kind: KindMissingField, Reason: "account id is required", Field: "account_id"})
	}
	if len(violations) > 0 {
		return nil, &CodecError{violations: violations}
	}
	doc := b.doc
	return &doc, nil
}
