package bankfmt

// Cross-format conversions into pain.001/pain.008 are free functions rather
// than builder methods (spec.md §6.3): a payment order already fully
// described as an MTDocument or a CAMT entry carries everything a pain
// instruction needs, so there is nothing left to accumulate incrementally.

// ConvertMT101ToPain001 projects a credit-transfer order batch (MT101) onto
// a pain.001 customer-credit-transfer-initiation message. All transactions
// go into a single PmtInf instruction, whatever their value dates or
// currencies (spec.md §4.4, §6.3).
func ConvertMT101ToPain001(src *MTDocument, messageID, instructionID string) (*PainDocument, error) {
	if src.Type != MT101 {
		return nil, NewCodecError(Violation{Kind: KindUnexpectedField, Reason: "source document is not MT101"})
	}
	if len(src.Transactions) == 0 {
		return nil, NewCodecError(Violation{Kind: KindEmptyBatch, Reason: "MT101 batch carries no transactions"})
	}
	b := NewPainBatchBuilder(Pain001).
		MessageID(messageID).
		CreationTimestamp(src.CreationTimestamp).
		InitiatingParty(src.OrderingCustomer).
		BeginInstruction(instructionID, "TRF").
		Debtor(src.OrderingCustomer, src.OrderingCustomer.Account, "")

	for _, tx := range src.Transactions {
		b = b.BeginTransaction(NewSendersReference(), tx.Amount, tx.Currency).
			Creditor(tx.Beneficiary, tx.Beneficiary.Account, tx.Beneficiary.BIC).
			RemittanceInfo(tx.Purpose)
		if tx.MandateReference != "" {
			b = b.MandateReference(tx.MandateReference, src.CreationTimestamp)
		}
		b = b.Done()
	}
	return b.Build()
}

// ConvertMT104ToPain008 projects a direct-debit collection batch (MT104)
// onto a pain.008 customer-direct-debit-initiation message.
func ConvertMT104ToPain008(src *MTDocument, messageID, instructionID string) (*PainDocument, error) {
	if src.Type != MT104 {
		return nil, NewCodecError(Violation{Kind: KindUnexpectedField, Reason: "source document is not MT104"})
	}
	if len(src.Transactions) == 0 {
		return nil, NewCodecError(Violation{Kind: KindEmptyBatch, Reason: "MT104 batch carries no transactions"})
	}
	b := NewPainBatchBuilder(Pain008).
		MessageID(messageID).
		CreationTimestamp(src.CreationTimestamp).
		InitiatingParty(src.OrderingCustomer).
		BeginInstruction(instructionID, "DD").
		Debtor(src.OrderingCustomer, src.OrderingCustomer.Account, "")

	for _, tx := range src.Transactions {
		// In MT104 the "beneficiary" field names the debtor being collected
		// from; the creditor of the resulting direct debit is the ordering
		// customer that initiated the batch.
		b = b.BeginTransaction(NewSendersReference(), tx.Amount, tx.Currency).
			Creditor(src.OrderingCustomer, src.OrderingCustomer.Account, "").
			RemittanceInfo(tx.Purpose)
		if tx.MandateReference != "" {
			b = b.MandateReference(tx.MandateReference, src.CreationTimestamp)
		}
		b = b.Done()
	}
	return b.Build()
}

// ConvertCAMTEntryToPain014 projects a single booked or rejected entry onto
// a minimal pain.014 creditor-payment-activation status report, used when a
// CAMT054 notification needs to be echoed back to an originating payment
// system as a status update (spec.md §6.3's supplemented pain.014 flow,
// following original_source/'s status-notification handling).
func ConvertCAMTEntryToPain014(entry CAMTEntry, messageID, originalMessageID, originalInstructionID string) (*PainDocument, error) {
	status := "ACCP"
	if entry.Status == StatusPending {
		status = "PDNG"
	}
	if entry.Reversal {
		status = "RJCT"
	}
	b := NewPainBatchBuilder(Pain014).
		MessageID(messageID).
		BeginInstruction(originalInstructionID, status).
		Debtor(Party{}, "", "")
	b = b.BeginTransaction(entry.EndToEndID, entry.Amount, entry.Currency).
		RemittanceInfo(entry.Purpose).
		Done()
	return b.Build()
}
