package bankfmt

// ConvertMT940ToCAMT053 projects a full statement (MT940/950) onto a
// camt.053 bank-to-customer statement, the one-way MT->CAMT conversion
// spec.md §4.4/§6.1 describes (ISO 20022 is generate-only in this library;
// there is no CAMT->MT direction). The counterparty fields on each entry are
// recovered from the tag-86 purpose text via the SEPA scanner and the BIC/
// IBAN heuristics, since MT carries no structured party block on a
// statement line.
func ConvertMT940ToCAMT053(src *MTDocument, messageID string) (*CAMTDocument, error) {
	return convertStatementToCAMT(src, CAMT053, messageID)
}

// ConvertMT942ToCAMT052 projects an interim report (MT942) onto a camt.052
// account report, the interim-reporting counterpart of
// ConvertMT940ToCAMT053.
func ConvertMT942ToCAMT052(src *MTDocument, messageID string) (*CAMTDocument, error) {
	return convertStatementToCAMT(src, CAMT052, messageID)
}

// ConvertMT900ToCAMT054 projects a debit/credit confirmation (MT900/910)
// onto a camt.054 debit-credit notification carrying a single entry.
func ConvertMT900ToCAMT054(src *MTDocument, messageID string) (*CAMTDocument, error) {
	if !(src.Type == MT900 || src.Type == MT910) {
		return nil, NewCodecError(Violation{Kind: KindUnexpectedField, Reason: "source document is not MT900/MT910"})
	}
	dir := Debit
	if src.Type == MT910 {
		dir = Credit
	}
	entry := CAMTEntry{
		BookingDate:    src.Transfer.ValueDate,
		ValueDate:      src.Transfer.ValueDate,
		Direction:      dir,
		Amount:         src.Transfer.Amount,
		Currency:       src.Transfer.Currency,
		Status:         StatusBook,
		EntryReference: src.RelatedReference,
	}
	if src.OrderingInstitution != nil {
		entry.CounterpartyName = src.OrderingInstitution.Name
		entry.CounterpartyBIC = src.OrderingInstitution.BIC
		entry.CounterpartyIBAN = src.OrderingInstitution.Account
	}
	doc := &CAMTDocument{
		Type:              CAMT054,
		MessageID:         messageID,
		ID:                src.SendersReference,
		AccountID:         src.AccountID,
		Currency:          src.Transfer.Currency,
		CreationTimestamp: src.CreationTimestamp,
		Entries:           []CAMTEntry{entry},
	}
	return doc, nil
}

func convertStatementToCAMT(src *MTDocument, typ CAMTType, messageID string) (*CAMTDocument, error) {
	if !src.Type.IsStatement() {
		return nil, NewCodecError(Violation{Kind: KindUnexpectedField, Reason: "source document is not a statement message"})
	}
	opening := src.OpeningBalance
	closing := src.ClosingBalance
	doc := &CAMTDocument{
		Type:                    typ,
		MessageID:               messageID,
		ID:                      src.SendersReference,
		AccountID:               src.AccountID,
		Currency:                opening.Currency,
		CreationTimestamp:       src.CreationTimestamp,
		SequenceNumber:          sequenceFromStatementNumber(src.StatementNumber),
		OpeningBalance:          &opening,
		ClosingBalance:          &closing,
		ClosingAvailableBalance: src.ClosingAvailableBalance,
	}
	for _, tx := range src.Transactions {
		doc.Entries = append(doc.Entries, entryFromMTTransaction(tx))
	}
	return doc, nil
}

func entryFromMTTransaction(tx MTTransaction) CAMTEntry {
	refs := ExtractSEPATags(tx.Purpose)
	entry := CAMTEntry{
		BookingDate:     tx.BookingDate,
		ValueDate:       tx.ValueDate,
		Direction:       tx.Direction,
		Amount:          tx.Amount,
		Currency:        tx.Currency,
		Status:          StatusBook,
		EndToEndID:      refs.EndToEndID,
		MandateID:       refs.MandateID,
		CreditorID:      refs.CreditorID,
		InstructionID:   refs.InstructionID,
		EntryReference:  tx.BankReference,
		Purpose:         tx.Purpose,
		TransactionCode: CAMTTransactionCode(tx.TransactionTypeCode),
		ProprietaryCode: tx.TransactionTypeCode,
	}
	if refs.StructuredPurpose != "" {
		entry.Purpose = refs.StructuredPurpose
	}
	if iban, ok := ExtractIBAN(tx.Purpose); ok {
		entry.CounterpartyIBAN = iban
	}
	if bic, ok := ExtractBIC(tx.Purpose); ok {
		entry.CounterpartyBIC = bic
	}
	return entry
}

// sequenceFromStatementNumber parses the numeric prefix of an MT statement
// number (field 28C's "seqNo[/subSeqNo]" form) into camt.05x's
// ElctrncSeqNb, defaulting to 0 when the prefix is not numeric.
func sequenceFromStatementNumber(statementNumber string) int {
	n := 0
	for _, r := range statementNumber {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
