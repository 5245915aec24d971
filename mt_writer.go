package bankfmt

// SerializeMT encodes an MTDocument back to its block-4 wire body, dispatching
// on doc.Type. The returned bytes never carry the block 1/2 envelope
// (spec.md §1).
func SerializeMT(doc *MTDocument) ([]byte, error) {
	switch {
	case doc.Type.IsStatement():
		return serializeStatement(doc)
	case doc.Type.IsPaymentOrder():
		return serializeOrderBatch(doc)
	case doc.Type == MT200 || doc.Type == MT202 || doc.Type == MT202COV:
		return serializeInstitutionTransfer(doc)
	case doc.Type == MT900 || doc.Type == MT910:
		return serializeConfirmation(doc)
	case doc.Type == MT920:
		return serializeRequest(doc)
	}
	return nil, NewCodecError(Violation{Kind: KindUnexpectedField, Reason: "unknown MT type"})
}

// appendPartyField appends a multi-line party field: the first line carries
// the ":tag:" delimiter, the rest are bare continuation lines (spec.md
// §4.1 — only the initial line of a field starts with ':').
func appendPartyField(lines []string, tag string, p Party) []string {
	for i, l := range formatParty(p) {
		if i == 0 {
			lines = append(lines, encodeField(tag, l))
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

func serializeStatement(doc *MTDocument) ([]byte, error) {
	var lines []string
	lines = append(lines, encodeField("20", doc.SendersReference))
	lines = append(lines, encodeField("25", doc.AccountID))
	if doc.StatementNumber != "" {
		lines = append(lines, encodeField("28C", doc.StatementNumber))
	}
	if doc.DateTimeIndicator != "" {
		lines = append(lines, encodeField("13D", doc.DateTimeIndicator))
	}
	openingTag := "60F"
	closingTag := "62F"
	if doc.Type == MT942 {
		openingTag, closingTag = "60M", "62M"
	}
	if doc.Type != MT941 {
		lines = append(lines, encodeField(openingTag, formatBalanceField(doc.OpeningBalance)))
	}
	for _, tx := range doc.Transactions {
		lines = append(lines, encodeField("61", format61(tx)))
		if tx.Purpose != "" {
			for i, l := range encode86(tx.Purpose, "", "", "", doc.Dialect) {
				if i == 0 {
					lines = append(lines, encodeField("86", l))
					continue
				}
				lines = append(lines, l)
			}
		}
	}
	lines = append(lines, encodeField(closingTag, formatBalanceField(doc.ClosingBalance)))
	if doc.ClosingAvailableBalance != nil {
		lines = append(lines, encodeField("64", formatBalanceField(*doc.ClosingAvailableBalance)))
	}
	if doc.ForwardAvailableBalance != nil {
		lines = append(lines, encodeField("65", formatBalanceField(*doc.ForwardAvailableBalance)))
	}
	return []byte(serializeFields(lines) + "\r\n"), nil
}

func serializeOrderBatch(doc *MTDocument) ([]byte, error) {
	var lines []string
	lines = append(lines, encodeField("20", doc.SendersReference))
	lines = appendPartyField(lines, "50", doc.OrderingCustomer)
	for _, tx := range doc.Transactions {
		lines = append(lines, encodeField("21", tx.Reference.Value))
		lines = append(lines, encodeField("32A", format32A(tx.ValueDate, tx.Currency, tx.Amount)))
		lines = appendPartyField(lines, "59", tx.Beneficiary)
		if tx.MandateReference != "" {
			lines = append(lines, encodeField("21C", tx.MandateReference))
		}
		if tx.Purpose != "" {
			lines = append(lines, encodeField("70", tx.Purpose))
		}
		if tx.Charges != ChargesUnspecified {
			lines = append(lines, encodeField("71A", tx.Charges.String()))
		}
	}
	return []byte(serializeFields(lines) + "\r\n"), nil
}

func serializeInstitutionTransfer(doc *MTDocument) ([]byte, error) {
	var lines []string
	lines = append(lines, encodeField("20", doc.SendersReference))
	if doc.RelatedReference != "" {
		lines = append(lines, encodeField("21", doc.RelatedReference))
	}
	lines = append(lines, encodeField("32A", format32A(doc.Transfer.ValueDate, doc.Transfer.Currency, doc.Transfer.Amount)))
	if doc.OrderingInstitution != nil {
		lines = appendPartyField(lines, "52A", *doc.OrderingInstitution)
	}
	if doc.IntermediaryInstitution != nil {
		lines = appendPartyField(lines, "56A", *doc.IntermediaryInstitution)
	}
	if doc.AccountWithInstitution != nil {
		lines = appendPartyField(lines, "57A", *doc.AccountWithInstitution)
	}
	if doc.BeneficiaryInstitution != nil {
		lines = appendPartyField(lines, "58A", *doc.BeneficiaryInstitution)
	}
	return []byte(serializeFields(lines) + "\r\n"), nil
}

func serializeConfirmation(doc *MTDocument) ([]byte, error) {
	var lines []string
	lines = append(lines, encodeField("20", doc.SendersReference))
	if doc.RelatedReference != "" {
		lines = append(lines, encodeField("21", doc.RelatedReference))
	}
	lines = append(lines, encodeField("25", doc.AccountID))
	lines = append(lines, encodeField("32A", format32A(doc.Transfer.ValueDate, doc.Transfer.Currency, doc.Transfer.Amount)))
	if doc.OrderingInstitution != nil {
		lines = appendPartyField(lines, "52A", *doc.OrderingInstitution)
	}
	return []byte(serializeFields(lines) + "\r\n"), nil
}

func serializeRequest(doc *MTDocument) ([]byte, error) {
	var lines []string
	lines = append(lines, encodeField("20", doc.SendersReference))
	if doc.RequestedMessageType != "" {
		lines = append(lines, encodeField("12", doc.RequestedMessageType))
	}
	lines = append(lines, encodeField("25", doc.AccountID))
	if doc.FloorLimit != nil {
		lines = append(lines, encodeField("34F", format34F(*doc.FloorLimit)))
	}
	return []byte(serializeFields(lines) + "\r\n"), nil
}
