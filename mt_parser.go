package bankfmt

import "strings"

// ParseMT decodes the block-4 body of an MT message of the given type into
// an MTDocument. The caller supplies the type because the block-4 body
// alone never carries the application header (spec.md §1 treats the block
// 1/2 envelope as external transport framing).
func ParseMT(data []byte, typ MTType) (*MTDocument, error) {
	fields, err := scanFields(string(data))
	if err != nil {
		return nil, err
	}
	switch typ {
	case MT940, MT941, MT942, MT950:
		return parseStatement(fields, typ)
	case MT101, MT102, MT103, MT104:
		return parseOrderBatch(fields, typ)
	case MT200, MT202, MT202COV:
		return parseInstitutionTransfer(fields, typ)
	case MT900, MT910:
		return parseConfirmation(fields, typ)
	case MT920:
		return parseRequest(fields)
	}
	return nil, &CodecError{violations: []Violation{{Kind: KindUnexpectedField, Reason: "unknown MT type"}}}
}

// ParseMT940 decodes an MT940 account statement.
func ParseMT940(data []byte) (*MTDocument, error) { return ParseMT(data, MT940) }

// ParseMT941 decodes an MT941 balance-only statement.
func ParseMT941(data []byte) (*MTDocument, error) { return ParseMT(data, MT941) }

// ParseMT942 decodes an MT942 interim statement.
func ParseMT942(data []byte) (*MTDocument, error) { return ParseMT(data, MT942) }

// ParseMT950 decodes an MT950 statement.
func ParseMT950(data []byte) (*MTDocument, error) { return ParseMT(data, MT950) }

// ParseMT101 decodes an MT101 multiple customer credit-transfer batch.
func ParseMT101(data []byte) (*MTDocument, error) { return ParseMT(data, MT101) }

// ParseMT102 decodes an MT102 multiple customer credit transfer.
func ParseMT102(data []byte) (*MTDocument, error) { return ParseMT(data, MT102) }

// ParseMT103 decodes an MT103 single customer credit transfer.
func ParseMT103(data []byte) (*MTDocument, error) { return ParseMT(data, MT103) }

// ParseMT104 decodes an MT104 direct debit/request for debit transfer batch.
func ParseMT104(data []byte) (*MTDocument, error) { return ParseMT(data, MT104) }

// ParseMT200 decodes an MT200 financial institution transfer for its own
// account.
func ParseMT200(data []byte) (*MTDocument, error) { return ParseMT(data, MT200) }

// ParseMT202 decodes an MT202 general financial institution transfer.
func ParseMT202(data []byte) (*MTDocument, error) { return ParseMT(data, MT202) }

// ParseMT900 decodes an MT900 debit confirmation.
func ParseMT900(data []byte) (*MTDocument, error) { return ParseMT(data, MT900) }

// ParseMT910 decodes an MT910 credit confirmation.
func ParseMT910(data []byte) (*MTDocument, error) { return ParseMT(data, MT910) }

// ParseMT920 decodes an MT920 request message.
func ParseMT920(data []byte) (*MTDocument, error) { return ParseMT(data, MT920) }

// parseStatement decodes an MT940/941/942/950 field list laid out as in
// spec.md §4.1: Header -> OpeningBalance -> (Transaction [InfoTag])* ->
// ClosingBalance [AvailableBalance] -> End. It makes one pass over the fields
// and does not check their order: each recognised tag is stored wherever it
// appears, unrecognised tags are ignored, and a tag 86 that comes before any
// tag 61 is dropped. Missing 20, opening (except MT941) and closing balances
// are reported.
func parseStatement(fields []mtField, typ MTType) (*MTDocument, error) {
	doc := &MTDocument{Type: typ, Dialect: DialectSWIFT}
	var violations []Violation
	sawOpening, sawClosing := false, false

	for _, f := range fields {
		value := strings.TrimSpace(f.Value())
		switch f.Tag {
		case "20":
			doc.SendersReference = value
		case "25":
			doc.AccountID = value
		case "28C":
			doc.StatementNumber = value
		case "13D":
			doc.DateTimeIndicator = value
		case "60F", "60M":
			bal, err := parseBalanceField(value, BalanceTypeNone)
			if err != nil {
				violations = append(violations, asCodecError(err).Violations()...)
				continue
			}
			doc.OpeningBalance = bal
			sawOpening = true
		case "61":
			tx, err := parse61(f.Lines[0])
			if err != nil {
				violations = append(violations, asCodecError(err).Violations()...)
				continue
			}
			tx.Currency = doc.OpeningBalance.Currency
			doc.Transactions = append(doc.Transactions, tx)
		case "86":
			purpose, bic, account, name := decode86(f.Lines)
			if containsSubfieldMarker(f.Lines) {
				doc.Dialect = DialectDATEV
			}
			if len(doc.Transactions) > 0 {
				last := &doc.Transactions[len(doc.Transactions)-1]
				last.Purpose = purpose
				if last.BankReference == "" {
					last.BankReference = bankRefFromCounterparty(bic, account, name)
				}
			}
		case "62F", "62M":
			bal, err := parseBalanceField(value, BalanceTypeFinal)
			if err != nil {
				violations = append(violations, asCodecError(err).Violations()...)
				continue
			}
			doc.ClosingBalance = bal
			sawClosing = true
		case "64":
			bal, err := parseBalanceField(value, BalanceTypeClosingAvailable)
			if err != nil {
				violations = append(violations, asCodecError(err).Violations()...)
				continue
			}
			doc.ClosingAvailableBalance = &bal
		case "65":
			bal, err := parseBalanceField(value, BalanceTypeClosingAvailable)
			if err != nil {
				violations = append(violations, asCodecError(err).Violations()...)
				continue
			}
			doc.ForwardAvailableBalance = &bal
		}
	}

	if doc.SendersReference == "" {
		violations = append(violations, Violation{Kind: KindTruncatedMessage, Reason: "missing mandatory field 20"})
	}
	if typ != MT941 && !sawOpening {
		violations = append(violations, Violation{Kind: KindTruncatedMessage, Reason: "missing opening balance (60F/60M)"})
	}
	if !sawClosing {
		violations = append(violations, Violation{Kind: KindTruncatedMessage, Reason: "missing closing balance (62F/62M)"})
	}
	if len(violations) > 0 {
		return nil, &CodecError{violations: violations}
	}
	return doc, nil
}

// containsSubfieldMarker reports whether any line of a tag-86 field carries
// a DATEV ?nn subfield marker.
func containsSubfieldMarker(lines []string) bool {
	joined := strings.Join(lines, "")
	return strings.Contains(joined, "?20") || strings.Contains(joined, "?30") || strings.Contains(joined, "?31") || strings.Contains(joined, "?32")
}

// bankRefFromCounterparty packs a decoded DATEV-dialect counterparty into a
// single free-text note when no bank reference was present on field 61.
func bankRefFromCounterparty(bic, account, name string) string {
	parts := []string{}
	for _, p := range []string{bic, account, name} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "/")
}

// parseOrderBatch decodes MT101/102/103/104 payment-order messages: a
// shared header (20, ordering customer) followed by one or more
// transactions, each introduced by tag 21 (spec.md §3).
func parseOrderBatch(fields []mtField, typ MTType) (*MTDocument, error) {
	doc := &MTDocument{Type: typ}
	var violations []Violation
	var cur *MTTransaction

	flush := func() {
		if cur != nil {
			doc.Transactions = append(doc.Transactions, *cur)
			cur = nil
		}
	}

	for _, f := range fields {
		value := strings.TrimSpace(f.Value())
		switch f.Tag {
		case "20":
			doc.SendersReference = value
		case "50", "50A", "50K":
			doc.OrderingCustomer = parseParty(f.Lines)
		case "21":
			flush()
			cur = &MTTransaction{Reference: Reference{Value: value}}
		case "32A":
			if cur == nil {
				cur = &MTTransaction{}
			}
			date, ccy, amt, err := parse32A(value)
			if err != nil {
				violations = append(violations, asCodecError(err).Violations()...)
				continue
			}
			cur.ValueDate = date
			cur.Currency = ccy
			cur.Amount = amt
		case "59", "59A":
			if cur == nil {
				cur = &MTTransaction{}
			}
			cur.Beneficiary = parseParty(f.Lines)
		case "70":
			if cur == nil {
				cur = &MTTransaction{}
			}
			cur.Purpose = strings.Join(f.Lines, "")
		case "71A":
			if cur == nil {
				cur = &MTTransaction{}
			}
			code, err := ChargesCodeFromString(value)
			if err != nil {
				violations = append(violations, asCodecError(err).Violations()...)
				continue
			}
			cur.Charges = code
		case "21C":
			if cur == nil {
				cur = &MTTransaction{}
			}
			cur.MandateReference = value
		}
	}
	flush()

	if doc.SendersReference == "" {
		violations = append(violations, Violation{Kind: KindTruncatedMessage, Reason: "missing mandatory field 20"})
	}
	if len(doc.Transactions) == 0 {
		violations = append(violations, Violation{Kind: KindEmptyBatch, Reason: "payment order carries no transactions"})
	}
	if len(violations) > 0 {
		return nil, &CodecError{violations: violations}
	}
	return doc, nil
}

// parseInstitutionTransfer decodes MT200/202/202COV general financial
// institution transfers: a single transfer, not a transaction list.
func parseInstitutionTransfer(fields []mtField, typ MTType) (*MTDocument, error) {
	doc := &MTDocument{Type: typ}
	var violations []Violation
	sawAmount := false

	for _, f := range fields {
		value := strings.TrimSpace(f.Value())
		switch f.Tag {
		case "20":
			doc.SendersReference = value
		case "21":
			doc.RelatedReference = value
		case "32A":
			date, ccy, amt, err := parse32A(value)
			if err != nil {
				violations = append(violations, asCodecError(err).Violations()...)
				continue
			}
			doc.Transfer = TransferDetails{ValueDate: date, Currency: ccy, Amount: amt}
			sawAmount = true
		case "52A", "52D":
			p := parseParty(f.Lines)
			doc.OrderingInstitution = &p
		case "56A", "56D":
			p := parseParty(f.Lines)
			doc.IntermediaryInstitution = &p
		case "57A", "57D":
			p := parseParty(f.Lines)
			doc.AccountWithInstitution = &p
		case "58A", "58D":
			p := parseParty(f.Lines)
			doc.BeneficiaryInstitution = &p
		}
	}

	if doc.SendersReference == "" {
		violations = append(violations, Violation{Kind: KindTruncatedMessage, Reason: "missing mandatory field 20"})
	}
	if !sawAmount {
		violations = append(violations, Violation{Kind: KindTruncatedMessage, Reason: "missing mandatory field 32A"})
	}
	if len(violations) > 0 {
		return nil, &CodecError{violations: violations}
	}
	return doc, nil
}

// parseConfirmation decodes MT900/910 debit/credit confirmations.
func parseConfirmation(fields []mtField, typ MTType) (*MTDocument, error) {
	doc := &MTDocument{Type: typ}
	var violations []Violation
	sawAmount := false

	for _, f := range fields {
		value := strings.TrimSpace(f.Value())
		switch f.Tag {
		case "20":
			doc.SendersReference = value
		case "21":
			doc.RelatedReference = value
		case "25":
			doc.AccountID = value
		case "32A":
			date, ccy, amt, err := parse32A(value)
			if err != nil {
				violations = append(violations, asCodecError(err).Violations()...)
				continue
			}
			doc.Transfer = TransferDetails{ValueDate: date, Currency: ccy, Amount: amt}
			sawAmount = true
		case "52A", "52D":
			p := parseParty(f.Lines)
			doc.OrderingInstitution = &p
		}
	}

	if doc.SendersReference == "" {
		violations = append(violations, Violation{Kind: KindTruncatedMessage, Reason: "missing mandatory field 20"})
	}
	if !sawAmount {
		violations = append(violations, Violation{Kind: KindTruncatedMessage, Reason: "missing mandatory field 32A"})
	}
	if len(violations) > 0 {
		return nil, &CodecError{violations: violations}
	}
	return doc, nil
}

// parseRequest decodes an MT920 request message.
func parseRequest(fields []mtField) (*MTDocument, error) {
	doc := &MTDocument{Type: MT920}
	var violations []Violation

	for _, f := range fields {
		value := strings.TrimSpace(f.Value())
		switch f.Tag {
		case "20":
			doc.SendersReference = value
		case "12":
			doc.RequestedMessageType = value
		case "25":
			doc.AccountID = value
		case "34F":
			bal, err := parse34F(value)
			if err != nil {
				violations = append(violations, asCodecError(err).Violations()...)
				continue
			}
			doc.FloorLimit = &bal
		}
	}

	if doc.SendersReference == "" {
		violations = append(violations, Violation{Kind: KindTruncatedMessage, Reason: "missing mandatory field 20"})
	}
	if len(violations) > 0 {
		return nil, &CodecError{violations: violations}
	}
	return doc, nil
}
