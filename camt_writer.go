package bankfmt

import (
	"bytes"
	"strconv"

	"github.com/beevik/etree"
)

// camtNamespace returns the fixed ISO 20022 namespace for a CAMT type.
func camtNamespace(t CAMTType) string {
	const base = "urn:iso:std:iso:20022:tech:xsd:"
	switch t {
	case CAMT052:
		return base + "camt.052.001.08"
	case CAMT053:
		return base + "camt.053.001.08"
	case CAMT054:
		return base + "camt.054.001.08"
	}
	return ""
}

func camtRootElement(t CAMTType) string {
	switch t {
	case CAMT052:
		return "BkToCstmrAcctRpt"
	case CAMT053:
		return "BkToCstmrStmt"
	case CAMT054:
		return "BkToCstmrDbtCdtNtfctn"
	}
	return ""
}

func camtReportElement(t CAMTType) string {
	switch t {
	case CAMT052:
		return "Rpt"
	case CAMT053:
		return "Stmt"
	case CAMT054:
		return "Ntfctn"
	}
	return ""
}

// EncodeCAMT renders a CAMTDocument to ISO 20022 XML, one mechanical tree
// walk over the entity model with no further design content beyond the
// schema mapping in spec.md §6.1 (the XML DOM building itself is an
// out-of-scope concern per spec.md §1; this walk only supplies the field
// values).
func EncodeCAMT(doc *CAMTDocument) ([]byte, error) {
	xdoc := etree.NewDocument()
	xdoc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := xdoc.CreateElement("Document")
	root.CreateAttr("xmlns", camtNamespace(doc.Type))

	wrapper := root.CreateElement(camtRootElement(doc.Type))
	grpHdr := wrapper.CreateElement("GrpHdr")
	grpHdr.CreateElement("MsgId").SetText(doc.MessageID)
	grpHdr.CreateElement("CreDtTm").SetText(doc.CreationTimestamp.Format("2006-01-02T15:04:05"))

	rpt := wrapper.CreateElement(camtReportElement(doc.Type))
	rpt.CreateElement("Id").SetText(doc.ID)
	if doc.SequenceNumber > 0 {
		rpt.CreateElement("ElctrncSeqNb").SetText(strconv.Itoa(doc.SequenceNumber))
	}
	rpt.CreateElement("CreDtTm").SetText(doc.CreationTimestamp.Format("2006-01-02T15:04:05"))

	acct := rpt.CreateElement("Acct")
	acct.CreateElement("Id").CreateElement("Othr").CreateElement("Id").SetText(doc.AccountID)
	if doc.Currency != "" {
		acct.CreateElement("Ccy").SetText(doc.Currency)
	}
	if doc.AccountOwner != "" {
		acct.CreateElement("Ownr").CreateElement("Nm").SetText(doc.AccountOwner)
	}
	if doc.ServicerBIC != "" {
		acct.CreateElement("Svcr").CreateElement("FinInstnId").CreateElement("BICFI").SetText(doc.ServicerBIC)
	}

	writeCAMTBalance(rpt, doc.OpeningBalance, "PRCD")
	writeCAMTBalance(rpt, doc.ClosingBalance, "CLBD")
	writeCAMTBalance(rpt, doc.ClosingAvailableBalance, "CLAV")

	for _, e := range doc.Entries {
		writeCAMTEntry(rpt, e)
	}

	xdoc.Indent(2)
	var buf bytes.Buffer
	if _, err := xdoc.WriteTo(&buf); err != nil {
		return nil, NewCodecError(Violation{Kind: KindUnexpectedField, Reason: "failed to serialize CAMT XML: " + err.Error()})
	}
	return buf.Bytes(), nil
}

func writeCAMTBalance(parent *etree.Element, bal *Balance, code string) {
	if bal == nil {
		return
	}
	b := parent.CreateElement("Bal")
	tp := b.CreateElement("Tp").CreateElement("CdOrPrtry")
	tp.CreateElement("Cd").SetText(code)
	amt := b.CreateElement("Amt")
	amt.CreateAttr("Ccy", bal.Currency)
	amt.SetText(FormatXMLAmount(bal.Amount))
	cdtDbtInd := "CRDT"
	if bal.Direction == Debit {
		cdtDbtInd = "DBIT"
	}
	b.CreateElement("CdtDbtInd").SetText(cdtDbtInd)
	b.CreateElement("Dt").CreateElement("Dt").SetText(bal.Date.Format("2006-01-02"))
}

func writeCAMTEntry(parent *etree.Element, e CAMTEntry) {
	ntry := parent.CreateElement("Ntry")
	amt := ntry.CreateElement("Amt")
	amt.CreateAttr("Ccy", e.Currency)
	amt.SetText(FormatXMLAmount(e.Amount))
	cdtDbtInd := "CRDT"
	if e.Direction == Debit {
		cdtDbtInd = "DBIT"
	}
	ntry.CreateElement("CdtDbtInd").SetText(cdtDbtInd)
	ntry.CreateElement("Sts").CreateElement("Cd").SetText(e.Status.String())
	ntry.CreateElement("BookgDt").CreateElement("Dt").SetText(e.BookingDate.Format("2006-01-02"))
	ntry.CreateElement("ValDt").CreateElement("Dt").SetText(e.ValueDate.Format("2006-01-02"))
	if e.Reversal {
		ntry.CreateElement("RvslInd").SetText("true")
	}
	if e.TransactionCode != "" {
		ntry.CreateElement("BkTxCd").CreateElement("Prtry").CreateElement("Cd").SetText(e.TransactionCode)
	}

	dtls := ntry.CreateElement("NtryDtls").CreateElement("TxDtls")
	refs := dtls.CreateElement("Refs")
	if e.EndToEndID != "" {
		refs.CreateElement("EndToEndId").SetText(e.EndToEndID)
	}
	if e.MandateID != "" {
		refs.CreateElement("MndtId").SetText(e.MandateID)
	}
	if e.InstructionID != "" {
		refs.CreateElement("InstrId").SetText(e.InstructionID)
	}
	if e.EntryReference != "" {
		refs.CreateElement("AcctSvcrRef").SetText(e.EntryReference)
	}

	if e.CounterpartyName != "" || e.CounterpartyIBAN != "" || e.CounterpartyBIC != "" {
		rltdPties := dtls.CreateElement("RltdPties")
		party := "Cdtr"
		if e.Direction == Debit {
			party = "Dbtr"
		}
		if e.CounterpartyName != "" {
			rltdPties.CreateElement(party).CreateElement("Nm").SetText(e.CounterpartyName)
		}
		if e.CounterpartyIBAN != "" {
			acctElem := party + "Acct"
			rltdPties.CreateElement(acctElem).CreateElement("Id").CreateElement("IBAN").SetText(e.CounterpartyIBAN)
		}
		if e.CounterpartyBIC != "" {
			agtElem := party + "Agt"
			rltdPties.CreateElement(agtElem).CreateElement("FinInstnId").CreateElement("BICFI").SetText(e.CounterpartyBIC)
		}
	}
	if e.CreditorID != "" {
		dtls.CreateElement("RltdPties").CreateElement("CdtrId").SetText(e.CreditorID)
	}
	if e.Purpose != "" {
		dtls.CreateElement("RmtInf").CreateElement("Ustrd").SetText(e.Purpose)
	}
}
