package bankfmt

import (
	"bytes"
	"strconv"

	"github.com/beevik/etree"
)

// EncodeXMLPain renders a PainDocument to namespaced ISO 20022 XML (spec.md
// §6.1). Number-of-transactions and control-sum are recomputed from the
// transactions on a copy of doc before writing, so any pre-set value is
// ignored and doc itself is left unchanged.
func EncodeXMLPain(doc *PainDocument) ([]byte, error) {
	recomputed := *doc
	recomputed.PaymentInstructions = append([]PainPaymentInstruction(nil), doc.PaymentInstructions...)
	recomputed.RecomputeTotals()
	doc = &recomputed

	xdoc := etree.NewDocument()
	xdoc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := xdoc.CreateElement("Document")
	root.CreateAttr("xmlns", doc.Type.Namespace())

	wrapper := root.CreateElement(doc.Type.RootElement())
	grpHdr := wrapper.CreateElement("GrpHdr")
	grpHdr.CreateElement("MsgId").SetText(doc.MessageID)
	grpHdr.CreateElement("CreDtTm").SetText(doc.CreationTimestamp.Format("2006-01-02T15:04:05"))

	if doc.Type.IsMandateLifecycle() {
		writePainMandate(wrapper, doc, grpHdr)
	} else {
		writePainBatch(wrapper, doc, grpHdr)
	}

	xdoc.Indent(2)
	var buf bytes.Buffer
	if _, err := xdoc.WriteTo(&buf); err != nil {
		return nil, NewCodecError(Violation{Kind: KindUnexpectedField, Reason: "failed to serialize pain XML: " + err.Error()})
	}
	return buf.Bytes(), nil
}

func writePainBatch(wrapper *etree.Element, doc *PainDocument, grpHdr *etree.Element) {
	grpHdr.CreateElement("NbOfTxs").SetText(strconv.Itoa(doc.NumberOfTransactions))
	grpHdr.CreateElement("CtrlSum").SetText(FormatXMLAmount(doc.ControlSum))
	if doc.InitiatingParty.Name != "" {
		grpHdr.CreateElement("InitgPty").CreateElement("Nm").SetText(doc.InitiatingParty.Name)
	}

	for _, instr := range doc.PaymentInstructions {
		pi := wrapper.CreateElement("PmtInf")
		pi.CreateElement("PmtInfId").SetText(instr.InstructionID)
		pi.CreateElement("PmtMtd").SetText(instr.PaymentMethod)
		pi.CreateElement("NbOfTxs").SetText(strconv.Itoa(instr.NumberOfTransactions))
		pi.CreateElement("CtrlSum").SetText(FormatXMLAmount(instr.ControlSum))
		if !instr.RequestedExecutionDate.IsZero() {
			pi.CreateElement("ReqdExctnDt").SetText(instr.RequestedExecutionDate.Format("2006-01-02"))
		}
		dbtr := pi.CreateElement("Dbtr")
		if instr.Debtor.Name != "" {
			dbtr.CreateElement("Nm").SetText(instr.Debtor.Name)
		}
		if instr.DebtorAccount != "" {
			pi.CreateElement("DbtrAcct").CreateElement("Id").CreateElement("IBAN").SetText(instr.DebtorAccount)
		}
		if instr.DebtorAgent != "" {
			pi.CreateElement("DbtrAgt").CreateElement("FinInstnId").CreateElement("BICFI").SetText(instr.DebtorAgent)
		}

		txInfElement := "CdtTrfTxInf"
		if instr.PaymentMethod == "DD" {
			txInfElement = "DrctDbtTxInf"
		}
		for _, tx := range instr.Transactions {
			txInf := pi.CreateElement(txInfElement)
			pmtId := txInf.CreateElement("PmtId")
			if tx.EndToEndID != "" {
				pmtId.CreateElement("EndToEndId").SetText(tx.EndToEndID)
			}
			amt := txInf.CreateElement("Amt").CreateElement("InstdAmt")
			amt.CreateAttr("Ccy", tx.Currency)
			amt.SetText(FormatXMLAmount(tx.Amount))
			if tx.CreditorAgent != "" {
				txInf.CreateElement("CdtrAgt").CreateElement("FinInstnId").CreateElement("BICFI").SetText(tx.CreditorAgent)
			}
			cdtr := txInf.CreateElement("Cdtr")
			if tx.Creditor.Name != "" {
				cdtr.CreateElement("Nm").SetText(tx.Creditor.Name)
			}
			if tx.CreditorAccount != "" {
				txInf.CreateElement("CdtrAcct").CreateElement("Id").CreateElement("IBAN").SetText(tx.CreditorAccount)
			}
			if tx.MandateID != "" {
				mndtRltdInf := txInf.CreateElement("DrctDbtTx").CreateElement("MndtRltdInf")
				mndtRltdInf.CreateElement("MndtId").SetText(tx.MandateID)
				if !tx.MandateSignatureDate.IsZero() {
					mndtRltdInf.CreateElement("DtOfSgntr").SetText(tx.MandateSignatureDate.Format("2006-01-02"))
				}
			}
			if tx.RemittanceInfo != "" {
				txInf.CreateElement("RmtInf").CreateElement("Ustrd").SetText(tx.RemittanceInfo)
			}
		}
	}
}

func writePainMandate(wrapper *etree.Element, doc *PainDocument, grpHdr *etree.Element) {
	grpHdr.CreateElement("NbOfTxs").SetText("1")
	m := doc.Mandate
	if m == nil {
		return
	}
	mndtReq := wrapper.CreateElement("UndrlygMsg")
	mndtId := mndtReq.CreateElement("MndtId")
	mndtId.SetText(m.MandateID)
	if !m.CreationDate.IsZero() {
		mndtReq.CreateElement("MndtReqdColltnDt").SetText(m.CreationDate.Format("2006-01-02"))
	}
	dbtr := mndtReq.CreateElement("Dbtr")
	if m.Debtor.Name != "" {
		dbtr.CreateElement("Nm").SetText(m.Debtor.Name)
	}
	if m.DebtorAccount != "" {
		mndtReq.CreateElement("DbtrAcct").CreateElement("Id").CreateElement("IBAN").SetText(m.DebtorAccount)
	}
	if m.DebtorAgent != "" {
		mndtReq.CreateElement("DbtrAgt").CreateElement("FinInstnId").CreateElement("BICFI").SetText(m.DebtorAgent)
	}
	cdtr := mndtReq.CreateElement("Cdtr")
	if m.Creditor.Name != "" {
		cdtr.CreateElement("Nm").SetText(m.Creditor.Name)
	}
	if m.CreditorAccount != "" {
		mndtReq.CreateElement("CdtrAcct").CreateElement("Id").CreateElement("IBAN").SetText(m.CreditorAccount)
	}
	if m.CreditorAgent != "" {
		mndtReq.CreateElement("CdtrAgt").CreateElement("FinInstnId").CreateElement("BICFI").SetText(m.CreditorAgent)
	}
	if !m.Amount.IsZero() {
		amt := mndtReq.CreateElement("MaxAmt")
		amt.CreateAttr("Ccy", m.Currency)
		amt.SetText(FormatXMLAmount(m.Amount))
	}
	if m.FrequencyType != "" {
		mndtReq.CreateElement("Frqcy").CreateElement("Cd").SetText(m.FrequencyType)
	}
	if m.Reason != "" {
		mndtReq.CreateElement("Rsn").CreateElement("Cd").SetText(m.Reason)
	}
}
