package bankfmt

import (
	"strconv"
	"strings"
	"time"

	"github.com/speedata/paymentformats/pkg/datevfields"
)

const datevBuchungsstapelCode = 21

// datevSachverhaltTable maps the 3-letter MT940 business-transaction code
// (field 61's transaction type without its leading "N") to DATEV's
// single/double-digit "Sachverhalt" situation code. Codes with no DATEV
// equivalent export as "0", which imports back as "TRF"; a Sachverhalt
// outside this table imports as "NTRF" (spec.md §4.4: "transaction code
// truncation/defaulting").
var datevSachverhaltTable = map[string]string{
	"TRF": "0",
	"TRA": "0",
	"CHK": "1",
	"BOE": "2",
	"DCR": "3",
	"LCR": "4",
	"MSC": "5",
	"CHG": "6",
	"INT": "7",
	"DIV": "8",
	"RTI": "9",
}

var mtCodeFromSachverhalt = func() map[string]string {
	out := make(map[string]string, len(datevSachverhaltTable))
	for mt, sv := range datevSachverhaltTable {
		if _, exists := out[sv]; !exists {
			out[sv] = mt
		}
	}
	out["0"] = "TRF"
	return out
}()

// purposeSlotCount and purposeSlotWidth describe the 8 generic 27-character
// "Belegfeld" slots (Belegfeld16..23) this schema devotes to a DATEV-dialect
// purpose, mirroring the ?20..?27 SEPA subfield packing tag 86 uses on the
// SWIFT side (mt_fields.go's encode86/decode86) so purpose text survives a
// round trip through either dialect (spec.md §4.4).
const (
	purposeSlotCount = 8
	purposeSlotWidth = 27
)

func purposeSlotColumnNames() []string {
	names := make([]string, purposeSlotCount)
	for i := range names {
		names[i] = "Belegfeld" + strconv.Itoa(16+i)
	}
	return names
}

func splitIntoSlots(s string, count, width int) []string {
	slots := make([]string, count)
	for i := range slots {
		start := i * width
		if start >= len(s) {
			break
		}
		end := start + width
		if end > len(s) {
			end = len(s)
		}
		slots[i] = s[start:end]
	}
	return slots
}

func joinSlots(slots []string) string {
	return strings.TrimRight(strings.Join(slots, ""), " ")
}

// blzFromIBAN extracts the 8-digit Bankleitzahl from a German IBAN
// (DEkk BBBBBBBB ...). Non-German IBANs yield "".
func blzFromIBAN(iban string) string {
	if len(iban) < 12 || !strings.HasPrefix(iban, "DE") {
		return ""
	}
	return iban[4:12]
}

// kontoFromIBAN extracts the account-number tail of a German IBAN following
// its 8-digit Bankleitzahl.
func kontoFromIBAN(iban string) string {
	if len(iban) < 12 || !strings.HasPrefix(iban, "DE") {
		return iban
	}
	return iban[12:]
}

// ConvertMT940ToDATEV projects a statement's transaction list onto a
// Buchungsstapel (category 21) DATEV document, one row per transaction
// (spec.md §4.4). ownAccount/counterAccountDefault are DATEV g/l account
// numbers; the statement carries no DATEV chart-of-accounts mapping of its
// own, so a counterparty row with no resolvable account falls back to
// counterAccountDefault.
func ConvertMT940ToDATEV(src *MTDocument, ownAccount, counterAccountDefault int, createdAt time.Time) (*DATEVDocument, error) {
	if !src.Type.IsStatement() {
		return nil, NewCodecError(Violation{Kind: KindUnexpectedField, Reason: "source document is not a statement message"})
	}
	idx := func(name string) int { return datevfields.ColumnIndex(datevBuchungsstapelCode, name) }
	slotNames := purposeSlotColumnNames()

	builder := NewDATEVDocumentBuilder(DATEVBuchungsstapel).
		CreatedAt(createdAt).
		Currency(src.OpeningBalance.Currency).
		Description(src.StatementNumber)

	for _, tx := range src.Transactions {
		row := NewDATEVRow(DATEVBuchungsstapel)
		row[idx("Umsatz")] = FormatMTAmount(tx.Amount)
		row[idx("SollHabenKennzeichen")] = sollHabenFromDirection(tx.Direction)
		row[idx("WKZUmsatz")] = tx.Currency
		row[idx("Konto")] = strconv.Itoa(ownAccount)
		row[idx("Belegdatum")] = tx.ValueDate.Format("0201")
		row[idx("Belegfeld1")] = truncate(tx.Reference.Value, 36)
		row[idx("Buchungstext")] = truncate(tx.Purpose, 60)
		row[idx("Sachverhalt")] = datevSachverhaltFor(tx.TransactionTypeCode)

		refs := ExtractSEPATags(tx.Purpose)
		purpose := tx.Purpose
		if refs.StructuredPurpose != "" {
			purpose = refs.StructuredPurpose
		}
		for i, slot := range splitIntoSlots(purpose, purposeSlotCount, purposeSlotWidth) {
			row[idx(slotNames[i])] = slot
		}

		counterAccount := counterAccountDefault
		if iban, ok := ExtractIBAN(tx.Purpose); ok {
			row[idx("IBAN")] = iban
			row[idx("BLZGeschaeftspartner")] = blzFromIBAN(iban)
			row[idx("KontonummerGeschaeftspartner")] = kontoFromIBAN(iban)
			if n, err := strconv.Atoi(kontoFromIBAN(iban)); err == nil && n != 0 {
				counterAccount = n
			}
		}
		if bic, ok := ExtractBIC(tx.Purpose); ok {
			row[idx("SWIFTCode")] = bic
		}
		row[idx("Gegenkonto")] = strconv.Itoa(counterAccount)

		builder = builder.Row(row)
	}
	return builder.Build()
}

// ConvertDATEVToMT940 reverses ConvertMT940ToDATEV: it rebuilds an MT940
// statement's transaction list from a Buchungsstapel document's rows.
// referenceYear supplies the year DATEV's day/month-only Belegdatum lacks;
// openingBalance/accountID/statementNumber are not recoverable from the
// DATEV rows and must be supplied by the caller (spec.md §4.4: DATEV carries
// no running balance, only movements).
func ConvertDATEVToMT940(doc *DATEVDocument, accountID, statementNumber string, openingBalance Balance, referenceYear int) (*MTDocument, error) {
	if doc.Category != DATEVBuchungsstapel {
		return nil, NewCodecError(Violation{Kind: KindUnexpectedField, Reason: "source document is not a Buchungsstapel (category 21) document"})
	}
	idx := func(name string) int { return datevfields.ColumnIndex(datevBuchungsstapelCode, name) }
	slotNames := purposeSlotColumnNames()

	out := MTDocument{
		Type:             MT940,
		SendersReference: SynthesizeDATEVReference(statementNumber, openingBalance.Date),
		AccountID:        accountID,
		StatementNumber:  statementNumber,
		OpeningBalance:   openingBalance,
		Dialect:          DialectDATEV,
	}
	for i, row := range doc.Rows {
		if len(row) != DATEVBuchungsstapel.FieldCount() {
			return nil, NewCodecError(Violation{Kind: KindFieldInvalid, Reason: "row width mismatch", Position: i + 3})
		}
		amount, err := ParseMTAmount(row[idx("Umsatz")])
		if err != nil {
			return nil, err
		}
		dir := directionFromSollHaben(row[idx("SollHabenKennzeichen")])
		valueDate, err := parseDATEVBelegdatum(row[idx("Belegdatum")], referenceYear)
		if err != nil {
			return nil, err
		}

		var slots []string
		for _, name := range slotNames {
			slots = append(slots, row[idx(name)])
		}
		purpose := joinSlots(slots)
		if purpose == "" {
			purpose = row[idx("Buchungstext")]
		}

		tx := MTTransaction{
			BookingDate:         valueDate,
			ValueDate:           valueDate,
			Direction:           dir,
			Amount:              amount,
			Currency:            row[idx("WKZUmsatz")],
			Reference:           Reference{Code: "TRF", Value: mtReferenceFromPayer(row[idx("BLZGeschaeftspartner")], row[idx("KontonummerGeschaeftspartner")])},
			Purpose:             purpose,
			TransactionTypeCode: mtCodeFromSachverhaltFor(row[idx("Sachverhalt")]),
		}
		out.Transactions = append(out.Transactions, tx)
	}
	signed := openingBalance.Signed().Add(TransactionSum(out.Transactions))
	out.ClosingBalance = BalanceFromSigned(signed, openingBalance.Date, openingBalance.Currency, BalanceTypeFinal)
	return &out, nil
}

func sollHabenFromDirection(d Direction) string {
	if d == Credit {
		return "H"
	}
	return "S"
}

func directionFromSollHaben(s string) Direction {
	if s == "H" {
		return Credit
	}
	return Debit
}

func datevSachverhaltFor(mtCode string) string {
	if len(mtCode) == 4 && mtCode[0] == 'N' {
		mtCode = mtCode[1:]
	}
	if sv, ok := datevSachverhaltTable[mtCode]; ok {
		return sv
	}
	return "0"
}

func mtCodeFromSachverhaltFor(sv string) string {
	if mt, ok := mtCodeFromSachverhalt[sv]; ok {
		return mt
	}
	return "NTRF"
}

// mtReferenceFromPayer concatenates the counterparty BLZ and account into a
// reference value truncated to 12 characters, falling back to NoReference
// when neither is present (spec.md §4.4: "Payer BLZ + account concatenated
// (truncated to 12) used as MT reference; NONREF as fallback").
func mtReferenceFromPayer(blz, account string) string {
	combined := blz + account
	if combined == "" {
		return NoReference
	}
	return truncate(combined, 12)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// parseDATEVBelegdatum parses a 4-digit DDMM Belegdatum against the supplied
// reference year.
func parseDATEVBelegdatum(s string, year int) (time.Time, error) {
	if len(s) != 4 {
		return time.Time{}, NewCodecError(Violation{Kind: KindMalformedDate, Reason: "Belegdatum must be 4 digits (DDMM)", Field: "Belegdatum"})
	}
	day, err1 := strconv.Atoi(s[0:2])
	month, err2 := strconv.Atoi(s[2:4])
	if err1 != nil || err2 != nil {
		return time.Time{}, NewCodecError(Violation{Kind: KindMalformedDate, Reason: "Belegdatum is not numeric", Field: "Belegdatum"})
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}
