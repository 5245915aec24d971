// Package datevfields holds the per-category DATEV ASCII column schema
// tables: name, display alias, length limit, validation pattern and
// quoting/required policy for each fixed-order column (spec.md §4.2, §6.2).
package datevfields

import (
	"fmt"
	"regexp"
)

// Column describes one fixed-position field in a DATEV data row.
type Column struct {
	Name        string // canonical field name
	DisplayName string // header-row alias; may diverge from Name (spec.md §4.2)
	MaxLen      int
	Pattern     *regexp.Regexp
	Required    bool
	// Quoted mirrors the DATEV convention that string-typed columns are
	// emitted wrapped in '"'; it is set explicitly for each column in the
	// tables below rather than inspected from Pattern (spec.md §4.2: "if the
	// validation regex begins with a quote, the field is emitted quoted").
	Quoted bool
}

var (
	decimalPattern = regexp.MustCompile(`^[0-9]+(,[0-9]{1,2})?$`)
	// positiveDecimalPattern additionally rejects an all-zero magnitude
	// ("0000000000,00"): spec.md §4.2 requires DATEV amounts to be positive
	// magnitudes, with the direction carried separately in
	// SollHabenKennzeichen, so a zero Umsatz is malformed, not merely empty.
	positiveDecimalPattern = regexp.MustCompile(`^(?:[0-9]*[1-9][0-9]*(?:,[0-9]{1,2})?|0+,[0-9]*[1-9][0-9]?)$`)
	datePattern            = regexp.MustCompile(`^[0-9]{4}$|^[0-9]{8}$`)
	sohaPattern            = regexp.MustCompile(`^[SH]$`)
	integerPattern         = regexp.MustCompile(`^[0-9]+$`)
	anyPattern             = regexp.MustCompile(`^.{0,}$`)
)

func col(name, display string, maxLen int, pattern *regexp.Regexp, required, quoted bool) Column {
	return Column{Name: name, DisplayName: display, MaxLen: maxLen, Pattern: pattern, Required: required, Quoted: quoted}
}

// filler pads a category out to its fixed column count with generic,
// optional, unvalidated string columns. The official DATEV field catalogue
// runs to hundreds of columns per category; only the columns this codec's
// MT/DATEV conversion actually populates (see convert_mt_datev.go) carry a
// named, validated schema, per DESIGN.md's scope decision.
func filler(n int, from int) []Column {
	cols := make([]Column, n)
	for i := range cols {
		name := fmt.Sprintf("Feld %d", from+i)
		cols[i] = col(name, name, 210, anyPattern, false, false)
	}
	return cols
}

// buchungsstapelColumns returns the 125-column schema for category 21
// (Buchungsstapel), the category exercised by MT940<->DATEV BankTransaction
// conversion (spec.md §4.4).
func buchungsstapelColumns() []Column {
	head := []Column{
		col("Umsatz", "Umsatz (ohne Soll/Haben-Kz)", 17, positiveDecimalPattern, true, false),
		col("SollHabenKennzeichen", "Soll/Haben-Kennzeichen", 1, sohaPattern, true, false),
		col("WKZUmsatz", "WKZ Umsatz", 3, regexp.MustCompile(`^[A-Z]{3}$`), false, false),
		col("Kurs", "Kurs", 11, decimalPattern, false, false),
		col("Basisumsatz", "Basisumsatz", 17, decimalPattern, false, false),
		col("WKZBasisumsatz", "WKZ Basisumsatz", 3, regexp.MustCompile(`^[A-Z]{3}$`), false, false),
		col("Konto", "Konto", 9, integerPattern, true, false),
		col("Gegenkonto", "Gegenkonto (ohne BU-Schlüssel)", 9, integerPattern, true, false),
		col("BUSchluessel", "BU-Schlüssel", 4, integerPattern, false, false),
		col("Belegdatum", "Belegdatum", 4, datePattern, true, false),
		col("Belegfeld1", "Belegfeld 1", 36, anyPattern, false, true),
		col("Belegfeld2", "Belegfeld 2", 12, anyPattern, false, true),
		col("Skonto", "Skonto", 17, decimalPattern, false, false),
		col("Buchungstext", "Buchungstext", 60, anyPattern, false, true),
		col("Postensperre", "Postensperre", 1, regexp.MustCompile(`^[01]?$`), false, false),
		col("Diverse1", "Diverse Adressnummer", 9, integerPattern, false, false),
		col("GeschaeftspartnerBank", "Geschäftspartnerbank", 2, integerPattern, false, false),
		col("Sachverhalt", "Sachverhalt", 2, integerPattern, false, false),
		col("Zinssperre", "Zinssperre", 1, regexp.MustCompile(`^[01]?$`), false, false),
		col("Buchungsreferenz", "Beleglink", 2, anyPattern, false, false),
		col("EUSteuerlandUStIDNr", "EU-Steuerland u. USt-IdNr.", 15, anyPattern, false, true),
		col("EUSteuersatz", "EU-Steuersatz", 11, decimalPattern, false, false),
		col("Belegfeld16", "Bankbezeichnung", 27, anyPattern, false, true), // DATEV-dialect purpose slot ?20
		col("Belegfeld17", "Bank-Kontonummer", 27, anyPattern, false, true), // slot ?21
		col("Belegfeld18", "Leerfeld", 27, anyPattern, false, true),        // slot ?22
		col("Belegfeld19", "Bankverb … Gültig von", 27, anyPattern, false, true),
		col("Belegfeld20", "Mandatsreferenz n", 27, anyPattern, false, true),
		col("Belegfeld21", "An/für Textschlüssel", 27, anyPattern, false, true),
		col("Belegfeld22", "Kontobeschriftung", 27, anyPattern, false, true),
		col("Belegfeld23", "SprachId", 27, anyPattern, false, true),
		col("KOST1", "KOST1 - Kostenstelle", 36, anyPattern, false, true),
		col("KOST2", "KOST2 - Kostenstelle", 36, anyPattern, false, true),
		col("KOSTMenge", "Kost-Menge", 11, decimalPattern, false, false),
		col("BezeichnungSoBil", "EU-Land u. UStID", 15, anyPattern, false, true),
		col("BUSchluessel2", "BU 49 Hauptfunktionstyp", 2, integerPattern, false, false),
		col("BLZGeschaeftspartner", "BLZ", 10, integerPattern, false, false),
		col("KontonummerGeschaeftspartner", "Kontonummer", 35, anyPattern, false, true),
		col("LandGeschaeftspartner", "Länderkennzeichen", 2, regexp.MustCompile(`^[A-Z]{0,2}$`), false, false),
		col("IBAN", "IBAN", 34, anyPattern, false, true),
		col("Leerfeld2", "Leerfeld", 15, anyPattern, false, false),
		col("SWIFTCode", "SWIFT-Code", 11, anyPattern, false, true),
		col("Abwbuchungsstapel", "Abw. Versionskennzeichen", 8, anyPattern, false, false),
	}
	return append(head, filler(125-len(head), len(head)+1)...)
}

func debitorenKreditorenColumns() []Column {
	head := []Column{
		col("Konto", "Konto", 9, integerPattern, true, false),
		col("Name", "Name (Adressattyp Unternehmen)", 50, anyPattern, true, true),
		col("Unternehmensgegenstand", "Unternehmensgegenstand", 50, anyPattern, false, true),
		col("Kurzbezeichnung", "Kurzbezeichnung", 15, anyPattern, false, true),
		col("IBAN", "IBAN", 34, anyPattern, false, true),
		col("SWIFTCode", "SWIFT-Code", 11, anyPattern, false, true),
	}
	return append(head, filler(254-len(head), len(head)+1)...)
}

func kontenbeschriftungenColumns() []Column {
	return []Column{
		col("Konto", "Konto", 9, integerPattern, true, false),
		col("Kontobeschriftung", "Kontobeschriftung", 40, anyPattern, true, true),
		col("SprachId", "SprachId", 5, anyPattern, false, true),
		col("Kontobeschriftung2", "Kontobeschriftung 2. Sprache", 40, anyPattern, false, true),
	}
}

func zahlungsbedingungenColumns() []Column {
	head := []Column{
		col("Nummer", "Nummer", 6, integerPattern, true, false),
		col("Bezeichnung", "Bezeichnung", 15, anyPattern, true, true),
		col("Skontotage1", "Skontotage 1", 3, integerPattern, false, false),
		col("SkontoProzent1", "Skonto 1 (in %)", 7, decimalPattern, false, false),
	}
	return append(head, filler(31-len(head), len(head)+1)...)
}

func diverseAdressenColumns() []Column {
	head := []Column{
		col("Adressnummer", "Adressnummer", 9, integerPattern, true, false),
		col("Name", "Name (Adressattyp Unternehmen)", 50, anyPattern, true, true),
		col("IBAN", "IBAN", 34, anyPattern, false, true),
		col("SWIFTCode", "SWIFT-Code", 11, anyPattern, false, true),
	}
	return append(head, filler(191-len(head), len(head)+1)...)
}

func wiederkehrendeBuchungenColumns() []Column {
	head := []Column{
		col("Umsatz", "Umsatz (ohne Soll/Haben-Kz)", 17, positiveDecimalPattern, true, false),
		col("SollHabenKennzeichen", "Soll/Haben-Kennzeichen", 1, sohaPattern, true, false),
		col("Konto", "Konto", 9, integerPattern, true, false),
		col("Gegenkonto", "Gegenkonto (ohne BU-Schlüssel)", 9, integerPattern, true, false),
		col("Turnus", "Turnus", 2, integerPattern, false, false),
		col("ErsteFaelligkeit", "Erste Fälligkeit", 8, datePattern, false, false),
	}
	return append(head, filler(101-len(head), len(head)+1)...)
}

func natuerlicheStapelColumns() []Column {
	return append([]Column{
		col("Konto", "Konto", 9, integerPattern, true, false),
		col("Name", "Name", 50, anyPattern, true, true),
	}, filler(15-2, 3)...)
}

// Columns returns the ordered column schema for a DATEV category code, or
// nil if the code is not one of {16,20,21,46,48,65,66}.
func Columns(categoryCode int) []Column {
	switch categoryCode {
	case 16:
		return debitorenKreditorenColumns()
	case 20:
		return kontenbeschriftungenColumns()
	case 21:
		return buchungsstapelColumns()
	case 46:
		return zahlungsbedingungenColumns()
	case 48:
		return diverseAdressenColumns()
	case 65:
		return wiederkehrendeBuchungenColumns()
	case 66:
		return natuerlicheStapelColumns()
	}
	return nil
}

// ColumnIndex returns the zero-based position of the named column within a
// category's schema, or -1 if no such column exists. Conversion code looks up
// positions by name rather than hard-coding offsets, so a schema edit here
// cannot silently desync a converter.
func ColumnIndex(categoryCode int, name string) int {
	for i, c := range Columns(categoryCode) {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// HeaderNames returns the field-header row display names, in column order.
func HeaderNames(categoryCode int) []string {
	cols := Columns(categoryCode)
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.DisplayName
	}
	return names
}
