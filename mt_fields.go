package bankfmt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// parseDateYYMMDD decodes the 6-digit date form used throughout MT (field
// 32A, 60F, 61, ...).
func parseDateYYMMDD(s string) (time.Time, error) {
	if len(s) != 6 {
		return time.Time{}, &CodecError{violations: []Violation{{Kind: KindMalformedDate, Reason: fmt.Sprintf("date %q is not 6 digits", s)}}}
	}
	t, err := time.Parse("060102", s)
	if err != nil {
		return time.Time{}, &CodecError{violations: []Violation{{Kind: KindMalformedDate, Reason: fmt.Sprintf("invalid date %q: %v", s, err)}}}
	}
	return t, nil
}

// formatDateYYMMDD encodes a date into the 6-digit MT form.
func formatDateYYMMDD(t time.Time) string {
	return t.Format("060102")
}

// parseDateMMDD decodes the 4-digit booking-date continuation used in field
// 61, taking its year from the sibling value date.
func parseDateMMDD(s string, year int) (time.Time, error) {
	if len(s) != 4 {
		return time.Time{}, &CodecError{violations: []Violation{{Kind: KindMalformedDate, Reason: fmt.Sprintf("booking date %q is not 4 digits", s)}}}
	}
	t, err := time.Parse("0102", s)
	if err != nil {
		return time.Time{}, &CodecError{violations: []Violation{{Kind: KindMalformedDate, Reason: fmt.Sprintf("invalid booking date %q: %v", s, err)}}}
	}
	return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// formatDateMMDD encodes a date into the 4-digit MMDD continuation form.
func formatDateMMDD(t time.Time) string {
	return t.Format("0102")
}

var balanceFieldRE = regexp.MustCompile(`^(C|D)(\d{6})([A-Z]{3})([0-9,]+)$`)

// parseBalanceField decodes a 60F/60M/62F/62M/64/65-style field:
// D|C YYMMDD CCC amount.
func parseBalanceField(raw string, typ BalanceType) (Balance, error) {
	m := balanceFieldRE.FindStringSubmatch(raw)
	if m == nil {
		return Balance{}, &CodecError{violations: []Violation{{Kind: KindMalformedTag, Reason: fmt.Sprintf("malformed balance field %q", raw)}}}
	}
	dir := Credit
	if m[1] == "D" {
		dir = Debit
	}
	date, err := parseDateYYMMDD(m[2])
	if err != nil {
		return Balance{}, err
	}
	amount, err := ParseMTAmount(m[4])
	if err != nil {
		return Balance{}, err
	}
	return Balance{Direction: dir, Date: date, Currency: m[3], Amount: amount, Type: typ}, nil
}

// formatBalanceField encodes a Balance back into D|C YYMMDD CCC amount form.
func formatBalanceField(b Balance) string {
	return fmt.Sprintf("%c%s%s%s", b.Direction.MTChar(), formatDateYYMMDD(b.Date), b.Currency, FormatMTAmount(b.Amount))
}

var field32ARE = regexp.MustCompile(`^(\d{6})([A-Z]{3})([0-9,]+)$`)

// parse32A decodes value date + currency + amount (field 32A).
func parse32A(raw string) (time.Time, string, decimal.Decimal, error) {
	m := field32ARE.FindStringSubmatch(raw)
	if m == nil {
		return time.Time{}, "", decimal.Zero, &CodecError{violations: []Violation{{Kind: KindMalformedTag, Reason: fmt.Sprintf("malformed field 32A %q", raw)}}}
	}
	date, err := parseDateYYMMDD(m[1])
	if err != nil {
		return time.Time{}, "", decimal.Zero, err
	}
	amount, err := ParseMTAmount(m[3])
	if err != nil {
		return time.Time{}, "", decimal.Zero, err
	}
	return date, m[2], amount, nil
}

// format32A encodes value date + currency + amount back to field 32A form.
func format32A(date time.Time, currency string, amount decimal.Decimal) string {
	return formatDateYYMMDD(date) + currency + FormatMTAmount(amount)
}

var field34FRE = regexp.MustCompile(`^([A-Z]{3})(D|C)?([0-9,]+)$`)

// parse34F decodes a floor-limit field: CCC[D|C]NNN,NN.
func parse34F(raw string) (Balance, error) {
	m := field34FRE.FindStringSubmatch(raw)
	if m == nil {
		return Balance{}, &CodecError{violations: []Violation{{Kind: KindMalformedTag, Reason: fmt.Sprintf("malformed field 34F %q", raw)}}}
	}
	dir := Credit
	if m[2] == "D" {
		dir = Debit
	}
	amount, err := ParseMTAmount(m[3])
	if err != nil {
		return Balance{}, err
	}
	return Balance{Direction: dir, Currency: m[1], Amount: amount, Type: BalanceTypeNone}, nil
}

// format34F encodes a floor-limit balance back to CCC[D|C]NNN,NN form.
func format34F(b Balance) string {
	dirChar := ""
	if b.Direction == Debit {
		dirChar = "D"
	}
	return b.Currency + dirChar + FormatMTAmount(b.Amount)
}

// parseParty decodes the free-form 50/50A/50K/59/59A ordering-customer and
// beneficiary forms: a slash-prefixed account line, a BIC-only line, or a
// name followed by up to four address lines (spec.md §4.1).
func parseParty(lines []string) Party {
	var p Party
	rest := lines
	if len(rest) > 0 && strings.HasPrefix(rest[0], "/") {
		p.Account = strings.TrimPrefix(rest[0], "/")
		rest = rest[1:]
	} else if len(rest) > 0 && looksLikeBIC(rest[0]) {
		p.BIC = rest[0]
		rest = rest[1:]
		if len(rest) > 0 && strings.HasPrefix(rest[0], "/") {
			p.Account = strings.TrimPrefix(rest[0], "/")
			rest = rest[1:]
		}
	}
	if len(rest) > 0 {
		p.Name = rest[0]
		rest = rest[1:]
	}
	for i := 0; i < len(rest) && i < 4; i++ {
		p.Address[i] = rest[i]
	}
	return p
}

// formatParty encodes a Party back into the MT free-form lines.
func formatParty(p Party) []string {
	var lines []string
	if p.BIC != "" {
		lines = append(lines, p.BIC)
		if p.Account != "" {
			lines = append(lines, "/"+p.Account)
		}
	} else if p.Account != "" {
		lines = append(lines, "/"+p.Account)
	}
	if p.Name != "" {
		lines = append(lines, p.Name)
	}
	for _, a := range p.Address {
		if a != "" {
			lines = append(lines, a)
		}
	}
	return lines
}

var field61RE = regexp.MustCompile(`^(\d{6})(\d{4})?(RC|RD|C|D)([A-Z])?([0-9,]+)([A-Z]{4})([^/]{0,16})(?://(.{0,16}))?$`)

// parse61 decodes an MT field 61 statement line, per spec.md §4.1.
func parse61(raw string) (MTTransaction, error) {
	m := field61RE.FindStringSubmatch(raw)
	if m == nil {
		return MTTransaction{}, &CodecError{violations: []Violation{{Kind: KindMalformedTag, Reason: fmt.Sprintf("malformed field 61 %q", raw)}}}
	}
	valueDate, err := parseDateYYMMDD(m[1])
	if err != nil {
		return MTTransaction{}, err
	}
	bookingDate := valueDate
	if m[2] != "" {
		bookingDate, err = parseDateMMDD(m[2], valueDate.Year())
		if err != nil {
			return MTTransaction{}, err
		}
	}
	dir, ok := DirectionFromMTChar(m[3])
	if !ok {
		return MTTransaction{}, &CodecError{violations: []Violation{{Kind: KindMalformedTag, Reason: fmt.Sprintf("unknown direction marker %q", m[3])}}}
	}
	amount, err := ParseMTAmount(m[5])
	if err != nil {
		return MTTransaction{}, err
	}
	return MTTransaction{
		BookingDate:         bookingDate,
		ValueDate:           valueDate,
		Direction:           dir,
		Amount:              amount,
		TransactionTypeCode: m[6],
		Reference:           Reference{Code: "", Value: strings.TrimRight(m[7], " ")},
		BankReference:       m[8],
	}, nil
}

// format61 encodes a transaction back into field 61 form.
func format61(t MTTransaction) string {
	var b strings.Builder
	b.WriteString(formatDateYYMMDD(t.ValueDate))
	if !t.BookingDate.IsZero() && (t.BookingDate.Month() != t.ValueDate.Month() || t.BookingDate.Day() != t.ValueDate.Day()) {
		b.WriteString(formatDateMMDD(t.BookingDate))
	}
	b.WriteByte(t.Direction.MTChar())
	b.WriteString(FormatMTAmount(t.Amount))
	typeCode := t.TransactionTypeCode
	if typeCode == "" {
		typeCode = "NTRF"
	} else if len(typeCode) == 3 {
		typeCode = "N" + typeCode
	}
	b.WriteString(typeCode)
	b.WriteString(t.Reference.Value)
	if t.BankReference != "" {
		b.WriteString("//")
		b.WriteString(t.BankReference)
	}
	return b.String()
}

var sepaTagStartRE = regexp.MustCompile(`\?([0-9]{2})`)

// decode86 concatenates tag-86 continuation lines (without delimiters, per
// spec.md §4.1) and, if DATEV ?nn subfield markers are present, splits them
// into purpose and counterparty slots.
func decode86(lines []string) (purpose, cpBIC, cpAccount, cpName string) {
	joined := strings.Join(lines, "")
	if !strings.Contains(joined, "?2") && !strings.Contains(joined, "?3") {
		return joined, "", "", ""
	}

	locs := sepaTagStartRE.FindAllStringSubmatchIndex(joined, -1)
	if len(locs) == 0 {
		return joined, "", "", ""
	}
	slots := map[string]string{}
	for i, loc := range locs {
		tag := joined[loc[2]:loc[3]]
		start := loc[1]
		end := len(joined)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		slots[tag] = joined[start:end]
	}
	var purposeBuf strings.Builder
	for n := 20; n <= 29; n++ {
		if v, ok := slots[strconv.Itoa(n)]; ok {
			purposeBuf.WriteString(v)
		}
	}
	return purposeBuf.String(), slots["30"], slots["31"], slots["32"] + slots["33"]
}

// encode86 renders the purpose (and, in the DATEV dialect, counterparty
// BIC/account/name) back into tag-86 lines, wrapping at 65 characters per
// spec.md §4.1/§6.1.
func encode86(purpose, cpBIC, cpAccount, cpName string, dialect Dialect) []string {
	var text string
	if dialect == DialectDATEV {
		var b strings.Builder
		wrapSubfield(&b, "20", purpose)
		if cpBIC != "" {
			b.WriteString("?30")
			b.WriteString(cpBIC)
		}
		if cpAccount != "" {
			b.WriteString("?31")
			b.WriteString(cpAccount)
		}
		if cpName != "" {
			b.WriteString("?32")
			b.WriteString(cpName)
		}
		text = b.String()
	} else {
		text = purpose
	}
	return wrapLines(text, 65)
}

// wrapSubfield writes purpose into successive ?20.."?29 slots of at most 27
// characters each, as DATEV-dialect tag 86 encoding requires.
func wrapSubfield(b *strings.Builder, startTag string, text string) {
	start, _ := strconv.Atoi(startTag)
	for i := 0; text != ""; i++ {
		tag := start + i
		if tag > 29 {
			break
		}
		chunkLen := 27
		if chunkLen > len(text) {
			chunkLen = len(text)
		}
		b.WriteString(fmt.Sprintf("?%d", tag))
		b.WriteString(text[:chunkLen])
		text = text[chunkLen:]
	}
}

// wrapLines greedily wraps s into lines of at most width characters without
// splitting words where possible.
func wrapLines(s string, width int) []string {
	if s == "" {
		return nil
	}
	var lines []string
	for len(s) > width {
		cut := width
		if idx := strings.LastIndex(s[:width], " "); idx > 0 {
			cut = idx
		}
		lines = append(lines, strings.TrimRight(s[:cut], " "))
		s = strings.TrimLeft(s[cut:], " ")
	}
	if s != "" {
		lines = append(lines, s)
	}
	return lines
}
