package bankfmt

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMTAmount decodes an MT/DATEV decimal token using a comma as the
// decimal separator (e.g. "1000,00"). It rejects tokens with more than one
// separator and negative literals: sign is never carried in the amount token
// (spec.md §4.1).
func ParseMTAmount(s string) (decimal.Decimal, error) {
	return parseAmount(s, ',')
}

// ParseXMLAmount decodes an ISO 20022 decimal token using a period as the
// decimal separator (e.g. "1000.00").
func ParseXMLAmount(s string) (decimal.Decimal, error) {
	return parseAmount(s, '.')
}

func parseAmount(s string, sep byte) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, &CodecError{violations: []Violation{{Kind: KindMalformedAmount, Reason: "empty amount"}}}
	}
	if strings.ContainsAny(s, "+-") {
		return decimal.Zero, &CodecError{violations: []Violation{{Kind: KindMalformedAmount, Reason: fmt.Sprintf("amount %q must not carry a sign", s)}}}
	}
	if strings.Count(s, string(sep)) > 1 {
		return decimal.Zero, &CodecError{violations: []Violation{{Kind: KindMalformedAmount, Reason: fmt.Sprintf("amount %q has more than one decimal separator", s)}}}
	}
	other := byte('.')
	if sep == '.' {
		other = ','
	}
	if strings.IndexByte(s, other) >= 0 {
		return decimal.Zero, &CodecError{violations: []Violation{{Kind: KindMalformedAmount, Reason: fmt.Sprintf("amount %q uses %q as its decimal separator, want %q", s, other, sep)}}}
	}
	normalized := s
	if sep == ',' {
		normalized = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, &CodecError{violations: []Violation{{Kind: KindMalformedAmount, Reason: fmt.Sprintf("invalid amount %q: %v", s, err)}}}
	}
	if d.IsNegative() {
		return decimal.Zero, &CodecError{violations: []Violation{{Kind: KindMalformedAmount, Reason: fmt.Sprintf("amount %q must not be negative", s)}}}
	}
	return d.Round(2), nil
}

// FormatMTAmount encodes a decimal using a comma separator and two decimal
// digits, as used throughout MT and DATEV (spec.md §3, §4.1, §4.2).
func FormatMTAmount(d decimal.Decimal) string {
	return strings.Replace(d.Round(2).StringFixed(2), ".", ",", 1)
}

// FormatXMLAmount encodes a decimal using a period separator and two decimal
// digits, as used in pain/CAMT XML (spec.md §6.1).
func FormatXMLAmount(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}
