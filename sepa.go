package bankfmt

import (
	"math/big"
	"regexp"
	"strings"
)

// SEPARefs holds the structured references a free-text purpose string may
// carry, per spec.md §4.5.
type SEPARefs struct {
	EndToEndID       string
	MandateID        string
	CreditorID       string
	InstructionID    string
	StructuredPurpose string
}

var sepaTagRE = regexp.MustCompile(`([A-Z]{4})\+`)

// ExtractSEPATags scans purpose for EREF+/MREF+/CRED+/KREF+/SVWZ+ tokens. The
// scan is a single linear pass recognizing [A-Z]{4}+ tokens (spec.md §9:
// "a small scanner, not a regex per field"); each tag's value runs until the
// next recognized tag or the end of the string. Missing tags yield the zero
// value for that slot (spec.md §4.5).
func ExtractSEPATags(purpose string) SEPARefs {
	locs := sepaTagRE.FindAllStringSubmatchIndex(purpose, -1)
	var refs SEPARefs
	for i, loc := range locs {
		tag := purpose[loc[2]:loc[3]]
		valueStart := loc[1]
		valueEnd := len(purpose)
		if i+1 < len(locs) {
			valueEnd = locs[i+1][0]
		}
		value := strings.TrimSpace(purpose[valueStart:valueEnd])
		switch tag {
		case "EREF":
			refs.EndToEndID = value
		case "MREF":
			refs.MandateID = value
		case "CRED":
			refs.CreditorID = value
		case "KREF":
			refs.InstructionID = value
		case "SVWZ":
			refs.StructuredPurpose = value
		}
	}
	return refs
}

var bicRE = regexp.MustCompile(`[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}(?:[A-Z0-9]{3})?`)
var ibanRE = regexp.MustCompile(`[A-Z]{2}[0-9]{2}[A-Z0-9]{4}[0-9]{7}[A-Z0-9]*`)

// looksLikeBIC is a cheap structural check used by the MT party parser,
// without check-digit validation (there is none for BIC).
func looksLikeBIC(s string) bool {
	return ValidateBIC(s)
}

// ValidateBIC reports whether s is a structurally valid BIC: 4 letters (bank)
// + 2 letters (country) + 2 alphanumerics (location) + optional 3
// alphanumerics (branch), length 8 or 11 (spec.md §4.5, GLOSSARY).
func ValidateBIC(s string) bool {
	if len(s) != 8 && len(s) != 11 {
		return false
	}
	return bicRE.FindString(s) == s
}

// ValidateIBAN reports whether s is structurally valid AND passes the ISO
// 7064 MOD 97-10 check-digit test (spec.md §4.5: "validator callbacks that
// check the IBAN check digits"; SPEC_FULL.md §7 supplements the algorithm,
// absent from the retrieval pack's SWIFT reference implementation).
func ValidateIBAN(s string) bool {
	if !ibanRE.MatchString(s) || ibanRE.FindString(s) != s {
		return false
	}
	if len(s) < 15 {
		return false
	}
	rearranged := s[4:] + s[:4]
	var numeric strings.Builder
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			numeric.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			numeric.WriteString(fmtIBANLetter(r))
		default:
			return false
		}
	}
	n, ok := new(big.Int).SetString(numeric.String(), 10)
	if !ok {
		return false
	}
	mod := new(big.Int).Mod(n, big.NewInt(97))
	return mod.Int64() == 1
}

// fmtIBANLetter converts an IBAN letter to its two-digit numeric value
// (A=10, B=11, ..., Z=35) per ISO 7064 MOD 97-10.
func fmtIBANLetter(r rune) string {
	v := int(r-'A') + 10
	return string(rune('0'+v/10)) + string(rune('0'+v%10))
}

// ExtractIBAN scans text for the first structurally-valid IBAN candidate.
func ExtractIBAN(text string) (string, bool) {
	for _, cand := range ibanRE.FindAllString(text, -1) {
		if ValidateIBAN(cand) {
			return cand, true
		}
	}
	return "", false
}

// ExtractBIC scans text for the first structurally-valid BIC candidate,
// excluding candidates immediately followed by '/' in the original string:
// those are "BIC/account" prefixes (field 25 form), not embedded
// counterparty references (spec.md §4.5).
func ExtractBIC(text string) (string, bool) {
	locs := bicRE.FindAllStringIndex(text, -1)
	for _, loc := range locs {
		cand := text[loc[0]:loc[1]]
		if !ValidateBIC(cand) {
			continue
		}
		if loc[1] < len(text) && text[loc[1]] == '/' {
			continue
		}
		return cand, true
	}
	return "", false
}

// ExtractBICFromAccount splits a field-25-style account identifier of the
// form "BIC/account" or "BLZ/account" into its prefix and the remaining
// account string. ok is false when no '/' separator is present.
func ExtractBICFromAccount(accountID string) (prefix, account string, ok bool) {
	idx := strings.Index(accountID, "/")
	if idx < 0 {
		return "", accountID, false
	}
	return accountID[:idx], accountID[idx+1:], true
}
