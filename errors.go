package bankfmt

import "fmt"

// Kind identifies the taxonomy category of a Violation, per spec.md §7.
type Kind int

const (
	// Syntax errors.
	KindMalformedTag Kind = iota
	KindMalformedAmount
	KindMalformedDate
	KindTruncatedMessage
	KindUnexpectedField
	KindDuplicateTag

	// Schema errors.
	KindUnknownCurrency
	KindUnknownTransactionCode
	KindFieldTooLong
	KindFieldInvalid
	KindMissingField

	// Semantic errors.
	KindBalanceInconsistent
	KindControlSumMismatch
	KindHeterogeneousBatch
	KindEmptyBatch
)

func (k Kind) String() string {
	switch k {
	case KindMalformedTag:
		return "MalformedTag"
	case KindMalformedAmount:
		return "MalformedAmount"
	case KindMalformedDate:
		return "MalformedDate"
	case KindTruncatedMessage:
		return "TruncatedMessage"
	case KindUnexpectedField:
		return "UnexpectedField"
	case KindDuplicateTag:
		return "DuplicateTag"
	case KindUnknownCurrency:
		return "UnknownCurrency"
	case KindUnknownTransactionCode:
		return "UnknownTransactionCode"
	case KindFieldTooLong:
		return "FieldTooLong"
	case KindFieldInvalid:
		return "FieldInvalid"
	case KindMissingField:
		return "MissingField"
	case KindBalanceInconsistent:
		return "BalanceInconsistent"
	case KindControlSumMismatch:
		return "ControlSumMismatch"
	case KindHeterogeneousBatch:
		return "HeterogeneousBatch"
	case KindEmptyBatch:
		return "EmptyBatch"
	}
	return "UnknownErrorKind"
}

// Violation is one structured error occurrence: a stable Kind plus a
// human-readable Reason and optional positional context. No stack traces are
// part of the contract (spec.md §7).
type Violation struct {
	Kind     Kind
	Reason   string
	Field    string // e.g. "senders_reference", or a DATEV column name
	Limit    int    // for KindFieldTooLong
	Category string // for KindFieldInvalid: the DATEV category code
	Column   int    // for KindFieldInvalid: 1-based column position
	Position int    // row/line number where applicable
}

func (v Violation) String() string {
	if v.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s)", v.Kind, v.Reason, v.Field)
	}
	return fmt.Sprintf("%s: %s", v.Kind, v.Reason)
}

// CodecError aggregates one or more Violations. Parsers, builders and the
// DATEV validator all return *CodecError instead of a bare error so callers
// can inspect every violation rather than just the first.
type CodecError struct {
	violations []Violation
}

// NewCodecError builds a *CodecError from one or more violations.
func NewCodecError(violations ...Violation) *CodecError {
	return &CodecError{violations: violations}
}

// Error implements the error interface.
func (e *CodecError) Error() string {
	switch len(e.violations) {
	case 0:
		return "bankfmt: no violations"
	case 1:
		v := e.violations[0]
		return fmt.Sprintf("bankfmt: %s", v.String())
	default:
		return fmt.Sprintf("bankfmt: %d violations (first: %s)", len(e.violations), e.violations[0].String())
	}
}

// Violations returns a copy of all violations carried by this error.
func (e *CodecError) Violations() []Violation {
	if e.violations == nil {
		return nil
	}
	out := make([]Violation, len(e.violations))
	copy(out, e.violations)
	return out
}

// Count returns the number of violations.
func (e *CodecError) Count() int {
	return len(e.violations)
}

// HasKind reports whether any violation carries the given Kind.
func (e *CodecError) HasKind(k Kind) bool {
	for _, v := range e.violations {
		if v.Kind == k {
			return true
		}
	}
	return false
}

// Append returns a new *CodecError with extra violations appended. Used by
// accumulating validators (DATEV row validation, §4.2) that must keep
// collecting after the first failure.
func (e *CodecError) Append(violations ...Violation) *CodecError {
	if e == nil {
		return &CodecError{violations: violations}
	}
	combined := make([]Violation, 0, len(e.violations)+len(violations))
	combined = append(combined, e.violations...)
	combined = append(combined, violations...)
	return &CodecError{violations: combined}
}

// asCodecError extracts the violations from err if it is a *CodecError, or
// wraps it as a single KindMalformedTag violation otherwise.
func asCodecError(err error) *CodecError {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*CodecError); ok {
		return ce
	}
	return &CodecError{violations: []Violation{{Kind: KindMalformedTag, Reason: err.Error()}}}
}
