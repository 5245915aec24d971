package bankfmt

import (
	"github.com/shopspring/decimal"
)

// ConvertMT940ToMT942 reprojects a statement as an interim-report statement
// (MT942). Every field is copied across; the datetime indicator (field 13D)
// is derived from CreationTimestamp as YYMMDDhhmm with a "+0000" offset
// (spec.md §4.4).
func ConvertMT940ToMT942(src *MTDocument) (*MTDocument, error) {
	if src.Type != MT940 {
		return nil, NewCodecError(Violation{Kind: KindUnexpectedField, Reason: "source document is not MT940"})
	}
	dst := *src
	dst.Type = MT942
	dst.DateTimeIndicator = src.CreationTimestamp.Format("0601021504") + "+0000"
	return &dst, nil
}

// ConvertMT942ToMT940 reconstructs an MT940 opening balance from an MT942
// interim report's closing balance minus its transaction list, back-computing
// via BalanceFromSigned (spec.md §4.4): one CREDIT of A closing at B yields
// opening = B-A, with the direction flipped if that is negative.
func ConvertMT942ToMT940(src *MTDocument) (*MTDocument, error) {
	if src.Type != MT942 {
		return nil, NewCodecError(Violation{Kind: KindUnexpectedField, Reason: "source document is not MT942"})
	}
	dst := *src
	dst.Type = MT940
	dst.DateTimeIndicator = ""
	signed := src.ClosingBalance.Signed().Sub(TransactionSum(src.Transactions))
	dst.OpeningBalance = BalanceFromSigned(signed, src.ClosingBalance.Date, src.ClosingBalance.Currency, BalanceTypeNone)
	return &dst, nil
}

// ConvertMT940ToMT941 produces a balance-only summary report (MT941) from a
// full statement. This conversion is lossy: the transaction list is dropped
// (spec.md §4.4). The transactionsDropped result reports how many lines were
// discarded so callers can surface that loss instead of silently losing
// data.
func ConvertMT940ToMT941(src *MTDocument) (dst *MTDocument, transactionsDropped int, err error) {
	if src.Type != MT940 {
		return nil, 0, NewCodecError(Violation{Kind: KindUnexpectedField, Reason: "source document is not MT940"})
	}
	out := *src
	out.Type = MT941
	dropped := len(src.Transactions)
	out.Transactions = nil
	return &out, dropped, nil
}

// SplitMT101 splits a cross-border/multi-beneficiary MT101 payment order
// into one MT103 per transaction line, synthesizing a `{ref}-NNN` reference
// for each leg (spec.md §4.4). A heterogeneous-currency batch is permitted
// here since each resulting MT103 is independent; OrderBatchBuilder does not
// check currencies for MT101 either.
func SplitMT101(src *MTDocument) ([]*MTDocument, error) {
	if src.Type != MT101 {
		return nil, NewCodecError(Violation{Kind: KindUnexpectedField, Reason: "source document is not MT101"})
	}
	if len(src.Transactions) == 0 {
		return nil, NewCodecError(Violation{Kind: KindEmptyBatch, Reason: "MT101 batch carries no transactions"})
	}
	out := make([]*MTDocument, 0, len(src.Transactions))
	for i, tx := range src.Transactions {
		leg := MTDocument{
			Type:             MT103,
			SendersReference: SynthesizeSplitReference(src.SendersReference, i+1),
			OrderingCustomer: src.OrderingCustomer,
			Transactions:     []MTTransaction{tx},
		}
		out = append(out, &leg)
	}
	return out, nil
}

// MergeMT103 merges a slice of single-transaction MT103 orders sharing one
// ordering customer into a single MT101 batch, the inverse of SplitMT101
// (spec.md §4.4). Legs are required to share OrderingCustomer and currency;
// a currency or ordering-customer mismatch is reported as
// KindHeterogeneousBatch rather than silently merged (spec.md §3).
func MergeMT103(legs []*MTDocument) (*MTDocument, error) {
	if len(legs) == 0 {
		return nil, NewCodecError(Violation{Kind: KindEmptyBatch, Reason: "no MT103 legs to merge"})
	}
	var violations []Violation
	first := legs[0]
	var currency string
	if len(first.Transactions) == 1 {
		currency = first.Transactions[0].Currency
	}
	batch := MTDocument{
		Type:             MT101,
		SendersReference: first.SendersReference,
		OrderingCustomer: first.OrderingCustomer,
	}
	for _, leg := range legs {
		if leg.Type != MT103 {
			violations = append(violations, Violation{Kind: KindUnexpectedField, Reason: "merge input is not MT103"})
			continue
		}
		if len(leg.Transactions) != 1 {
			violations = append(violations, Violation{Kind: KindUnexpectedField, Reason: "MT103 leg does not carry exactly one transaction"})
			continue
		}
		tx := leg.Transactions[0]
		if tx.Currency != currency {
			violations = append(violations, Violation{Kind: KindHeterogeneousBatch, Reason: "merged batch carries more than one currency"})
		}
		if leg.OrderingCustomer != first.OrderingCustomer {
			violations = append(violations, Violation{Kind: KindHeterogeneousBatch, Reason: "merged batch carries more than one ordering customer"})
		}
		batch.Transactions = append(batch.Transactions, tx)
	}
	if len(violations) > 0 {
		return nil, &CodecError{violations: violations}
	}
	return &batch, nil
}

// decimalsEqual reports whether two amounts are equal after rounding to two
// decimal places, used by converters validating a reconstructed balance.
func decimalsEqual(a, b decimal.Decimal) bool {
	return a.Round(2).Equal(b.Round(2))
}
