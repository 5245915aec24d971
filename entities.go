package bankfmt

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is a signed monetary amount at an instant. The sign lives in
// Direction, never in Amount: Amount is always non-negative. Construct a
// Balance only through NewBalance, which enforces that invariant.
type Balance struct {
	Direction Direction
	Date      time.Time
	Currency  string
	Amount    decimal.Decimal
	Type      BalanceType
}

// NewBalance builds a Balance, rejecting a negative amount (spec.md §3:
// "amount >= 0; sign lives in the indicator").
func NewBalance(dir Direction, date time.Time, currency string, amount decimal.Decimal, typ BalanceType) (Balance, error) {
	if amount.IsNegative() {
		return Balance{}, &CodecError{violations: []Violation{{
			Kind:   KindMalformedAmount,
			Reason: "balance amount must not be negative",
		}}}
	}
	return Balance{
		Direction: dir,
		Date:      date,
		Currency:  currency,
		Amount:    amount,
		Type:      typ,
	}, nil
}

// Signed returns the amount with the sign implied by Direction: negative for
// debit, positive for credit.
func (b Balance) Signed() decimal.Decimal {
	if b.Direction == Debit {
		return b.Amount.Neg()
	}
	return b.Amount
}

// BalanceFromSigned builds a Balance from a signed amount, flipping the
// direction to Debit and taking the absolute value when negative. Used by
// converters that back-compute a balance from a running total (spec.md
// §4.4, MT942 reconstruction; §8 property 9).
func BalanceFromSigned(signed decimal.Decimal, date time.Time, currency string, typ BalanceType) Balance {
	dir := Credit
	amount := signed
	if signed.IsNegative() {
		dir = Debit
		amount = signed.Neg()
	}
	return Balance{Direction: dir, Date: date, Currency: currency, Amount: amount, Type: typ}
}

// Reference is an MT transaction reference pair: a 3-char business
// transaction code and an up-to-16-char customer reference.
type Reference struct {
	Code  string
	Value string
}

// NoReference is the reserved literal used when no customer reference is
// known (spec.md §3).
const NoReference = "NONREF"

// NewReference validates and builds a Reference.
func NewReference(code, value string) (Reference, error) {
	var violations []Violation
	if len(code) != 3 {
		violations = append(violations, Violation{Kind: KindUnexpectedField, Reason: "reference code must be exactly 3 characters", Field: "code"})
	}
	if len(value) > 16 {
		violations = append(violations, Violation{Kind: KindFieldTooLong, Reason: "reference value exceeds 16 characters", Field: "value", Limit: 16})
	}
	if len(violations) > 0 {
		return Reference{}, &CodecError{violations: violations}
	}
	return Reference{Code: code, Value: value}, nil
}

// Party is an ordering customer or beneficiary.
type Party struct {
	Account string
	BIC     string
	Name    string
	Address [4]string
}

// Valid reports whether the party carries enough information to be embedded
// in a transaction: at least a name or an account (spec.md §3).
func (p Party) Valid() bool {
	return p.Name != "" || p.Account != ""
}

// TransferDetails carries the value date, currency and amount of a transfer,
// with optional original-currency/FX fields.
type TransferDetails struct {
	ValueDate        time.Time
	Currency         string
	Amount           decimal.Decimal
	OriginalAmount   decimal.Decimal
	OriginalCurrency string
	ExchangeRate     decimal.Decimal
}

// IsFX reports whether this transfer carries original-currency information
// distinct from Currency.
func (t TransferDetails) IsFX() bool {
	return t.OriginalCurrency != "" && t.OriginalCurrency != t.Currency
}
