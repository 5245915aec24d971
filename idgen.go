package bankfmt

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var nonAlnumDashRE = regexp.MustCompile(`[^A-Za-z0-9-]`)

// SynthesizeMessageID builds the `MT940-{refId}-{ts}` message id used when
// migrating an MT940 statement to CAMT053, truncated to 35 characters and
// restricted to alphanumerics and '-' (spec.md §4.4).
func SynthesizeMessageID(prefix, refID string, ts time.Time) string {
	raw := prefix + "-" + refID + "-" + ts.Format("20060102150405")
	clean := nonAlnumDashRE.ReplaceAllString(raw, "")
	if len(clean) > 35 {
		clean = clean[:35]
	}
	return clean
}

// SynthesizeSplitReference builds the `{ref}-NNN` reference used when
// splitting an MT101 batch into individual MT103s (spec.md §4.4), index
// starting at 1.
func SynthesizeSplitReference(ref string, index int) string {
	suffix := "-001"
	if index < 1 {
		index = 1
	}
	n := index
	digits := [3]byte{'0', '0', '0'}
	for i := 2; i >= 0 && n > 0; i-- {
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	suffix = "-" + string(digits[:])
	out := ref + suffix
	if len(out) > 16 {
		out = out[len(out)-16:]
	}
	return out
}

// SynthesizeDATEVReference builds the senders reference (tag 20) of the
// MT940 statement that ConvertDATEVToMT940 rebuilds from DATEV rows:
// `DATEV` + sanitized statement number + date, truncated to 16 chars
// (spec.md §4.4).
func SynthesizeDATEVReference(statementNumber string, date time.Time) string {
	clean := nonAlnumDashRE.ReplaceAllString(statementNumber, "")
	raw := "DATEV" + clean + date.Format("20060102")
	if len(raw) > 16 {
		raw = raw[:16]
	}
	return raw
}

// NewUUIDReference returns a fresh UUID-derived reference fragment, used by
// callers that need a guaranteed-unique id with no natural source value.
func NewUUIDReference() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
