package bankfmt

import (
	"regexp"
	"strings"
)

// mtField is one decoded SWIFT field: a tag (e.g. "61", "86", "32A") and its
// payload, which may span several continuation lines (spec.md §4.1).
type mtField struct {
	Tag   string
	Lines []string
}

// Value joins the field's lines with "\n", the form most field-specific
// parsers expect.
func (f mtField) Value() string {
	return strings.Join(f.Lines, "\n")
}

var tagLineRE = regexp.MustCompile(`^:([0-9]{2}[A-Z]?):(.*)$`)

// scanFields splits an MT block-4 body into an ordered sequence of fields.
// A line not starting with ':' is a continuation of the previous field's
// payload (spec.md §4.1: "lines not beginning with ':' belong to the
// preceding tag").
func scanFields(body string) ([]mtField, error) {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.TrimSuffix(body, "\n")
	if body == "" {
		return nil, nil
	}

	lines := strings.Split(body, "\n")
	var fields []mtField
	for _, line := range lines {
		if m := tagLineRE.FindStringSubmatch(line); m != nil {
			fields = append(fields, mtField{Tag: m[1], Lines: []string{m[2]}})
			continue
		}
		if len(fields) == 0 {
			return nil, &CodecError{violations: []Violation{{
				Kind:   KindMalformedTag,
				Reason: "line does not start a recognized field and there is no preceding tag: " + line,
			}}}
		}
		last := &fields[len(fields)-1]
		last.Lines = append(last.Lines, line)
	}
	return fields, nil
}

// findField returns the first field carrying the given tag, if any.
func findField(fields []mtField, tag string) (mtField, bool) {
	for _, f := range fields {
		if f.Tag == tag {
			return f, true
		}
	}
	return mtField{}, false
}

// encodeField renders a tag/payload pair back to wire form, including the
// leading ':' ... ':' delimiter. The caller supplies an already-wrapped
// payload (continuation lines joined with "\n").
func encodeField(tag, payload string) string {
	return ":" + tag + ":" + payload
}

// serializeFields joins encoded field lines with CRLF, per spec.md §6.1.
func serializeFields(lines []string) string {
	return strings.Join(lines, "\r\n")
}
