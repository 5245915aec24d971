package bankfmt

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/speedata/paymentformats/pkg/datevfields"
	"golang.org/x/text/encoding/charmap"
)

// decodeCharset converts data to UTF-8 if it is not already valid UTF-8,
// assuming the legacy Windows-1252 encoding DATEV producers still emit
// (spec.md §6.1: "UTF-8 body preferred, legacy Windows-1252 accepted").
func decodeCharset(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return data
	}
	return out
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// formatMetadataRow encodes the 31-field metadata row (spec.md §4.2).
func formatMetadataRow(m DATEVMetadata, cat DATEVCategory) []string {
	fields := make([]string, 31)
	fields[0] = m.FormatTag
	fields[1] = strconv.Itoa(m.VersionNr)
	fields[2] = strconv.Itoa(cat.Code())
	fields[3] = m.FormatName
	fields[4] = strconv.Itoa(m.FormatVersion)
	if !m.CreatedAt.IsZero() {
		fields[5] = m.CreatedAt.Format("20060102150405000")
	}
	fields[6] = m.ImportedAt
	fields[7] = m.Origin
	fields[8] = m.ExportedBy
	fields[9] = m.ImportedBy
	fields[10] = strconv.Itoa(m.ConsultantNumber)
	fields[11] = strconv.Itoa(m.ClientNumber)
	if !m.FiscalYearStart.IsZero() {
		fields[12] = m.FiscalYearStart.Format("20060102")
	}
	fields[13] = strconv.Itoa(m.AccountLength)
	if !m.DateFrom.IsZero() {
		fields[14] = m.DateFrom.Format("20060102")
	}
	if !m.DateTo.IsZero() {
		fields[15] = m.DateTo.Format("20060102")
	}
	fields[16] = m.Description
	fields[17] = m.DictationShorthand
	fields[18] = m.BookingType
	fields[19] = m.AccountingPurpose
	fields[20] = m.Locked
	fields[21] = m.AccountCurrency
	for i, r := range m.Reserved {
		fields[22+i] = r
	}
	quoted := map[int]bool{0: true, 3: true, 7: true, 8: true, 9: true, 16: true, 17: true, 18: true, 19: true, 21: true}
	for i, v := range fields {
		if quoted[i] && v != "" {
			fields[i] = quoteField(v)
		}
	}
	return fields
}

// parseMetadataRow decodes the metadata row back into a DATEVMetadata and
// the category it declares.
func parseMetadataRow(fields []string) (DATEVMetadata, DATEVCategory, error) {
	if len(fields) < 22 {
		return DATEVMetadata{}, DATEVCategoryUnknown, NewCodecError(Violation{
			Kind: KindTruncatedMessage, Reason: fmt.Sprintf("metadata row has %d fields, expected at least 22", len(fields)),
		})
	}
	code, err := strconv.Atoi(fields[2])
	if err != nil {
		return DATEVMetadata{}, DATEVCategoryUnknown, NewCodecError(Violation{Kind: KindFieldInvalid, Reason: "metadata category code is not numeric", Field: "Kategorie"})
	}
	cat, ok := DATEVCategoryFromCode(code)
	if !ok {
		return DATEVMetadata{}, DATEVCategoryUnknown, NewCodecError(Violation{Kind: KindFieldInvalid, Reason: fmt.Sprintf("unknown DATEV category code %d", code), Field: "Kategorie"})
	}
	m := DATEVMetadata{
		FormatTag:          fields[0],
		Category:           code,
		FormatName:         fields[3],
		ImportedAt:         fields[6],
		Origin:             fields[7],
		ExportedBy:         fields[8],
		ImportedBy:         fields[9],
		Description:        fields[16],
		DictationShorthand: fields[17],
		BookingType:        fields[18],
		AccountingPurpose:  fields[19],
		Locked:             fields[20],
		AccountCurrency:    fields[21],
	}
	m.VersionNr, _ = strconv.Atoi(fields[1])
	m.FormatVersion, _ = strconv.Atoi(fields[4])
	m.CreatedAt, _ = time.Parse("20060102150405000", fields[5])
	m.ConsultantNumber, _ = strconv.Atoi(fields[10])
	m.ClientNumber, _ = strconv.Atoi(fields[11])
	m.FiscalYearStart, _ = time.Parse("20060102", fields[12])
	m.AccountLength, _ = strconv.Atoi(fields[13])
	m.DateFrom, _ = time.Parse("20060102", fields[14])
	m.DateTo, _ = time.Parse("20060102", fields[15])
	for i := 0; i < 9 && 22+i < len(fields); i++ {
		m.Reserved[i] = fields[22+i]
	}
	return m, cat, nil
}

// formatDataRow encodes one row, quoting columns whose schema marks them
// Quoted (spec.md §4.2).
func formatDataRow(row DATEVRow, cols []datevfields.Column) (string, error) {
	if len(row) != len(cols) {
		return "", NewCodecError(Violation{Kind: KindFieldInvalid, Reason: fmt.Sprintf("row has %d fields, category expects %d", len(row), len(cols))})
	}
	parts := make([]string, len(row))
	for i, v := range row {
		if cols[i].Quoted && v != "" {
			parts[i] = quoteField(v)
		} else {
			parts[i] = v
		}
	}
	return strings.Join(parts, ";"), nil
}

// ValidateDATEVRow applies the column-by-column validation algorithm of
// spec.md §4.2: empty+optional passes, empty+required is fatal
// (KindMissingField), non-empty values are checked against the column's
// regex (KindFieldInvalid on mismatch) and MaxLen (KindFieldTooLong).
func ValidateDATEVRow(row DATEVRow, cat DATEVCategory, position int) *CodecError {
	cols := datevfields.Columns(cat.Code())
	var violations []Violation
	category := strconv.Itoa(cat.Code())
	for i, c := range cols {
		if i >= len(row) {
			break
		}
		v := row[i]
		if v == "" {
			if c.Required {
				violations = append(violations, Violation{Kind: KindMissingField, Reason: c.Name + " is required", Field: c.Name, Category: category, Column: i + 1, Position: position})
			}
			continue
		}
		if c.MaxLen > 0 && len(v) > c.MaxLen {
			violations = append(violations, Violation{Kind: KindFieldTooLong, Reason: c.Name + " exceeds its maximum length", Field: c.Name, Limit: c.MaxLen, Category: category, Column: i + 1, Position: position})
		}
		if c.Pattern != nil && !c.Pattern.MatchString(v) {
			violations = append(violations, Violation{Kind: KindFieldInvalid, Reason: "value does not match the column pattern", Field: c.Name, Category: category, Column: i + 1, Position: position})
		}
	}
	if len(violations) == 0 {
		return nil
	}
	return &CodecError{violations: violations}
}

// EncodeDATEV renders a DATEVDocument to its three-row-plus-data ASCII form.
func EncodeDATEV(doc *DATEVDocument) ([]byte, error) {
	cols := datevfields.Columns(doc.Category.Code())
	if cols == nil {
		return nil, NewCodecError(Violation{Kind: KindUnexpectedField, Reason: "unknown DATEV category"})
	}
	var buf bytes.Buffer
	buf.WriteString(strings.Join(formatMetadataRow(doc.Metadata, doc.Category), ";"))
	buf.WriteString("\r\n")
	buf.WriteString(strings.Join(datevfields.HeaderNames(doc.Category.Code()), ";"))
	buf.WriteString("\r\n")
	for _, row := range doc.Rows {
		line, err := formatDataRow(row, cols)
		if err != nil {
			return nil, err
		}
		buf.WriteString(line)
		buf.WriteString("\r\n")
	}
	return buf.Bytes(), nil
}

// DecodeDATEV parses a DATEV ASCII file. Rows that fail a required-field
// check are dropped and reported; other violations are collected without
// dropping the row (spec.md §4.2, §7).
func DecodeDATEV(data []byte) (*DATEVDocument, error) {
	data = decodeCharset(data)
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = ';'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, NewCodecError(Violation{Kind: KindMalformedTag, Reason: "failed to parse DATEV CSV structure: " + err.Error()})
	}
	if len(records) < 2 {
		return nil, NewCodecError(Violation{Kind: KindTruncatedMessage, Reason: "file has no metadata/header rows"})
	}

	meta, cat, err := parseMetadataRow(records[0])
	if err != nil {
		return nil, err
	}
	cols := datevfields.Columns(cat.Code())
	doc := &DATEVDocument{Category: cat, Metadata: meta}

	var violations []Violation
	for i, fields := range records[2:] {
		position := i + 3
		if len(fields) != len(cols) {
			violations = append(violations, Violation{
				Kind: KindFieldInvalid, Reason: fmt.Sprintf("row has %d fields, category %d expects %d", len(fields), cat.Code(), len(cols)),
				Category: strconv.Itoa(cat.Code()), Position: position,
			})
			continue
		}
		row := DATEVRow(fields)
		if ce := ValidateDATEVRow(row, cat, position); ce != nil {
			violations = append(violations, ce.Violations()...)
			if ce.HasKind(KindMissingField) {
				continue
			}
		}
		doc.Rows = append(doc.Rows, row)
	}

	if len(violations) > 0 {
		return doc, &CodecError{violations: violations}
	}
	return doc, nil
}
