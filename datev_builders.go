package bankfmt

import "time"

// DATEVDocumentBuilder assembles a DATEVDocument row by row, copy-on-write
// like the MT/pain builders (spec.md §4.3 applies the same builder contract
// across formats).
type DATEVDocumentBuilder struct {
	doc DATEVDocument
}

// NewDATEVDocumentBuilder starts a builder for the given category, with
// format-tag and version defaults applied (spec.md §4.2).
func NewDATEVDocumentBuilder(cat DATEVCategory) DATEVDocumentBuilder {
	return DATEVDocumentBuilder{doc: DATEVDocument{
		Category: cat,
		Metadata: DATEVMetadata{
			FormatTag:     "EXTF",
			VersionNr:     700,
			Category:      cat.Code(),
			FormatName:    cat.String(),
			FormatVersion: 9,
			AccountLength: 8,
			CreatedAt:     time.Time{},
		},
	}}
}

func (b DATEVDocumentBuilder) CreatedAt(t time.Time) DATEVDocumentBuilder {
	b.doc.Metadata.CreatedAt = t
	return b
}

func (b DATEVDocumentBuilder) ConsultantClient(consultant, client int) DATEVDocumentBuilder {
	b.doc.Metadata.ConsultantNumber = consultant
	b.doc.Metadata.ClientNumber = client
	return b
}

func (b DATEVDocumentBuilder) FiscalYearStart(t time.Time) DATEVDocumentBuilder {
	b.doc.Metadata.FiscalYearStart = t
	return b
}

func (b DATEVDocumentBuilder) DateRange(from, to time.Time) DATEVDocumentBuilder {
	b.doc.Metadata.DateFrom = from
	b.doc.Metadata.DateTo = to
	return b
}

func (b DATEVDocumentBuilder) Description(s string) DATEVDocumentBuilder {
	b.doc.Metadata.Description = s
	return b
}

func (b DATEVDocumentBuilder) Currency(ccy string) DATEVDocumentBuilder {
	b.doc.Metadata.AccountCurrency = ccy
	return b
}

// Row appends one data row, copy-on-write.
func (b DATEVDocumentBuilder) Row(row DATEVRow) DATEVDocumentBuilder {
	rows := make([]DATEVRow, len(b.doc.Rows)+1)
	copy(rows, b.doc.Rows)
	rows[len(rows)-1] = row
	b.doc.Rows = rows
	return b
}

// Build validates every row's fixed width and yields an immutable document.
// Unlike the MT builders, a width mismatch is schema-fatal for the whole
// document (rows of the wrong width cannot be categorized at all), while
// column-level content violations are left for DecodeDATEV/ValidateDATEVRow
// to report per spec.md §4.2's accumulate-and-continue policy.
func (b DATEVDocumentBuilder) Build() (*DATEVDocument, error) {
	want := b.doc.Category.FieldCount()
	var violations []Violation
	for i, row := range b.doc.Rows {
		if len(row) != want {
			violations = append(violations, Violation{
				Kind: KindFieldInvalid, Reason: "row width does not match category field count", Position: i + 3,
			})
		}
	}
	if len(violations) > 0 {
		return nil, &CodecError{violations: violations}
	}
	doc := b.doc
	return &doc, nil
}
