package services

import (
	"log"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/medhive/pharmacy-admin/internal/models"
)

// currencyReplacer strips currency glyphs and thousands separators before
// numeric parsing.
var currencyReplacer = strings.NewReplacer("₹", "", "$", "", ",", "")

// dosageForms is scanned in order against the lower-cased product name when
// no inventory-type column is present. More specific multi-word forms come
// before single-word forms that could be substrings of others; "tab" is last
// because it matches so broadly.
var dosageForms = []struct {
	form     string
	keywords []string
}{
	{"injection", []string{"injection", "inj"}},
	{"syrup", []string{"syrup", "solution", "oral liquid"}},
	{"capsule", []string{"capsule", "cap"}},
	{"cream", []string{"cream", "ointment", "gel"}},
	{"drops", []string{"drops"}},
	{"inhaler", []string{"inhaler", "respules"}},
	{"powder", []string{"powder", "sachet"}},
	{"spray", []string{"spray", "nasal"}},
	{"patch", []string{"patch"}},
	{"lotion", []string{"lotion"}},
	{"tablet", []string{"tablet", "tab"}},
}

const defaultDosageForm = "tablet"

// NormalizeResult is the output of normalizing a full table.
type NormalizeResult struct {
	Records     []models.InventoryRecord
	Mapping     models.FieldMapping
	RowsRead    int
	RowsSkipped int
}

// NormalizeTable maps the header row and normalizes every data row. Skipped
// rows (blank, or missing a product name) are an expected, silent outcome
// and never abort the run.
func NormalizeTable(table *models.RawTable) *NormalizeResult {
	mapping := MapHeader(table.Rows[0])
	dataRows := table.Rows[1:]

	result := &NormalizeResult{
		Records:  make([]models.InventoryRecord, 0, len(dataRows)),
		Mapping:  mapping,
		RowsRead: len(dataRows),
	}

	for i, row := range dataRows {
		rec, ok := NormalizeRow(row, mapping, i+1)
		if !ok {
			result.RowsSkipped++
			continue
		}
		result.Records = append(result.Records, *rec)
	}

	if result.RowsSkipped > 0 {
		log.Printf("normalize: skipped %d of %d rows (blank or no product name)", result.RowsSkipped, result.RowsRead)
	}

	return result
}

// NormalizeRow produces one canonical record from a raw row, or reports that
// the row should be skipped. ordinal is the row's 1-based position among the
// data rows and seeds the serial number when none parses.
func NormalizeRow(row []string, mapping models.FieldMapping, ordinal int) (*models.InventoryRecord, bool) {
	name, ok := cellAt(row, mapping, models.FieldProductName)
	if !ok {
		return nil, false
	}

	rec := &models.InventoryRecord{
		ProductName: name,
		SerialNo:    ordinal,
	}

	if raw, ok := cellAt(row, mapping, models.FieldSerialNo); ok {
		if n, ok := parseCount(raw); ok {
			rec.SerialNo = n
		}
	}

	if raw, ok := cellAt(row, mapping, models.FieldInventoryQty); ok {
		if n, ok := parseCount(raw); ok {
			rec.InventoryQty = n
		}
	}

	var mrp, selling *decimal.Decimal
	if raw, ok := cellAt(row, mapping, models.FieldMRP); ok {
		if d, ok := parseMoney(raw); ok {
			mrp = &d
		}
	}
	if raw, ok := cellAt(row, mapping, models.FieldSellingPrice); ok {
		if d, ok := parseMoney(raw); ok {
			selling = &d
		}
	}

	// Price fallback: mrp and sellingPrice seed each other; only when both
	// are absent does sellingPrice default to 0 with mrp left unset.
	switch {
	case mrp != nil && selling == nil:
		selling = mrp
	case selling != nil && mrp == nil:
		mrp = selling
	}
	if selling != nil {
		rec.SellingPrice = *selling
	}
	rec.MRP = mrp

	if form, ok := cellAt(row, mapping, models.FieldInventoryType); ok {
		rec.InventoryType = form
	} else {
		rec.InventoryType = deriveDosageForm(name)
	}

	rec.Composition = optCell(row, mapping, models.FieldComposition)
	rec.Company = optCell(row, mapping, models.FieldCompany)
	rec.Category = optCell(row, mapping, models.FieldCategory)
	rec.PackSize = optCell(row, mapping, models.FieldPackSize)
	rec.UsedIn = optCell(row, mapping, models.FieldUsedIn)
	rec.ImageURL1 = optCell(row, mapping, models.FieldImageURL1)
	rec.ImageURL2 = optCell(row, mapping, models.FieldImageURL2)
	rec.PrescriptionInfo = optCell(row, mapping, models.FieldPrescriptionInfo)

	rec.Precautions = mergePrecautions(
		optCell(row, mapping, models.FieldPrecautions),
		optCell(row, mapping, models.FieldDrugInteractions),
	)

	return rec, true
}

// deriveDosageForm scans the product name for dosage-form keywords and
// defaults to tablet when nothing matches.
func deriveDosageForm(productName string) string {
	name := strings.ToLower(productName)
	for _, group := range dosageForms {
		for _, kw := range group.keywords {
			if strings.Contains(name, kw) {
				return group.form
			}
		}
	}
	return defaultDosageForm
}

// mergePrecautions folds drug-interaction text into the precautions text.
// Additive only: existing precautions are never replaced.
func mergePrecautions(precautions, interactions *string) *string {
	if interactions == nil {
		return precautions
	}
	if precautions == nil {
		merged := "Drug Interactions: " + *interactions
		return &merged
	}
	merged := *precautions + "\n\nDrug Interactions: " + *interactions
	return &merged
}

// cellAt returns the trimmed cell mapped to field, reporting false when the
// field is unmapped, the row is too short, or the cell is empty after trim.
func cellAt(row []string, mapping models.FieldMapping, field models.Field) (string, bool) {
	idx, ok := mapping[field]
	if !ok || idx >= len(row) {
		return "", false
	}
	v := strings.TrimSpace(row[idx])
	return v, v != ""
}

func optCell(row []string, mapping models.FieldMapping, field models.Field) *string {
	if v, ok := cellAt(row, mapping, field); ok {
		return &v
	}
	return nil
}

// parseCount attempts a decimal parse truncated to an integer, then a plain
// integer parse. Unparseable values report false so callers keep defaults.
func parseCount(raw string) (int, bool) {
	if d, err := decimal.NewFromString(strings.TrimSpace(raw)); err == nil {
		return int(d.IntPart()), true
	}
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		return n, true
	}
	return 0, false
}

// parseMoney parses a decimal after stripping currency glyphs and thousands
// separators. A present-but-unparseable value is treated as absent.
func parseMoney(raw string) (decimal.Decimal, bool) {
	clean := strings.TrimSpace(currencyReplacer.Replace(raw))
	if clean == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
