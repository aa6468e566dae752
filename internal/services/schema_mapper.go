package services

import (
	"strings"

	"github.com/medhive/pharmacy-admin/internal/models"
)

// fieldRule pairs a header predicate with the canonical field it resolves to.
type fieldRule struct {
	field models.Field
	match func(header string) bool
}

// headerRules is evaluated top-to-bottom per header cell; the first matching
// rule wins. The order is load-bearing: pack size must precede the generic
// quantity check ("tab/qty"), and MRP must precede selling price so that a
// header like "MRP (Inventory Type)" is not captured by the looser price
// rule. Do not reorder.
var headerRules = []fieldRule{
	{models.FieldSerialNo, func(h string) bool {
		return strings.Contains(h, "serial") || strings.Contains(h, "s.") || h == "no" || h == "no."
	}},
	{models.FieldProductName, anyOf("product name", "medicine", "name")},
	{models.FieldComposition, anyOf("composition", "salt", "generic")},
	{models.FieldCompany, anyOf("company", "manufacturer", "manufactured")},
	{models.FieldCategory, anyOf("category", "sub_category")},
	{models.FieldPackSize, anyOf("pack", "strip", "tab/qty", "per stp")},
	{models.FieldInventoryQty, func(h string) bool {
		if strings.Contains(h, "stock") || strings.Contains(h, "inventory qty") {
			return true
		}
		return strings.Contains(h, "qty") && !strings.Contains(h, "tab")
	}},
	{models.FieldMRP, anyOf("mrp")},
	{models.FieldSellingPrice, func(h string) bool {
		if strings.Contains(h, "selling") {
			return true
		}
		return strings.Contains(h, "price") && !strings.Contains(h, "mrp")
	}},
	{models.FieldInventoryType, anyOf("inventory type", "form", "type")},
	{models.FieldUsedIn, anyOf("used in", "indication", "uses", "desc")},
	{models.FieldPrecautions, anyOf("precaution", "warning", "side effect")},
	{models.FieldDrugInteractions, anyOf("interaction")},
	{models.FieldImageURL1, func(h string) bool {
		return strings.Contains(h, "image") && strings.Contains(h, "1")
	}},
	{models.FieldImageURL2, func(h string) bool {
		return strings.Contains(h, "image") && strings.Contains(h, "2")
	}},
	{models.FieldPrescriptionInfo, anyOf("recommend", "prescri", "rx")},
}

func anyOf(keywords ...string) func(string) bool {
	return func(h string) bool {
		for _, kw := range keywords {
			if strings.Contains(h, kw) {
				return true
			}
		}
		return false
	}
}

// MapHeader resolves a header row into a FieldMapping. Header cells are
// lower-cased and trimmed; empty cells contribute nothing. A header cell
// maps to at most one canonical field and the first column wins per field.
// MapHeader never fails; an all-empty mapping simply yields zero usable
// records downstream.
func MapHeader(header []string) models.FieldMapping {
	mapping := make(models.FieldMapping, len(headerRules))
	for col, cell := range header {
		h := strings.ToLower(strings.TrimSpace(cell))
		if h == "" {
			continue
		}
		for _, rule := range headerRules {
			if !rule.match(h) {
				continue
			}
			if _, taken := mapping[rule.field]; !taken {
				mapping[rule.field] = col
			}
			break
		}
	}
	return mapping
}
