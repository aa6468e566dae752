package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medhive/pharmacy-admin/internal/models"
)

func TestMapHeaderFullSheet(t *testing.T) {
	header := []string{
		"S. No.", "Product Name", "Composition", "Company", "Category",
		"Pack Size", "Stock Qty", "MRP", "Selling Price", "Inventory Type",
		"Used In", "Precautions", "Drug Interactions", "Image URL 1",
		"Image URL 2", "Prescription Required",
	}

	mapping := MapHeader(header)

	assert.Equal(t, models.FieldMapping{
		models.FieldSerialNo:         0,
		models.FieldProductName:      1,
		models.FieldComposition:      2,
		models.FieldCompany:          3,
		models.FieldCategory:         4,
		models.FieldPackSize:         5,
		models.FieldInventoryQty:     6,
		models.FieldMRP:              7,
		models.FieldSellingPrice:     8,
		models.FieldInventoryType:    9,
		models.FieldUsedIn:           10,
		models.FieldPrecautions:      11,
		models.FieldDrugInteractions: 12,
		models.FieldImageURL1:        13,
		models.FieldImageURL2:        14,
		models.FieldPrescriptionInfo: 15,
	}, mapping)
}

func TestMapHeaderMRPBeatsPrice(t *testing.T) {
	// Vendors label this column "MRP (Inventory Type)"; it must resolve to
	// mrp, not to selling price or inventory type.
	mapping := MapHeader([]string{"Medicine", "MRP (Inventory Type)", "Price"})

	assert.Equal(t, 1, mapping[models.FieldMRP])
	assert.Equal(t, 2, mapping[models.FieldSellingPrice])
	_, hasType := mapping[models.FieldInventoryType]
	assert.False(t, hasType)
}

func TestMapHeaderPackSizeBeatsQty(t *testing.T) {
	mapping := MapHeader([]string{"Name", "Tab/Qty", "Stock"})

	assert.Equal(t, 1, mapping[models.FieldPackSize])
	assert.Equal(t, 2, mapping[models.FieldInventoryQty])
}

func TestMapHeaderFirstColumnWins(t *testing.T) {
	mapping := MapHeader([]string{"MRP", "MRP Old", "Name", "Product Name"})

	assert.Equal(t, 0, mapping[models.FieldMRP])
	assert.Equal(t, 2, mapping[models.FieldProductName])
}

func TestMapHeaderIgnoresEmptyAndUnknown(t *testing.T) {
	mapping := MapHeader([]string{"", "  ", "Barcode", "Medicine Name"})

	assert.Equal(t, models.FieldMapping{
		models.FieldProductName: 3,
	}, mapping)
}

func TestMapHeaderCaseAndWhitespaceInsensitive(t *testing.T) {
	a := MapHeader([]string{"  PRODUCT NAME ", "selling PRICE"})
	b := MapHeader([]string{"product name", "selling price"})

	assert.Equal(t, b, a)
}

func TestMapHeaderAllUnknown(t *testing.T) {
	mapping := MapHeader([]string{"Alpha", "Beta", "Gamma"})
	assert.Empty(t, mapping)
}
