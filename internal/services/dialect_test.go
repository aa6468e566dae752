package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/medhive/pharmacy-admin/internal/models"
)

func TestDetectTableCommaDelimited(t *testing.T) {
	data := []byte("Product Name,MRP,Qty\nParacetamol,25.50,100\n")

	table, dialect, err := DetectTable(data, "inventory.csv")
	require.NoError(t, err)

	assert.Equal(t, models.FormatDelimited, dialect.Format)
	assert.Equal(t, ",", dialect.Delimiter)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Product Name", "MRP", "Qty"}, table.Rows[0])
	assert.Equal(t, []string{"Paracetamol", "25.50", "100"}, table.Rows[1])
}

func TestDetectTableTabDelimited(t *testing.T) {
	data := []byte("Product Name\tMRP\tQty\nParacetamol\t25.50\t100\n")

	table, dialect, err := DetectTable(data, "inventory.tsv")
	require.NoError(t, err)

	assert.Equal(t, models.FormatDelimited, dialect.Format)
	assert.Equal(t, "\t", dialect.Delimiter)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Paracetamol", "25.50", "100"}, table.Rows[1])
}

func TestDetectTableTabWinsWhenMoreFrequent(t *testing.T) {
	// The first line carries one comma (inside a product name) but two tabs.
	data := []byte("Name\tPack, Size\tQty\nCrocin\t10 tabs\t50\n")

	table, dialect, err := DetectTable(data, "stock.txt")
	require.NoError(t, err)

	assert.Equal(t, "\t", dialect.Delimiter)
	assert.Equal(t, []string{"Name", "Pack, Size", "Qty"}, table.Rows[0])
}

func TestDetectTableQuotedFields(t *testing.T) {
	data := []byte(`Product Name,Company,Precautions
"Amoxicillin 500mg","Cipla, Ltd","Take with food; avoid ""alcohol"""
`)

	table, _, err := DetectTable(data, "meds.csv")
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Cipla, Ltd", table.Rows[1][1])
	assert.Equal(t, `Take with food; avoid "alcohol"`, table.Rows[1][2])
}

func TestDetectTableCRLFAndRaggedRows(t *testing.T) {
	data := []byte("Name,Qty,MRP\r\nDolo 650,20\r\n")

	table, _, err := DetectTable(data, "ragged.csv")
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	// FieldsPerRecord is relaxed so short rows survive.
	assert.Len(t, table.Rows[1], 2)
}

func TestDetectTableEmptyInput(t *testing.T) {
	for _, data := range [][]byte{nil, []byte(""), []byte("  \n  \n")} {
		_, _, err := DetectTable(data, "empty.csv")
		assert.ErrorIs(t, err, ErrEmptyInput)
	}
}

func TestDetectTableSpreadsheetFirstSheet(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Inventory"))
	require.NoError(t, f.SetSheetRow("Inventory", "A1", &[]interface{}{"Product Name", "MRP"}))
	require.NoError(t, f.SetSheetRow("Inventory", "A2", &[]interface{}{"Azithromycin", "120"}))

	// A second sheet must not be read.
	_, err := f.NewSheet("Extra")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Extra", "A1", &[]interface{}{"ignored"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	table, dialect, err := DetectTable(buf.Bytes(), "inventory.xlsx")
	require.NoError(t, err)

	assert.Equal(t, models.FormatSpreadsheet, dialect.Format)
	assert.Equal(t, "Inventory", dialect.Sheet)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Azithromycin", table.Rows[1][0])
}

func TestDetectTableSpreadsheetEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, _, err := DetectTable(buf.Bytes(), "blank.xlsx")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestDetectTableCorruptSpreadsheet(t *testing.T) {
	_, _, err := DetectTable([]byte("this is not a zip archive"), "broken.xlsx")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyInput)
}
