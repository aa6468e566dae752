package models

import (
	"github.com/shopspring/decimal"
)

// Field is a canonical attribute of an InventoryRecord that the schema
// mapper resolves source columns into.
type Field string

const (
	FieldSerialNo         Field = "serialNo"
	FieldProductName      Field = "productName"
	FieldComposition      Field = "composition"
	FieldCompany          Field = "company"
	FieldCategory         Field = "category"
	FieldPackSize         Field = "packSize"
	FieldInventoryQty     Field = "inventoryQty"
	FieldInventoryType    Field = "inventoryType"
	FieldMRP              Field = "mrp"
	FieldSellingPrice     Field = "sellingPrice"
	FieldUsedIn           Field = "usedIn"
	FieldPrecautions      Field = "precautions"
	FieldDrugInteractions Field = "drugInteractions"
	FieldImageURL1        Field = "imageUrl1"
	FieldImageURL2        Field = "imageUrl2"
	FieldPrescriptionInfo Field = "prescriptionInfo"
)

// FieldMapping maps canonical fields to column positions in the source table.
// Unmapped fields are legal; their values default downstream.
type FieldMapping map[Field]int

// DialectFormat distinguishes spreadsheet containers from delimited text.
type DialectFormat string

const (
	FormatSpreadsheet DialectFormat = "spreadsheet"
	FormatDelimited   DialectFormat = "delimited"
)

// Dialect describes the structural variant of an input file.
type Dialect struct {
	Format    DialectFormat `json:"format"`
	Delimiter string        `json:"delimiter,omitempty"`
	Sheet     string        `json:"sheet,omitempty"`
}

// RawTable is the decoded source file: an ordered sequence of rows of cell
// strings. Row 0 is the header. Immutable once built.
type RawTable struct {
	Rows [][]string
}

// InventoryRecord is the canonical unit produced by normalization and
// shipped to the bulk-ingest endpoint.
type InventoryRecord struct {
	SerialNo         int              `json:"serialNo"`
	ProductName      string           `json:"productName"`
	Composition      *string          `json:"composition,omitempty"`
	Company          *string          `json:"company,omitempty"`
	Category         *string          `json:"category,omitempty"`
	PackSize         *string          `json:"packSize,omitempty"`
	InventoryQty     int              `json:"inventoryQty"`
	InventoryType    string           `json:"inventoryType"`
	MRP              *decimal.Decimal `json:"mrp,omitempty"`
	SellingPrice     decimal.Decimal  `json:"sellingPrice"`
	UsedIn           *string          `json:"usedIn,omitempty"`
	Precautions      *string          `json:"precautions,omitempty"`
	ImageURL1        *string          `json:"imageUrl1,omitempty"`
	ImageURL2        *string          `json:"imageUrl2,omitempty"`
	PrescriptionInfo *string          `json:"prescriptionInfo,omitempty"`
}

// BulkIngestRequest is one chunk submitted to the remote bulk endpoint.
type BulkIngestRequest struct {
	StoreID string            `json:"storeId"`
	Items   []InventoryRecord `json:"items"`
}

// UploadError is a per-item (or synthetic per-chunk) failure report.
type UploadError struct {
	SerialNo     *int    `json:"serialNo,omitempty"`
	ProductName  *string `json:"productName,omitempty"`
	ErrorMessage string  `json:"errorMessage"`
}

// BulkIngestResponse is the remote service's per-chunk reconciliation result.
type BulkIngestResponse struct {
	NewMedicinesAdded        int           `json:"newMedicinesAdded"`
	ExistingMedicinesUpdated int           `json:"existingMedicinesUpdated"`
	InventoryItemsCreated    int           `json:"inventoryItemsCreated"`
	InventoryItemsUpdated    int           `json:"inventoryItemsUpdated"`
	FailedItems              int           `json:"failedItems"`
	Errors                   []UploadError `json:"errors,omitempty"`
}

// UploadOutcome accumulates results across every chunk of a run. It is owned
// by the orchestrator for the duration of the run and handed to the caller
// once finalized.
type UploadOutcome struct {
	Success                  bool          `json:"success"`
	TotalItems               int           `json:"totalItems"`
	NewMedicinesAdded        int           `json:"newMedicinesAdded"`
	ExistingMedicinesUpdated int           `json:"existingMedicinesUpdated"`
	InventoryItemsCreated    int           `json:"inventoryItemsCreated"`
	InventoryItemsUpdated    int           `json:"inventoryItemsUpdated"`
	FailedItems              int           `json:"failedItems"`
	Errors                   []UploadError `json:"errors,omitempty"`
}

// ImportRunSummary is the terminal response for one complete ingestion-and-
// upload run.
type ImportRunSummary struct {
	RunID         string         `json:"runId"`
	FileName      string         `json:"fileName"`
	Dialect       Dialect        `json:"dialect"`
	RowsRead      int            `json:"rowsRead"`
	RecordsParsed int            `json:"recordsParsed"`
	RowsSkipped   int            `json:"rowsSkipped"`
	ChunkSize     int            `json:"chunkSize"`
	Outcome       *UploadOutcome `json:"outcome"`
	ReportKey     string         `json:"reportKey,omitempty"`
}

// StoreInventoryItem is a per-store inventory row as served by the remote API.
type StoreInventoryItem struct {
	ID            string           `json:"id"`
	ProductName   string           `json:"productName"`
	InventoryType string           `json:"inventoryType"`
	InventoryQty  int              `json:"inventoryQty"`
	MRP           *decimal.Decimal `json:"mrp,omitempty"`
	SellingPrice  decimal.Decimal  `json:"sellingPrice"`
	UpdatedAt     string           `json:"updatedAt,omitempty"`
}

// StoreInventoryPage is one page of a store's inventory listing.
type StoreInventoryPage struct {
	Items []StoreInventoryItem `json:"items"`
	Total int                  `json:"total"`
}
