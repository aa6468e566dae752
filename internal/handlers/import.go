package handlers

import (
	"errors"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/medhive/pharmacy-admin/internal/middleware"
	"github.com/medhive/pharmacy-admin/internal/models"
	"github.com/medhive/pharmacy-admin/internal/services"
)

// ImportInventory runs the full ingestion-and-upload pipeline for one file
// POST /api/stores/:id/inventory/import
//
// The whole file is parsed and normalized in memory before any network
// activity; the upload phase then submits chunks sequentially. The response
// is a complete run summary even when the upload was partially unsuccessful.
func (h *Handler) ImportInventory(c *fiber.Ctx) error {
	storeID := c.Params("id")
	if storeID == "" {
		return Error(c, fiber.StatusBadRequest, "store id is required")
	}
	if !middleware.CanAccessStore(c, storeID) {
		return Error(c, fiber.StatusForbidden, "store access denied")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "file is required")
	}
	if fileHeader.Size > int64(h.cfg.MaxUploadMB)<<20 {
		return Error(c, fiber.StatusRequestEntityTooLarge, "file too large")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "failed to open uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "failed to read uploaded file")
	}

	table, dialect, err := services.DetectTable(data, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, services.ErrEmptyInput) {
			return Error(c, fiber.StatusBadRequest, "file contains no rows")
		}
		return Error(c, fiber.StatusBadRequest, "unreadable file: "+err.Error())
	}

	normalized := services.NormalizeTable(table)

	runID := uuid.NewString()
	log.Printf("import %s: store %s, file %q, %d rows, %d records", runID, storeID, fileHeader.Filename, normalized.RowsRead, len(normalized.Records))

	api := h.api.ForToken(middleware.GetSessionToken(c))
	uploader := services.NewBatchUploader(api, h.cfg.UploadChunkSize, h.cfg.ChunkTimeout)
	outcome := uploader.Upload(c.Context(), storeID, normalized.Records, func(completed, total, chunk, totalChunks int) {
		log.Printf("import %s: chunk %d/%d (%d/%d items)", runID, chunk, totalChunks, completed, total)
	})

	summary := models.ImportRunSummary{
		RunID:         runID,
		FileName:      fileHeader.Filename,
		Dialect:       dialect,
		RowsRead:      normalized.RowsRead,
		RecordsParsed: len(normalized.Records),
		RowsSkipped:   normalized.RowsSkipped,
		ChunkSize:     h.cfg.UploadChunkSize,
		Outcome:       outcome,
	}

	if h.archiver != nil && outcome.FailedItems > 0 {
		key, err := h.archiver.ArchiveRunReport(c.Context(), runID, outcome)
		if err != nil {
			log.Printf("Warning: failed to archive report for run %s: %v", runID, err)
		} else {
			summary.ReportKey = key
		}
	}

	return Success(c, summary)
}
