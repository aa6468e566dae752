package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/medhive/pharmacy-admin/internal/models"
)

const (
	// DefaultChunkSize balances request size against per-request timeout
	// risk; deployments tune it between 500 and 2000.
	DefaultChunkSize = 500

	// DefaultChunkTimeout is deliberately longer than ordinary request
	// timeouts because the remote side performs bulk catalog reconciliation.
	DefaultChunkTimeout = 2 * time.Minute
)

// ProgressFunc is invoked after every chunk settles with (items completed so
// far, total items, current 1-based chunk, total chunk count), plus one final
// call with completed == total.
type ProgressFunc func(completed, total, chunk, totalChunks int)

// BulkIngestor submits one chunk of records to the remote catalog.
type BulkIngestor interface {
	BulkIngest(ctx context.Context, storeID string, items []models.InventoryRecord) (*models.BulkIngestResponse, error)
}

// BatchUploader drives the upload phase of a run: it partitions the record
// sequence into bounded chunks, submits them strictly sequentially, and
// aggregates per-chunk and per-item results into one UploadOutcome.
type BatchUploader struct {
	api          BulkIngestor
	chunkSize    int
	chunkTimeout time.Duration
}

func NewBatchUploader(api BulkIngestor, chunkSize int, chunkTimeout time.Duration) *BatchUploader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkTimeout <= 0 {
		chunkTimeout = DefaultChunkTimeout
	}
	return &BatchUploader{
		api:          api,
		chunkSize:    chunkSize,
		chunkTimeout: chunkTimeout,
	}
}

// Upload submits records for storeID and returns the aggregated outcome. It
// never returns an error: chunk failures are recorded in the outcome, not
// thrown, so previously uploaded batches are never discarded. No chunk is
// retried; re-running the file is the caller's recovery path.
//
// Cancellation is cooperative and checked between chunks: a cancelled
// context stops further submissions and counts every unsubmitted record as
// failed, still returning a fully populated outcome.
func (u *BatchUploader) Upload(ctx context.Context, storeID string, records []models.InventoryRecord, progress ProgressFunc) *models.UploadOutcome {
	total := len(records)
	outcome := &models.UploadOutcome{TotalItems: total}

	if total == 0 {
		outcome.Success = true
		if progress != nil {
			progress(0, 0, 0, 0)
		}
		return outcome
	}

	totalChunks := (total + u.chunkSize - 1) / u.chunkSize

	for i := 0; i < totalChunks; i++ {
		start := i * u.chunkSize
		end := start + u.chunkSize
		if end > total {
			end = total
		}
		chunk := records[start:end]

		if err := ctx.Err(); err != nil {
			outcome.FailedItems += total - start
			outcome.Errors = append(outcome.Errors, models.UploadError{
				ErrorMessage: fmt.Sprintf("upload cancelled before chunk %d of %d: %v", i+1, totalChunks, err),
			})
			break
		}

		chunkCtx, cancel := context.WithTimeout(ctx, u.chunkTimeout)
		resp, err := u.api.BulkIngest(chunkCtx, storeID, chunk)
		cancel()

		if err != nil {
			// The whole chunk counts as failed; one synthetic error keeps
			// the accounting instead of silently dropping the chunk.
			log.Printf("upload: chunk %d of %d failed for store %s: %v", i+1, totalChunks, storeID, err)
			outcome.FailedItems += len(chunk)
			outcome.Errors = append(outcome.Errors, models.UploadError{
				ErrorMessage: fmt.Sprintf("chunk %d of %d failed: %v", i+1, totalChunks, err),
			})
		} else {
			outcome.NewMedicinesAdded += resp.NewMedicinesAdded
			outcome.ExistingMedicinesUpdated += resp.ExistingMedicinesUpdated
			outcome.InventoryItemsCreated += resp.InventoryItemsCreated
			outcome.InventoryItemsUpdated += resp.InventoryItemsUpdated
			outcome.FailedItems += resp.FailedItems
			outcome.Errors = append(outcome.Errors, resp.Errors...)
		}

		if progress != nil {
			progress(end, total, i+1, totalChunks)
		}
	}

	if progress != nil {
		progress(total, total, totalChunks, totalChunks)
	}

	outcome.Success = outcome.FailedItems == 0
	return outcome
}
