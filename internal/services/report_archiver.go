package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/medhive/pharmacy-admin/internal/models"
)

// ReportArchiver writes per-run failure reports to S3-compatible storage so
// a manager can download what went wrong and re-run the corrected rows.
type ReportArchiver struct {
	client     *minio.Client
	bucketName string
	region     string
}

func NewReportArchiver(endpoint, accessKey, secretKey, bucketName, region string, useSSL bool) (*ReportArchiver, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	return &ReportArchiver{
		client:     client,
		bucketName: bucketName,
		region:     region,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
func (a *ReportArchiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = a.client.MakeBucket(ctx, a.bucketName, minio.MakeBucketOptions{
			Region: a.region,
		})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// ArchiveRunReport renders the run's error list as CSV and uploads it under
// runs/<runID>.csv, returning the object key.
func (a *ReportArchiver) ArchiveRunReport(ctx context.Context, runID string, outcome *models.UploadOutcome) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"serialNo", "productName", "errorMessage"}); err != nil {
		return "", fmt.Errorf("writing report header: %w", err)
	}
	for _, e := range outcome.Errors {
		serial := ""
		if e.SerialNo != nil {
			serial = strconv.Itoa(*e.SerialNo)
		}
		name := ""
		if e.ProductName != nil {
			name = *e.ProductName
		}
		if err := w.Write([]string{serial, name, e.ErrorMessage}); err != nil {
			return "", fmt.Errorf("writing report row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}

	key := fmt.Sprintf("runs/%s.csv", runID)
	_, err := a.client.PutObject(ctx, a.bucketName, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}

	return key, nil
}
