// Package export writes dashboard snapshots to Google Cloud Storage.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/dkapoor/netsales-dashboard/internal/pipeline"
)

// UploadSnapshot serializes the snapshot as JSON and writes it to the bucket
// under a date-partitioned object name. Returns the gs:// URI of the object.
func UploadSnapshot(ctx context.Context, bucketName string, snap pipeline.Snapshot) (string, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("UploadSnapshot: marshal snapshot: %w", err)
	}

	objectName := fmt.Sprintf("snapshots/%s/%s.json", time.Now().Format("2006/01/02"), uuid.New().String())

	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("UploadSnapshot: create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	wc := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = "application/json"

	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("UploadSnapshot: write object: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("UploadSnapshot: finalize upload: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", bucketName, objectName), nil
}
