// Package storage はGoogle Cloud Storageを使用した処理済み画像のアップロードを提供します。
package storage

import (
	"context"
	"fmt"
	"os"

	gstorage "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// GCSUploader はGoogle Cloud Storageバケットへ処理済み画像をアップロードします。
type GCSUploader struct {
	client *gstorage.Client
	bucket string
}

// NewGCSUploader はADCを使用してGCSUploaderの新しいインスタンスを生成します。
// バケット名は環境変数 PROCESSED_IMAGE_BUCKET から取得します。
func NewGCSUploader(ctx context.Context) (*GCSUploader, error) {
	bucket := os.Getenv("PROCESSED_IMAGE_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("PROCESSED_IMAGE_BUCKET is not set")
	}
	client, err := gstorage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSUploader{client: client, bucket: bucket}, nil
}

// Close はストレージクライアントを解放します。
func (u *GCSUploader) Close() error {
	return u.client.Close()
}

// Upload は画像バイト列をバケットに書き込み、公開URLを返します。
// オブジェクト名は衝突を避けるためUUIDで生成します。
func (u *GCSUploader) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	name := fmt.Sprintf("processed/%s.webp", uuid.NewString())

	w := u.client.Bucket(u.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=86400"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, name), nil
}
