// Package storage is the object storage layer for source extracts and run reports.
//
// Client is the narrow MinIO interface the engine needs; NewClient wraps minio-go with
// strict transport timeouts and works against AWS S3 and self-hosted MinIO alike. The mocks
// subpackage provides a testify mock of Client.
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
//	keys, err := storage.List(ctx, client, cfg.Storage.Bucket, "reports/")
package storage
