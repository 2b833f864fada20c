// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the operations
// needed to pick up raw vendor payloads: checking bucket existence, listing and downloading
// payload objects, and moving them aside once loaded. This abstraction supports both AWS S3
// and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	keys, err := storage.ListKeys(ctx, client, "payloads", "incoming/", ".json")
//	data, err := storage.ReadObject(ctx, client, "payloads", keys[0])
package storage
