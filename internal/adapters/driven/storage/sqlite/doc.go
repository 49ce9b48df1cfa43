// Package sqlite provides the durable document registry backed by
// SQLite via the cgo-free modernc.org/sqlite driver.
//
// The store holds document metadata (filename, content hash, ingestion
// status, chunk count) and the chunks themselves, including their
// embedding vectors as little-endian float32 blobs. Deleting a document
// cascades to its chunks at the schema level.
package sqlite
