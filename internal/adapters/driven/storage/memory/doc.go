// Package memory provides an in-memory document store, used in tests
// and as a fallback when no durable storage is configured.
package memory
