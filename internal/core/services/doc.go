// Package services implements the core orchestration of the retrieval
// pipeline: ingestion, retrieval, answer composition and registry reads.
package services
