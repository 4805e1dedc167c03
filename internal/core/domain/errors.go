package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrConfiguration indicates invalid static settings, such as a chunk
	// overlap that is not smaller than the chunk size. Fatal at startup.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrIndexNotFound indicates the index path holds no saved index.
	// Fatal for query serving; remediation is running the ingest pipeline.
	ErrIndexNotFound = errors.New("vector index not found")

	// ErrIndexCorrupt indicates a saved index could not be read back, or
	// its stored vectors disagree with the recorded dimensionality.
	ErrIndexCorrupt = errors.New("vector index corrupt")

	// ErrEmbeddingDimension indicates an embedding whose length does not
	// match the index dimensionality. Fatal for the build run; index
	// integrity is never silently degraded.
	ErrEmbeddingDimension = errors.New("embedding dimension mismatch")

	// ErrNoDocuments indicates that no source yielded a single usable
	// document, so there is nothing to build an index from.
	ErrNoDocuments = errors.New("no documents loaded")

	// ErrDataSource indicates a raw record that cannot be normalised at
	// all. Callers log and skip the record.
	ErrDataSource = errors.New("unusable source record")

	// ErrInvalidAnswerLength indicates an answer length outside the
	// configured token budget map.
	ErrInvalidAnswerLength = errors.New("invalid answer length")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
