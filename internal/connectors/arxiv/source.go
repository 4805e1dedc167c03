package arxiv

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
	"github.com/veritas-labs/paperchat-cli/internal/core/ports/driven"
	"github.com/veritas-labs/paperchat-cli/internal/logger"
)

// Ensure PaperSource implements the interface.
var _ driven.DocumentSource = (*PaperSource)(nil)

// PaperSource loads normalised paper documents from a JSON Lines file
// previously produced by a fetch.
type PaperSource struct {
	path       string
	normaliser Normaliser
}

// Normaliser converts paper records into documents. It is satisfied by
// the arXiv normaliser package.
type Normaliser interface {
	Normalise(rec domain.PaperRecord) (domain.Document, error)
}

// NewPaperSource creates a document source reading paper records from path.
func NewPaperSource(path string, n Normaliser) *PaperSource {
	return &PaperSource{path: path, normaliser: n}
}

// Name identifies the source in logs and error messages.
func (s *PaperSource) Name() string {
	return fmt.Sprintf("arxiv papers (%s)", s.path)
}

// Load reads and normalises all paper records from the source file.
// A missing file is not an error: the source is simply empty, and a
// warning is logged so a mistyped path is still visible.
func (s *PaperSource) Load(_ context.Context) ([]domain.Document, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		logger.Warn("Paper file %s not found, skipping source", s.path)
		return nil, nil
	}

	records, err := ReadRecords(s.path)
	if err != nil {
		return nil, err
	}

	var docs []domain.Document
	for _, rec := range records {
		doc, err := s.normaliser.Normalise(rec)
		if err != nil {
			logger.Warn("Skipping paper record: %v", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// ReadRecords reads paper records from a JSON Lines file. Unlike bulk
// snapshot reads, a malformed line here means the file we wrote ourselves
// is damaged, so it fails the read.
func ReadRecords(path string) ([]domain.PaperRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open papers file: %v", domain.ErrDataSource, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxSnapshotLine)

	var records []domain.PaperRecord
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec domain.PaperRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("%w: parse papers file %s: %v", domain.ErrDataSource, path, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read papers file %s: %v", domain.ErrDataSource, path, err)
	}
	return records, nil
}

// WriteRecords writes paper records to a JSON Lines file, one record per
// line, replacing any existing file.
func WriteRecords(path string, records []domain.PaperRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create papers file: %w", err)
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			f.Close()
			return fmt.Errorf("write paper record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush papers file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close papers file: %w", err)
	}
	return nil
}
