package arxiv

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
	"github.com/veritas-labs/paperchat-cli/internal/logger"
)

// maxSnapshotLine bounds a single JSONL record. Bulk snapshot lines can be
// large but a full abstract never approaches a megabyte.
const maxSnapshotLine = 1 << 20

// snapshotRecord is the raw shape of one line in a bulk metadata snapshot.
type snapshotRecord struct {
	Title         string     `json:"title"`
	Abstract      string     `json:"abstract"`
	Categories    string     `json:"categories"`
	UpdateDate    string     `json:"update_date"`
	AuthorsParsed [][]string `json:"authors_parsed"`
}

// ReadSnapshot parses a bulk metadata snapshot in JSON Lines format.
// Malformed lines are logged and skipped rather than failing the whole read.
func ReadSnapshot(path string) ([]domain.PaperRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open snapshot: %v", domain.ErrDataSource, err)
	}
	defer f.Close()

	records, err := parseSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("%w: read snapshot %s: %v", domain.ErrDataSource, path, err)
	}
	return records, nil
}

func parseSnapshot(r io.Reader) ([]domain.PaperRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxSnapshotLine)

	var records []domain.PaperRecord
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw snapshotRecord
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			logger.Warn("Skipping malformed snapshot line %d: %v", lineNo, err)
			continue
		}

		records = append(records, domain.PaperRecord{
			Title:      collapseWhitespace(raw.Title),
			Abstract:   collapseWhitespace(raw.Abstract),
			Categories: raw.Categories,
			Authors:    joinParsedAuthors(raw.AuthorsParsed),
			Published:  raw.UpdateDate,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// joinParsedAuthors converts the snapshot's [last, first, suffix] author
// tuples into a comma-separated list of "First Last" display names.
func joinParsedAuthors(parsed [][]string) string {
	var authors []string
	for _, parts := range parsed {
		if len(parts) == 0 {
			continue
		}
		last := strings.TrimSpace(parts[0])
		first := ""
		if len(parts) > 1 {
			first = strings.TrimSpace(parts[1])
		}
		name := strings.TrimSpace(first + " " + last)
		if name != "" {
			authors = append(authors, name)
		}
	}
	return strings.Join(authors, ", ")
}
