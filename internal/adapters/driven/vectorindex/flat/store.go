package flat

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
	"github.com/veritas-labs/paperchat-cli/internal/core/ports/driven"
)

// indexFileName is the SQLite file inside the index directory. The file
// holds a meta table (dimensionality, entry count) and an insertion-ordered
// chunk table with vectors as little-endian float32 BLOBs.
const indexFileName = "index.db"

const schema = `
CREATE TABLE index_meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE chunks (
	seq              INTEGER PRIMARY KEY AUTOINCREMENT,
	id               TEXT NOT NULL,
	document_id      TEXT NOT NULL,
	position         INTEGER NOT NULL,
	content          TEXT NOT NULL,
	title            TEXT NOT NULL,
	source_type      TEXT NOT NULL,
	primary_category TEXT NOT NULL DEFAULT '',
	published        TEXT NOT NULL DEFAULT '',
	authors          TEXT NOT NULL DEFAULT '',
	embedding        BLOB NOT NULL
);`

// Exists reports whether dir contains a saved index file.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, indexFileName))
	return err == nil
}

// Save writes the full index state to the index directory, replacing any
// previous contents. The new state is written to a temporary file and
// renamed into place so a crash mid-save never leaves a partial index.
func (x *Index) Save(ctx context.Context) error {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if err := os.MkdirAll(x.dir, 0o700); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	final := filepath.Join(x.dir, indexFileName)
	tmp := final + ".tmp"
	if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale temp index: %w", err)
	}

	if err := x.writeFile(ctx, tmp); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing index file: %w", err)
	}
	return nil
}

func (x *Index) writeFile(ctx context.Context, path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("creating index file: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("writing index schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting index transaction: %w", err)
	}
	defer tx.Rollback()

	metaStmt := `INSERT INTO index_meta (key, value) VALUES (?, ?)`
	if _, err := tx.ExecContext(ctx, metaStmt, "dimensions", strconv.Itoa(x.dim)); err != nil {
		return fmt.Errorf("writing index meta: %w", err)
	}
	if _, err := tx.ExecContext(ctx, metaStmt, "count", strconv.Itoa(len(x.chunks))); err != nil {
		return fmt.Errorf("writing index meta: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, position, content, title, source_type, primary_category, published, authors, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer stmt.Close()

	for i := range x.chunks {
		c := &x.chunks[i]
		_, err := stmt.ExecContext(ctx,
			c.ID, c.DocumentID, c.Position, c.Content,
			c.Meta.Title, string(c.Meta.SourceType), c.Meta.PrimaryCategory,
			c.Meta.Published, c.Meta.Authors,
			vectorToBlob(c.Embedding),
		)
		if err != nil {
			return fmt.Errorf("writing chunk %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing index: %w", err)
	}
	return nil
}

// Load reads a saved index from dir. A missing file is
// domain.ErrIndexNotFound; anything unreadable, or vectors that disagree
// with the recorded dimensionality, is domain.ErrIndexCorrupt.
func Load(ctx context.Context, dir string) (*Index, error) {
	path := filepath.Join(dir, indexFileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no index at %s", domain.ErrIndexNotFound, dir)
		}
		return nil, fmt.Errorf("checking index path: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", domain.ErrIndexCorrupt, path, err)
	}
	defer db.Close()

	dim, err := readDimensions(ctx, db)
	if err != nil {
		return nil, err
	}

	x := &Index{dir: dir, dim: dim}
	if err := x.readChunks(ctx, db); err != nil {
		return nil, err
	}
	return x, nil
}

func readDimensions(ctx context.Context, db *sql.DB) (int, error) {
	var raw string
	err := db.QueryRowContext(ctx, `SELECT value FROM index_meta WHERE key = 'dimensions'`).Scan(&raw)
	if err != nil {
		return 0, fmt.Errorf("%w: reading dimensionality: %v", domain.ErrIndexCorrupt, err)
	}
	dim, err := strconv.Atoi(raw)
	if err != nil || dim <= 0 {
		return 0, fmt.Errorf("%w: recorded dimensionality %q is invalid", domain.ErrIndexCorrupt, raw)
	}
	return dim, nil
}

func (x *Index) readChunks(ctx context.Context, db *sql.DB) error {
	rows, err := db.QueryContext(ctx, `
		SELECT id, document_id, position, content, title, source_type, primary_category, published, authors, embedding
		FROM chunks ORDER BY seq ASC`)
	if err != nil {
		return fmt.Errorf("%w: reading chunks: %v", domain.ErrIndexCorrupt, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c          domain.Chunk
			sourceType string
			blob       []byte
		)
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.Position, &c.Content,
			&c.Meta.Title, &sourceType, &c.Meta.PrimaryCategory,
			&c.Meta.Published, &c.Meta.Authors, &blob); err != nil {
			return fmt.Errorf("%w: scanning chunk: %v", domain.ErrIndexCorrupt, err)
		}
		c.Meta.SourceType = domain.SourceType(sourceType)

		if len(blob) != x.dim*4 {
			return fmt.Errorf("%w: chunk %s vector has %d bytes, expected %d",
				domain.ErrIndexCorrupt, c.ID, len(blob), x.dim*4)
		}
		c.Embedding = blobToVector(blob)

		x.chunks = append(x.chunks, c)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: iterating chunks: %v", domain.ErrIndexCorrupt, err)
	}
	return nil
}

// vectorToBlob encodes a vector as little-endian float32 bytes.
func vectorToBlob(vec []float32) []byte {
	blob := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(blob[i*4:], math.Float32bits(v))
	}
	return blob
}

// blobToVector decodes little-endian float32 bytes back into a vector.
func blobToVector(blob []byte) []float32 {
	vec := make([]float32, len(blob)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vec
}

// Provider opens the durable index for build runs.
type Provider struct {
	// Dir is the index directory.
	Dir string

	// Dimensions is the embedding vector size for a fresh index.
	Dimensions int
}

// Ensure Provider implements the interface.
var _ driven.IndexProvider = (*Provider)(nil)

// Open loads the saved index for incremental extension, or returns a fresh
// empty index when rebuild is set or nothing is saved yet.
func (p *Provider) Open(ctx context.Context, rebuild bool) (driven.VectorIndex, error) {
	if !rebuild {
		idx, err := Load(ctx, p.Dir)
		if err == nil {
			if idx.Dimensions() != p.Dimensions {
				return nil, fmt.Errorf("%w: saved index has %d dimensions, embedder produces %d",
					domain.ErrEmbeddingDimension, idx.Dimensions(), p.Dimensions)
			}
			return idx, nil
		}
		if !errors.Is(err, domain.ErrIndexNotFound) {
			return nil, err
		}
	}
	return New(p.Dir, p.Dimensions)
}
