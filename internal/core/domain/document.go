package domain

// SourceType tags the corpus a document came from.
// Citation formatting switches exhaustively on this type.
type SourceType string

const (
	// SourceArxivPaper is a paper record from the arXiv metadata corpus.
	SourceArxivPaper SourceType = "arxiv_paper"

	// SourceTranscript is a talk or interview transcript loaded from disk.
	SourceTranscript SourceType = "transcript"
)

// Metadata holds the typed per-document fields that are copied onto every
// chunk and later rendered into source citations.
type Metadata struct {
	// Title is the human-readable title. Never empty; normalisers fall
	// back to a placeholder when the record carries no title.
	Title string

	// SourceType identifies the originating corpus.
	SourceType SourceType

	// PrimaryCategory is the first arXiv category. Empty for transcripts.
	PrimaryCategory string

	// Published is the publication date string, if known.
	Published string

	// Authors is a comma-separated author list. Empty for transcripts.
	Authors string
}

// Document is the canonical representation after normalisation.
// Documents are transient: only their chunks are persisted.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Content is the full normalised text before chunking.
	Content string

	// Meta carries the source metadata inherited by every chunk.
	Meta Metadata
}

// Chunk is the atomic unit stored in the vector index and retrieved at
// query time. Chunks are never mutated after creation.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Meta is a verbatim copy of the parent document's metadata.
	Meta Metadata

	// Embedding is the vector representation used for similarity search.
	Embedding []float32
}

// ScoredChunk pairs a retrieved chunk with its similarity score.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// PaperRecord is one raw row of arXiv paper metadata, either fetched from
// the arXiv API or filtered out of a local metadata snapshot.
type PaperRecord struct {
	Title      string `json:"title"`
	Abstract   string `json:"abstract"`
	Categories string `json:"categories"`
	Authors    string `json:"authors"`
	Published  string `json:"published"`
}

// TranscriptFile is one raw transcript as read from disk.
type TranscriptFile struct {
	Path    string
	Content string
}
