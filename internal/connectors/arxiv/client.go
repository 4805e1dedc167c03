// Package arxiv fetches and filters paper records from the arXiv export API
// and from bulk metadata snapshots.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
)

// Default client configuration values. The arXiv API terms of use ask for
// no more than one request every three seconds.
const (
	DefaultBaseURL   = "http://export.arxiv.org/api/query"
	DefaultPageSize  = 100
	DefaultTimeout   = 30 * time.Second
	requestInterval  = 3 * time.Second
	publishedLayout  = "2006-01-02T15:04:05Z"
	publishedDateFmt = "2006-01-02"
)

// ClientConfig holds configuration for the arXiv API client.
type ClientConfig struct {
	// BaseURL is the export API query endpoint (default: arXiv's export host).
	BaseURL string

	// PageSize is the number of results fetched per request (default: 100).
	PageSize int

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration
}

// Client queries the arXiv Atom export API.
type Client struct {
	client   *http.Client
	baseURL  string
	pageSize int
	limiter  *rate.Limiter
}

// atomFeed is the subset of the Atom response the client consumes.
type atomFeed struct {
	XMLName      xml.Name    `xml:"feed"`
	TotalResults int         `xml:"totalResults"`
	Entries      []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title      string         `xml:"title"`
	Summary    string         `xml:"summary"`
	Published  string         `xml:"published"`
	Authors    []atomAuthor   `xml:"author"`
	Categories []atomCategory `xml:"category"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

// NewClient creates a new arXiv API client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client:   &http.Client{Timeout: cfg.Timeout},
		baseURL:  cfg.BaseURL,
		pageSize: cfg.PageSize,
		limiter:  rate.NewLimiter(rate.Every(requestInterval), 1),
	}
}

// Fetch retrieves up to maxResults papers matching the search query,
// paging through the API and respecting the rate limit between requests.
func (c *Client) Fetch(ctx context.Context, query string, maxResults int) ([]domain.PaperRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty search query", domain.ErrInvalidInput)
	}
	if maxResults <= 0 {
		return nil, fmt.Errorf("%w: max results must be positive", domain.ErrInvalidInput)
	}

	var papers []domain.PaperRecord
	for start := 0; start < maxResults; start += c.pageSize {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		count := c.pageSize
		if remaining := maxResults - start; remaining < count {
			count = remaining
		}

		feed, err := c.fetchPage(ctx, query, start, count)
		if err != nil {
			return nil, err
		}
		if len(feed.Entries) == 0 {
			break
		}

		for _, entry := range feed.Entries {
			papers = append(papers, entryToRecord(entry))
		}

		if start+len(feed.Entries) >= feed.TotalResults {
			break
		}
	}

	return papers, nil
}

func (c *Client) fetchPage(ctx context.Context, query string, start, count int) (*atomFeed, error) {
	params := url.Values{}
	params.Set("search_query", query)
	params.Set("start", fmt.Sprintf("%d", start))
	params.Set("max_results", fmt.Sprintf("%d", count))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"?"+params.Encode(),
		http.NoBody,
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: arxiv request failed: %v", domain.ErrDataSource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: arxiv API returned status %d", domain.ErrDataSource, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrDataSource, err)
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("%w: parse atom feed: %v", domain.ErrDataSource, err)
	}
	return &feed, nil
}

// entryToRecord converts an Atom entry into a paper record, normalising
// whitespace in title and abstract.
func entryToRecord(entry atomEntry) domain.PaperRecord {
	record := domain.PaperRecord{
		Title:    collapseWhitespace(entry.Title),
		Abstract: collapseWhitespace(entry.Summary),
	}

	var names []string
	for _, a := range entry.Authors {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	record.Authors = strings.Join(names, ", ")

	var cats []string
	for _, c := range entry.Categories {
		if c.Term != "" {
			cats = append(cats, c.Term)
		}
	}
	record.Categories = strings.Join(cats, " ")

	if ts, err := time.Parse(publishedLayout, entry.Published); err == nil {
		record.Published = ts.Format(publishedDateFmt)
	}

	return record
}

// collapseWhitespace joins line-wrapped Atom text into a single line.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
