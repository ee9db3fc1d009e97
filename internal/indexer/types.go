package indexer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"docs-search-index/internal/catalog"
)

// Heading is one entry of a document outline.
type Heading struct {
	Text  string `json:"text"`
	Level int    `json:"level"` // 2 or 3
	ID    string `json:"id"`    // Positional anchor id, e.g. "heading-2-1"
}

// Record is the search index entry for one document.
// Field order is the order of keys in the artifact.
type Record struct {
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Headings        []string  `json:"headings"`
	HeadingsWithIDs []Heading `json:"headingsWithIds"`
	SearchText      string    `json:"searchText"`
}

// NewRecord assembles a record for entry from its stripped content and outline.
// Headings and SearchText are always derived here, never set independently.
func NewRecord(entry catalog.Entry, content string, headings []Heading) Record {
	withIDs := make([]Heading, len(headings))
	copy(withIDs, headings)

	texts := make([]string, len(headings))
	for i, h := range headings {
		texts[i] = h.Text
	}

	return Record{
		Slug:            entry.Slug,
		Title:           entry.Title,
		Content:         content,
		Headings:        texts,
		HeadingsWithIDs: withIDs,
		SearchText:      BuildSearchText(entry.Title, texts, content),
	}
}

// BuildSearchText joins title, heading texts and content with single spaces and lowercases the result.
func BuildSearchText(title string, headings []string, content string) string {
	parts := make([]string, 0, len(headings)+2)
	parts = append(parts, title)
	parts = append(parts, headings...)
	parts = append(parts, content)
	return lower(strings.Join(parts, " "))
}

// lower applies Unicode full lowercase mapping, including Greek final sigma,
// which is what the search UI does to user queries.
func lower(s string) string {
	return cases.Lower(language.Und, cases.HandleFinalSigma(true)).String(s)
}

// EntryStatus is the outcome of processing one catalog entry.
type EntryStatus string

const (
	StatusIndexed EntryStatus = "indexed"
	StatusSkipped EntryStatus = "skipped"
)

// EntryResult records what happened to one catalog entry during a build.
type EntryResult struct {
	Entry  catalog.Entry
	Status EntryStatus
	Record *Record // Set when Status is StatusIndexed
	Err    error   // Set when Status is StatusSkipped

	// OutlineMismatches lists headings a CommonMark parse disagrees with.
	OutlineMismatches []OutlineMismatch
}

// Report collects one result per catalog entry, in catalog order.
type Report struct {
	Results []EntryResult
}

// Records returns the records of indexed entries in catalog order.
// The returned slice is never nil.
func (r *Report) Records() []Record {
	records := make([]Record, 0, len(r.Results))
	for _, res := range r.Results {
		if res.Status == StatusIndexed && res.Record != nil {
			records = append(records, *res.Record)
		}
	}
	return records
}

// Skipped returns the results of entries that contributed no record.
func (r *Report) Skipped() []EntryResult {
	var skipped []EntryResult
	for _, res := range r.Results {
		if res.Status == StatusSkipped {
			skipped = append(skipped, res)
		}
	}
	return skipped
}
