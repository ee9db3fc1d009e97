package storage

// PageRecord is one search index record as stored in the mirror.
type PageRecord struct {
	Slug       string
	Position   int // Catalog position among indexed pages (starts at 0)
	Title      string
	Content    string
	SearchText string
	Headings   []HeadingRecord
}

// HeadingRecord is one outline heading of a page.
type HeadingRecord struct {
	Position int // Index within the page outline (starts at 0)
	Level    int
	Text     string
	AnchorID string
}
