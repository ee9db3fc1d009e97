package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidCatalog is returned when a catalog fails validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Entry describes one document that belongs in the search index.
type Entry struct {
	Slug       string // URL-safe identifier, unique within a catalog
	Title      string // Display name shown by the search UI
	SourcePath string // Slash-separated path relative to the project root
}

// Default returns the documentation pages indexed by the site build.
// The order of the returned slice is the order of records in the artifact.
func Default() []Entry {
	return []Entry{
		page("basic-concepts", "Basic Concepts"),
		page("components", "Components"),
		page("configuration", "Configuration"),
		page("data-loading", "Data Loading"),
		page("installation", "Installation"),
		page("introduction", "Introduction"),
		page("project-structure", "Project Structure"),
		page("routing", "Routing"),
	}
}

// page builds an entry for a route page living at src/routes/<slug>/+page.md.
func page(slug, title string) Entry {
	return Entry{
		Slug:       slug,
		Title:      title,
		SourcePath: "src/routes/" + slug + "/+page.md",
	}
}

// Validate checks that every entry has a URL-safe, unique slug, a title and a source path.
func Validate(entries []Entry) error {
	seen := make(map[string]int, len(entries))
	for i, e := range entries {
		if !slugPattern.MatchString(e.Slug) {
			return fmt.Errorf("%w: entry %d has invalid slug %q", ErrInvalidCatalog, i, e.Slug)
		}
		if prev, ok := seen[e.Slug]; ok {
			return fmt.Errorf("%w: slug %q used by entries %d and %d", ErrInvalidCatalog, e.Slug, prev, i)
		}
		seen[e.Slug] = i

		if strings.TrimSpace(e.Title) == "" {
			return fmt.Errorf("%w: entry %q has no title", ErrInvalidCatalog, e.Slug)
		}
		if strings.TrimSpace(e.SourcePath) == "" {
			return fmt.Errorf("%w: entry %q has no source path", ErrInvalidCatalog, e.Slug)
		}
	}
	return nil
}
