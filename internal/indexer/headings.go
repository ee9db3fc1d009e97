package indexer

import (
	"regexp"
	"strconv"
	"strings"
)

// headingPattern matches "#"s at the start of a line, whitespace (which may run
// over blank lines), then the rest of a line. "\r", U+2028 and U+2029
// end the heading text as well as "\n".
var headingPattern = regexp.MustCompile(`(?m)^(#+)` + spaceClass + `+([^\n\r\x{2028}\x{2029}]+)`)

// outlineEntry is a heading together with the byte offset of its marker.
type outlineEntry struct {
	Heading
	offset int
}

// ExtractHeadings returns the level-2 and level-3 headings of a raw document in
// document order, numbered by position.
//
// A level-2 heading gets "heading-N" where N counts level-2 headings so far.
// A level-3 heading gets "heading-N-M" where M counts level-3 headings since
// the last level-2 heading. Level-1 headings are the page title and are dropped.
// Deeper levels are left out of the outline entirely; published anchor links
// depend on this exact numbering.
func ExtractHeadings(raw string) []Heading {
	entries := scanOutline(raw)
	headings := make([]Heading, len(entries))
	for i, e := range entries {
		headings[i] = e.Heading
	}
	return headings
}

// scanOutline is line based and does not know about code fences; a "# comment"
// line in a fenced shell snippet counts as a heading. OutlineAuditor reports those.
func scanOutline(raw string) []outlineEntry {
	entries := []outlineEntry{}
	h2Index, h3Index := 0, 0

	for _, loc := range headingPattern.FindAllStringSubmatchIndex(raw, -1) {
		level := loc[3] - loc[2]
		var id string
		switch level {
		case 2:
			h2Index++
			h3Index = 0
			id = "heading-" + strconv.Itoa(h2Index)
		case 3:
			h3Index++
			id = "heading-" + strconv.Itoa(h2Index) + "-" + strconv.Itoa(h3Index)
		default:
			continue
		}

		// Text is the match without its marker and all whitespace after it.
		text := strings.TrimLeftFunc(raw[loc[3]:loc[1]], isSpace)
		entries = append(entries, outlineEntry{
			Heading: Heading{Text: text, Level: level, ID: id},
			offset:  loc[0],
		})
	}
	return entries
}

// isSpace reports whether r matches spaceClass.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0x00A0, 0x1680, 0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF:
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}
