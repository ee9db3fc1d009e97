package indexer

import (
	"bytes"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// MismatchReason explains why an outline entry disagrees with a CommonMark parse.
type MismatchReason string

const (
	// ReasonNotHeading marks an outline entry whose line is not a CommonMark heading,
	// typically a "# comment" inside a fenced code block.
	ReasonNotHeading MismatchReason = "not-a-commonmark-heading"
	// ReasonMissing marks a CommonMark level-2/3 heading the outline does not contain,
	// e.g. a setext heading or an indented "  ## Title".
	ReasonMissing MismatchReason = "missing-from-outline"
)

// OutlineMismatch is one disagreement between ExtractHeadings and a CommonMark parse.
type OutlineMismatch struct {
	Line   int    // 1-based line of the heading marker or text
	Level  int
	Text   string
	ID     string // Outline id; empty for ReasonMissing
	Reason MismatchReason
}

// OutlineAuditor cross-checks extracted outlines against goldmark's CommonMark parser.
// It only reports; records are never changed by an audit.
type OutlineAuditor struct {
	parser goldmark.Markdown
}

// NewOutlineAuditor creates a new outline auditor.
func NewOutlineAuditor() *OutlineAuditor {
	return &OutlineAuditor{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
	}
}

// cmHeading is a heading found by the CommonMark parser.
type cmHeading struct {
	level int
	text  string
}

// Audit returns the mismatches between the outline of raw and its CommonMark
// headings, ordered by line.
func (a *OutlineAuditor) Audit(raw []byte) []OutlineMismatch {
	lines := newLineIndex(raw)
	parsed := a.commonMarkHeadings(raw, lines)

	var mismatches []OutlineMismatch
	seen := make(map[int]bool)
	for _, e := range scanOutline(string(raw)) {
		line := lines.lineAt(e.offset)
		seen[line] = true
		if h, ok := parsed[line]; ok && h.level == e.Level {
			continue
		}
		mismatches = append(mismatches, OutlineMismatch{
			Line:   line,
			Level:  e.Level,
			Text:   e.Text,
			ID:     e.ID,
			Reason: ReasonNotHeading,
		})
	}

	for line, h := range parsed {
		if seen[line] || (h.level != 2 && h.level != 3) {
			continue
		}
		mismatches = append(mismatches, OutlineMismatch{
			Line:   line,
			Level:  h.level,
			Text:   h.text,
			Reason: ReasonMissing,
		})
	}

	sort.Slice(mismatches, func(i, j int) bool {
		return mismatches[i].Line < mismatches[j].Line
	})
	return mismatches
}

// commonMarkHeadings walks the AST and returns headings keyed by the line their text starts on.
// Empty headings have no text segment and cannot be placed, so they are left out.
func (a *OutlineAuditor) commonMarkHeadings(raw []byte, lines lineIndex) map[int]cmHeading {
	doc := a.parser.Parser().Parse(text.NewReader(raw))
	headings := make(map[int]cmHeading)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if heading.Lines().Len() == 0 {
			return ast.WalkSkipChildren, nil
		}

		line := lines.lineAt(heading.Lines().At(0).Start)
		headings[line] = cmHeading{
			level: heading.Level,
			text:  extractTextFromNode(heading, raw),
		}
		return ast.WalkSkipChildren, nil
	})

	return headings
}

// extractTextFromNode extracts text content from a node and its children.
func extractTextFromNode(n ast.Node, content []byte) string {
	var textBuilder strings.Builder

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := node.(type) {
		case *ast.Text:
			textBuilder.Write(v.Segment.Value(content))
			if v.SoftLineBreak() {
				textBuilder.WriteByte(' ')
			}
		case *ast.String:
			textBuilder.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(textBuilder.String())
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex []int

func newLineIndex(raw []byte) lineIndex {
	idx := lineIndex{}
	for i := 0; ; {
		j := bytes.IndexByte(raw[i:], '\n')
		if j < 0 {
			return idx
		}
		i += j + 1
		idx = append(idx, i)
	}
}

// lineAt returns the line containing offset.
func (idx lineIndex) lineAt(offset int) int {
	// idx holds the start offset of lines 2, 3, ...
	return sort.Search(len(idx), func(i int) bool { return idx[i] > offset }) + 1
}
