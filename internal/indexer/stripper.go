package indexer

import (
	"regexp"
	"strings"
)

// spaceClass matches one whitespace character of the set the search UI splits
// on: ASCII whitespace including \v, no-break spaces, the U+2000 block, line and
// paragraph separators and the BOM. Go's \s is ASCII-only, so the class is spelled out.
const spaceClass = `[\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}]`

// stripRule is one step of the markup stripping pipeline.
type stripRule struct {
	name    string
	pattern *regexp.Regexp
	replace string
}

// stripRules run in this order. Each rule assumes the previous ones already ran:
// code is removed before header markers so that "#" inside code never counts,
// and links are unwrapped before emphasis so that "_" in URLs is already gone.
var stripRules = []stripRule{
	// "```" then the shortest run of any characters, newlines included, then "```".
	{name: "fenced-code", pattern: regexp.MustCompile("(?s)```.*?```"), replace: ""},
	// "`", any non-backtick characters (newlines included), "`".
	{name: "inline-code", pattern: regexp.MustCompile("`[^`]*`"), replace: ""},
	// At the start of a line: one or more "#" and any whitespace after them.
	{name: "header-marker", pattern: regexp.MustCompile(`(?m)^#+` + spaceClass + `*`), replace: ""},
	// "[text](target)" where text has no "]" and target has no ")"; keeps text.
	{name: "link", pattern: regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`), replace: "${1}"},
	// One or two of "*"/"_", a run without "*"/"_", one or two of "*"/"_"; keeps the run.
	{name: "emphasis", pattern: regexp.MustCompile(`[*_]{1,2}([^*_]*)[*_]{1,2}`), replace: "${1}"},
	// Any whitespace run, newlines included, becomes a single space.
	{name: "whitespace", pattern: regexp.MustCompile(spaceClass + `+`), replace: " "},
}

// StripMarkup converts raw Markdown into plain text for full-text search.
// Code is dropped, link and emphasis wrappers are removed and whitespace is collapsed.
// The rules are re-applied until the text stops changing, so stripping is idempotent
// even for unbalanced markup; well-formed documents settle after the first pass.
func StripMarkup(raw string) string {
	text := stripOnce(raw)
	for {
		next := stripOnce(text)
		if next == text {
			return text
		}
		text = next
	}
}

func stripOnce(s string) string {
	for _, rule := range stripRules {
		s = rule.pattern.ReplaceAllString(s, rule.replace)
	}
	// Only ASCII spaces remain as whitespace after the last rule.
	return strings.Trim(s, " ")
}
