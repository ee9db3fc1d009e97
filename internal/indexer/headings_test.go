package indexer

import (
	"reflect"
	"testing"
)

func TestExtractHeadings(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Heading
	}{
		{
			name: "empty document",
			raw:  "",
			want: []Heading{},
		},
		{
			name: "no headings",
			raw:  "Just a paragraph.\n\nAnother one.",
			want: []Heading{},
		},
		{
			name: "h1 dropped and h3 counter resets on next h2",
			raw:  "# Title\n## A\n### B\n### C\n## D\n",
			want: []Heading{
				{Text: "A", Level: 2, ID: "heading-1"},
				{Text: "B", Level: 3, ID: "heading-1-1"},
				{Text: "C", Level: 3, ID: "heading-1-2"},
				{Text: "D", Level: 2, ID: "heading-2"},
			},
		},
		{
			name: "levels four and deeper are excluded and do not move counters",
			raw:  "## A\n#### Deep\n##### Deeper\n### B\n",
			want: []Heading{
				{Text: "A", Level: 2, ID: "heading-1"},
				{Text: "B", Level: 3, ID: "heading-1-1"},
			},
		},
		{
			name: "h3 before any h2",
			raw:  "### Early\n## First\n",
			want: []Heading{
				{Text: "Early", Level: 3, ID: "heading-0-1"},
				{Text: "First", Level: 2, ID: "heading-1"},
			},
		},
		{
			name: "identical text gets positional ids",
			raw:  "## Example\n### Example\n## Example\n",
			want: []Heading{
				{Text: "Example", Level: 2, ID: "heading-1"},
				{Text: "Example", Level: 3, ID: "heading-1-1"},
				{Text: "Example", Level: 2, ID: "heading-2"},
			},
		},
		{
			name: "marker needs whitespace",
			raw:  "##NoSpace\n#hashtag\n",
			want: []Heading{},
		},
		{
			name: "indented marker is not a heading",
			raw:  "  ## Indented\n",
			want: []Heading{},
		},
		{
			name: "crlf line endings",
			raw:  "## A\r\n### B\r\n",
			want: []Heading{
				{Text: "A", Level: 2, ID: "heading-1"},
				{Text: "B", Level: 3, ID: "heading-1-1"},
			},
		},
		{
			name: "inline markup is kept in heading text",
			raw:  "## Using `load` with **care**  \n",
			want: []Heading{
				{Text: "Using `load` with **care**  ", Level: 2, ID: "heading-1"},
			},
		},
		{
			name: "text may start with a hash",
			raw:  "## # hash\n",
			want: []Heading{
				{Text: "# hash", Level: 2, ID: "heading-1"},
			},
		},
		{
			name: "whitespace after marker may span blank lines",
			raw:  "##\n\nText\n",
			want: []Heading{
				{Text: "Text", Level: 2, ID: "heading-1"},
			},
		},
		{
			name: "lines inside fenced code count",
			raw:  "## Install\n```sh\n## comment\n```\n### After\n",
			want: []Heading{
				{Text: "Install", Level: 2, ID: "heading-1"},
				{Text: "comment", Level: 2, ID: "heading-2"},
				{Text: "After", Level: 3, ID: "heading-2-1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractHeadings(tt.raw)
			if got == nil {
				t.Fatal("ExtractHeadings() returned nil, want non-nil slice")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractHeadings() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractHeadings_CountersAreScopedToDocument(t *testing.T) {
	first := ExtractHeadings("## A\n## B\n")
	second := ExtractHeadings("## C\n")

	if len(first) != 2 || first[1].ID != "heading-2" {
		t.Fatalf("first document outline = %+v", first)
	}
	if len(second) != 1 || second[0].ID != "heading-1" {
		t.Errorf("second document outline = %+v, want numbering to restart", second)
	}
}
