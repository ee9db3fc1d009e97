package indexer

import (
	"reflect"
	"testing"
)

func TestOutlineAuditor_Audit(t *testing.T) {
	auditor := NewOutlineAuditor()

	tests := []struct {
		name string
		raw  string
		want []OutlineMismatch
	}{
		{
			name: "clean document",
			raw:  "# Title\n\n## Setup\n\nText.\n\n### Details\n\nMore text.\n",
			want: nil,
		},
		{
			name: "comment inside fenced code",
			raw:  "# T\n\n## Setup\n\n```sh\n## install\nnpm i\n```\n\n### Next\n",
			want: []OutlineMismatch{
				{Line: 6, Level: 2, Text: "install", ID: "heading-2", Reason: ReasonNotHeading},
			},
		},
		{
			name: "setext heading is missing from outline",
			raw:  "Title\n=====\n\nSection\n-------\n\ntext\n",
			want: []OutlineMismatch{
				{Line: 4, Level: 2, Text: "Section", Reason: ReasonMissing},
			},
		},
		{
			name: "deep headings are not reported",
			raw:  "## A\n\n#### Deep\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := auditor.Audit([]byte(tt.raw))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Audit() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOutlineAuditor_OrderedByLine(t *testing.T) {
	raw := "Intro\n-----\n\n```\n## fenced\n```\n\nOther\n-----\n"

	got := NewOutlineAuditor().Audit([]byte(raw))
	if len(got) != 3 {
		t.Fatalf("Audit() returned %d mismatches, want 3: %+v", len(got), got)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Line > got[i].Line {
			t.Errorf("mismatches not ordered by line: %+v", got)
		}
	}
	if got[1].Reason != ReasonNotHeading || got[1].Line != 5 {
		t.Errorf("got[1] = %+v, want fenced heading on line 5", got[1])
	}
}

func TestLineIndex(t *testing.T) {
	idx := newLineIndex([]byte("a\nb\nc"))

	tests := []struct {
		offset int
		want   int
	}{
		{offset: 0, want: 1},
		{offset: 1, want: 1},
		{offset: 2, want: 2},
		{offset: 4, want: 3},
	}

	for _, tt := range tests {
		if got := idx.lineAt(tt.offset); got != tt.want {
			t.Errorf("lineAt(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}
