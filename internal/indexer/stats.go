package indexer

import (
	"unicode/utf8"

	"docs-search-index/internal/artifact"
)

// BuildStats summarizes one build for logs and metrics.
type BuildStats struct {
	// Entries is the number of catalog entries processed.
	Entries int `json:"entries"`
	// Pages is the number of records written to the artifact.
	Pages int `json:"pages"`
	// Skipped is the number of entries whose source could not be read.
	Skipped int `json:"skipped"`
	// Headings is the total number of outline headings across all records.
	Headings int `json:"headings"`
	// ContentRunes is the total length of stripped content, in runes.
	ContentRunes int `json:"content_runes"`
	// OutlineMismatches counts headings the CommonMark audit disagreed with.
	OutlineMismatches int `json:"outline_mismatches"`
	// ArtifactBytes is the size of the serialized artifact.
	ArtifactBytes int `json:"artifact_bytes"`
	// Checksum is the xxhash64 digest of the artifact; equal checksums mean byte-identical builds.
	Checksum string `json:"checksum"`
}

// computeStats derives build statistics from a report and the serialized artifact.
func computeStats(report *Report, data []byte) BuildStats {
	stats := BuildStats{
		Entries:       len(report.Results),
		ArtifactBytes: len(data),
		Checksum:      artifact.Checksum(data),
	}

	for _, res := range report.Results {
		switch res.Status {
		case StatusSkipped:
			stats.Skipped++
		case StatusIndexed:
			stats.Pages++
			stats.OutlineMismatches += len(res.OutlineMismatches)
			if res.Record != nil {
				stats.Headings += len(res.Record.HeadingsWithIDs)
				stats.ContentRunes += utf8.RuneCountInString(res.Record.Content)
			}
		}
	}

	return stats
}
