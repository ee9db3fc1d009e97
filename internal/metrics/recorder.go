package metrics

import "time"

// Recorder defines observability hooks for a search index build.
type Recorder interface {
	IncEntryResult(status string) // status: indexed|skipped
	ObserveBuildDuration(d time.Duration)
	SetRecords(n int)
	SetArtifactBytes(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncEntryResult(string)              {}
func (NoopRecorder) ObserveBuildDuration(time.Duration) {}
func (NoopRecorder) SetRecords(int)                     {}
func (NoopRecorder) SetArtifactBytes(int)               {}
