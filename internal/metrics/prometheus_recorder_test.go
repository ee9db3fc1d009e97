package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.IncEntryResult("indexed")
	pr.IncEntryResult("indexed")
	pr.IncEntryResult("skipped")
	pr.SetRecords(2)
	pr.SetArtifactBytes(1024)
	pr.ObserveBuildDuration(1500 * time.Millisecond)

	if got := testutil.ToFloat64(pr.entryResults.WithLabelValues("indexed")); got != 2 {
		t.Errorf("entries_total{status=indexed} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(pr.entryResults.WithLabelValues("skipped")); got != 1 {
		t.Errorf("entries_total{status=skipped} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(pr.records); got != 2 {
		t.Errorf("records = %v, want 2", got)
	}
	if got := testutil.ToFloat64(pr.artifactBytes); got != 1024 {
		t.Errorf("artifact_bytes = %v, want 1024", got)
	}
	if got := testutil.ToFloat64(pr.buildDuration); got != 1.5 {
		t.Errorf("build_duration_seconds = %v, want 1.5", got)
	}
	if got := testutil.ToFloat64(pr.lastSuccess); got <= 0 {
		t.Errorf("last_success_timestamp_seconds = %v, want > 0", got)
	}
	if pr.Registry() != reg {
		t.Error("Registry() should return the registry passed to the constructor")
	}
}

func TestNewPrometheusRecorder_NilRegistry(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	if pr.Registry() == nil {
		t.Fatal("NewPrometheusRecorder(nil) should create a registry")
	}
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncEntryResult("indexed")
	pr.SetRecords(1)

	path := filepath.Join(t.TempDir(), "search_index.prom")
	if err := pr.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	out := string(data)
	for _, want := range []string{
		`search_index_entries_total{status="indexed"} 1`,
		"search_index_records 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("textfile missing %q:\n%s", want, out)
		}
	}
}

func TestPrometheusRecorder_WriteTextfile_BadPath(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	if err := pr.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom")); err == nil {
		t.Error("WriteTextfile() expected error for missing directory, got nil")
	}
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncEntryResult("indexed")
	r.ObserveBuildDuration(time.Second)
	r.SetRecords(1)
	r.SetArtifactBytes(1)
}
