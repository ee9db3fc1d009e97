package artifact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// ErrWriteArtifact is returned when the artifact cannot be written to disk.
var ErrWriteArtifact = errors.New("failed to write artifact")

// Encode serializes v as JSON indented with two spaces.
// HTML characters are written literally and no trailing newline is added,
// so the bytes match what the search UI was built against.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode artifact: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WriteFile replaces the file at path with data.
// The parent directory is created when missing. Data is written to a temporary
// file in the same directory and renamed over path, so readers never observe
// a half-written artifact.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create directory %s: %v", ErrWriteArtifact, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file in %s: %v", ErrWriteArtifact, dir, err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once the rename succeeded.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write %s: %v", ErrWriteArtifact, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrWriteArtifact, tmpName, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("%w: chmod %s: %v", ErrWriteArtifact, tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: rename to %s: %v", ErrWriteArtifact, path, err)
	}
	return nil
}

// Checksum returns the xxhash64 digest of data as 16 hex characters.
func Checksum(data []byte) string {
	sum := strconv.FormatUint(xxhash.Sum64(data), 16)
	for len(sum) < 16 {
		sum = "0" + sum
	}
	return sum
}
