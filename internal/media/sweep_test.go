package media

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSweepStagingRemovesAbandonedFiles(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"video-abc.mp4", "thumbnail-def.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("leftover"), 0o600); err != nil {
			t.Fatalf("write staged file: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("create nested dir: %v", err)
	}

	if err := SweepStaging(dir, discardLogger()); err != nil {
		t.Fatalf("sweep staging: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read staging dir: %v", err)
	}
	if len(entries) != 1 || !entries[0].IsDir() {
		t.Fatalf("expected only the nested directory to survive, got %v", entries)
	}
}

func TestSweepStagingMissingDir(t *testing.T) {
	if err := SweepStaging(filepath.Join(t.TempDir(), "missing"), discardLogger()); err == nil {
		t.Fatal("expected error for missing staging dir")
	}
}
