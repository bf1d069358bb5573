package media

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// SweepStaging removes leftover staged files from previous runs. The staging
// directory is owned exclusively by this process, so any regular file found
// at boot belongs to an upload that never finished.
func SweepStaging(dir string, logger *slog.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read staging dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			logger.Warn("remove abandoned staged file", "path", path, "error", err)
			continue
		}
		logger.Info("removed abandoned staged file", "path", path)
	}

	return nil
}
