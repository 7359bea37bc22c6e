package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ArchiveExports moves the export directory into a timestamped archive next
// to it and returns the new location. The export directory is recreated
// lazily by the next export.
func ArchiveExports(exportDir string) (string, error) {
	info, err := os.Stat(exportDir)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("export directory does not exist: %s", exportDir)
	}
	if err != nil {
		return "", fmt.Errorf("failed to access export directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("export path is not a directory: %s", exportDir)
	}

	archiveDir := filepath.Join(filepath.Dir(exportDir), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	now := time.Now()
	archivePath := filepath.Join(archiveDir, "exports-"+now.Format("20060102-150405"))
	if _, err := os.Stat(archivePath); err == nil {
		// Second archive within the same second
		archivePath = filepath.Join(archiveDir, "exports-"+now.Format("20060102-150405.000000"))
	}

	if err := os.Rename(exportDir, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive export directory: %w", err)
	}
	return archivePath, nil
}
