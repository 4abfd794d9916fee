package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileOverwrite writes content to a file at the specified path,
// overwriting it if it already exists. The content is written to a temporary
// file in the same directory first so readers never see a partial file.
func WriteFileOverwrite(filePath string, content []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(filePath), filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", filePath, err)
	}
	tmpPath := f.Name()

	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write to file %s: %w", filePath, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close file %s: %w", filePath, err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions on %s: %w", filePath, err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace file %s: %w", filePath, err)
	}

	return nil
}
