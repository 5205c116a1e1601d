package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// WriteFile writes data to path with mode 0644, replacing any existing file.
//
// When atomic is set the data is first written to a temporary file in the
// same directory and renamed over path, so a failed run never leaves a
// partially written file behind.
func WriteFile(path string, data []byte, atomic bool) error {
	if !atomic {
		return os.WriteFile(path, data, 0644)
	}

	dir, base := filepath.Split(path)
	tempName := filepath.Join(dir, "."+base+"."+uuid.NewString()+".part")

	f, err := os.OpenFile(tempName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	_, err = f.Write(data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tempName)
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		os.Remove(tempName) // Clean up our partial file
		return fmt.Errorf("failed to rename %s to %s: %w", tempName, path, err)
	}
	return nil
}
