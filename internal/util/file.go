package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ValidateAudioExtension checks the file extension against the
// transcription provider's allow-list.
func ValidateAudioExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range AllowedAudioExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// FileSizeMB returns the file size in megabytes.
func FileSizeMB(path string) (float64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return float64(info.Size()) / (1024 * 1024), nil
}

// IsFileSizeValid reports whether the file fits under the provider's
// 25MB ceiling.
func IsFileSizeValid(path string) bool {
	size, err := FileSizeMB(path)
	if err != nil {
		return false
	}
	return size <= MaxAudioSizeMB
}

// UniqueFilename builds a collision-avoided name preserving the
// original extension.
func UniqueFilename(original string) string {
	ext := filepath.Ext(original)
	name := strings.TrimSuffix(filepath.Base(original), ext)
	return fmt.Sprintf("%s-%s%s", name, uuid.New().String(), ext)
}

// CleanupFile removes a temp file, tolerating a file that is already
// gone.
func CleanupFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(path)
}
