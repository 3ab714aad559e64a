package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/semmidev/bucketsync/internal/domain"
)

// ScanFolder lists the regular files sitting directly inside folder.
// Subdirectories are never descended into and non-file entries are
// skipped, so the result is the set of names a target is expected to
// mirror.
func ScanFolder(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", domain.ErrFolderNotFound, folder)
		case errors.Is(err, fs.ErrPermission):
			return nil, fmt.Errorf("%w: %s", domain.ErrFolderAccess, folder)
		}
		return nil, fmt.Errorf("read folder %s: %w", folder, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}

	return names, nil
}
