package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

func loadFile(ctx context.Context, path string, maxSize int64) ([]byte, error) {
	if path == "" {
		return nil, errors.New("source loader: file path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("source loader: %s is a directory", path)
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("source loader: %s exceeds the %d byte input limit", path, maxSize)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	return data, nil
}
