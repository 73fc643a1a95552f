package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
)

func loadStdin(ctx context.Context, stdin io.Reader, maxSize int64) ([]byte, error) {
	if stdin == nil {
		return nil, errors.New("source loader: stdin is not configured")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	// Read one byte past the limit so oversized input is detected rather
	// than silently truncated.
	data, err := io.ReadAll(io.LimitReader(stdin, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("source loader: stdin exceeds the %d byte input limit", maxSize)
	}
	return data, nil
}
