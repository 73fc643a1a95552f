package loader

import (
	"context"
	"errors"
	"io"
	"io/fs"

	pkgsource "github.com/goliatone/go-dowhile/pkg/source"
)

// Loader implements pkgsource.Loader by delegating to file, fs.FS, or stdin
// strategies. Construction helpers live in the top-level dowhile package.
type Loader struct {
	fs      fs.FS
	stdin   io.Reader
	maxSize int64
}

// Ensure the implementation satisfies the public interface.
var _ pkgsource.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgsource.LoaderOptions) pkgsource.Loader {
	maxSize := options.MaxInputSize
	if maxSize <= 0 {
		maxSize = pkgsource.DefaultMaxInputSize
	}

	return &Loader{
		fs:      options.FileSystem,
		stdin:   options.Stdin,
		maxSize: maxSize,
	}
}

// Load fetches source text from the provided source and wraps it in a
// Document. Memory sources never reach a loader; they are built directly via
// source.NewDocument.
func (l *Loader) Load(ctx context.Context, src pkgsource.Source) (pkgsource.Document, error) {
	if src == nil {
		return pkgsource.Document{}, errors.New("source loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case pkgsource.SourceKindFile:
		data, err = loadFile(ctx, src.Location(), l.maxSize)
	case pkgsource.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location(), l.maxSize)
	case pkgsource.SourceKindStdin:
		data, err = loadStdin(ctx, l.stdin, l.maxSize)
	case pkgsource.SourceKindMemory:
		err = errors.New("source loader: memory sources carry their own content")
	default:
		err = errors.New("source loader: unsupported source kind")
	}
	if err != nil {
		return pkgsource.Document{}, err
	}

	return pkgsource.NewDocument(src, data)
}
