package artifact

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/ressKim-io/CerviGuard/internal/infrastructure/config"
)

// Source opens model artifacts by slash separated name, e.g. "svm/model.json"
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	String() string
}

// NewSource creates the artifact source selected by cfg.Source.
// Sources that hold connections implement io.Closer.
func NewSource(ctx context.Context, cfg *config.ModelsConfig) (Source, error) {
	switch cfg.Source {
	case config.SourceFile:
		return NewFileSource(cfg.Dir), nil
	case config.SourceS3:
		src, err := NewS3SourceFromConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return src, nil
	case config.SourceGCS:
		src, err := NewGCSSourceFromConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unsupported artifact source %q", cfg.Source)
	}
}

// FileSource reads artifacts from a local directory
type FileSource struct {
	dir string
}

// NewFileSource creates a FileSource rooted at dir
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Open opens dir/name
func (s *FileSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, filepath.FromSlash(name)))
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FileSource) String() string {
	return "file://" + s.dir
}

func objectKey(prefix, name string) string {
	return path.Join(prefix, name)
}
