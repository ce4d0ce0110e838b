package content

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/abhisek/quizladder/internal/quiz"
)

//go:embed data/quiz
var embedded embed.FS

// Embedded returns the bundles shipped with the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data/quiz")
	if err != nil {
		// The path is fixed at compile time.
		panic(err)
	}
	return sub
}

// FSStore serves topic bundles from a file system laid out per the catalog.
type FSStore struct {
	fsys    fs.FS
	catalog *Catalog
}

var _ quiz.ContentStore = (*FSStore)(nil)

// NewFSStore creates a store over fsys. A nil catalog uses DefaultCatalog.
func NewFSStore(fsys fs.FS, catalog *Catalog) *FSStore {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &FSStore{fsys: fsys, catalog: catalog}
}

// NewDirStore creates a store over a directory on disk.
func NewDirStore(dir string, catalog *Catalog) (*FSStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir: %s is not a directory", dir)
	}
	return NewFSStore(os.DirFS(dir), catalog), nil
}

// NewEmbeddedStore creates a store over the bundled content.
func NewEmbeddedStore() *FSStore {
	return NewFSStore(Embedded(), nil)
}

// Catalog returns the store's catalog.
func (s *FSStore) Catalog() *Catalog {
	return s.catalog
}

// Get reads and decodes the bundle for topicID.
func (s *FSStore) Get(ctx context.Context, topicID string) (*quiz.TopicBundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entry, ok := s.catalog.Lookup(topicID)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not in the catalog", quiz.ErrNotFound, topicID)
	}

	raw, err := fs.ReadFile(s.fsys, entry.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: no content for %q", quiz.ErrNotFound, topicID)
		}
		return nil, fmt.Errorf("read %s: %w", entry.Path, err)
	}
	return Decode(raw)
}

// Available reports whether content exists for topicID.
func (s *FSStore) Available(topicID string) bool {
	entry, ok := s.catalog.Lookup(topicID)
	if !ok {
		return false
	}
	_, err := fs.Stat(s.fsys, entry.Path)
	return err == nil
}

// Topics lists the catalog with availability.
func (s *FSStore) Topics(ctx context.Context) ([]TopicInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries := s.catalog.Entries()
	out := make([]TopicInfo, len(entries))
	for i, e := range entries {
		out[i] = TopicInfo{ID: e.ID, Domain: e.Domain, Available: s.Available(e.ID)}
	}
	return out, nil
}
