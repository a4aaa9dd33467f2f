package object

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/martian56/bloc/pkg/atomicfile"
)

var (
	// ErrNotFound is returned when no object exists for a hash.
	ErrNotFound = errors.New("object not found")
	// ErrAmbiguous is returned when a hash prefix matches several objects.
	ErrAmbiguous = errors.New("ambiguous object prefix")
	// ErrMalformed is returned when stored bytes cannot be decoded into the
	// requested record type.
	ErrMalformed = errors.New("malformed object")
)

// minPrefixLen is the shortest prefix Resolve accepts.
const minPrefixLen = 4

// Store is a content-addressed object store with a 2-character fan-out
// directory layout: objects/ab/cdef0123...
//
// Objects are only ever added. There is no delete path.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given metadata directory. The
// objects/ subdirectory is created lazily on first write.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Dir returns the objects/ directory of the store.
func (s *Store) Dir() string {
	return filepath.Join(s.root, "objects")
}

func (s *Store) objectPath(h Hash) string {
	return filepath.Join(s.Dir(), string(h[:2]), string(h[2:]))
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	if !h.Valid() {
		return false
	}
	_, err := os.Stat(s.objectPath(h))
	return err == nil
}

// Put stores content and returns its hash. Putting content that is already
// present is a no-op returning the same hash.
func (s *Store) Put(content []byte) (Hash, error) {
	h := HashBytes(content)

	// Fast path: already exists.
	if s.Has(h) {
		return h, nil
	}

	dir := filepath.Join(s.Dir(), string(h[:2]))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("object put mkdir: %w", err)
	}
	if err := atomicfile.WriteFile(s.objectPath(h), content, 0o644); err != nil {
		return "", fmt.Errorf("object put %s: %w", h, err)
	}
	return h, nil
}

// Get returns the bytes stored under h.
func (s *Store) Get(h Hash) ([]byte, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("object get %q: %w", h, ErrNotFound)
	}
	data, err := os.ReadFile(s.objectPath(h))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("object get %s: %w", h, ErrNotFound)
		}
		return nil, fmt.Errorf("object get %s: %w", h, err)
	}
	return data, nil
}

// Resolve expands a hex prefix of at least four characters to the single
// full hash it identifies.
func (s *Store) Resolve(prefix string) (Hash, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if Hash(prefix).Valid() {
		if !s.Has(Hash(prefix)) {
			return "", fmt.Errorf("resolve %s: %w", prefix, ErrNotFound)
		}
		return Hash(prefix), nil
	}
	if len(prefix) < minPrefixLen || len(prefix) > HashSize || !isLowerHex(prefix) {
		return "", fmt.Errorf("resolve %q: %w", prefix, ErrNotFound)
	}

	entries, err := os.ReadDir(filepath.Join(s.Dir(), prefix[:2]))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("resolve %s: %w", prefix, ErrNotFound)
		}
		return "", fmt.Errorf("resolve %s: %w", prefix, err)
	}

	var match Hash
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix[2:]) {
			continue
		}
		candidate := Hash(prefix[:2] + e.Name())
		if !candidate.Valid() {
			// Temp files and other strays.
			continue
		}
		if match != "" {
			return "", fmt.Errorf("resolve %s: %w", prefix, ErrAmbiguous)
		}
		match = candidate
	}
	if match == "" {
		return "", fmt.Errorf("resolve %s: %w", prefix, ErrNotFound)
	}
	return match, nil
}

// WriteCommit serializes and stores a Commit.
func (s *Store) WriteCommit(c *Commit) (Hash, error) {
	data, err := MarshalCommit(c)
	if err != nil {
		return "", err
	}
	return s.Put(data)
}

// ReadCommit reads and deserializes a Commit.
func (s *Store) ReadCommit(h Hash) (*Commit, error) {
	data, err := s.Get(h)
	if err != nil {
		return nil, err
	}
	c, err := UnmarshalCommit(data)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", h, err)
	}
	return c, nil
}
