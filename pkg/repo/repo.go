package repo

import (
	"errors"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/martian56/bloc/pkg/object"
)

// Layout names inside the working root and the metadata root.
const (
	MetaDirName    = ".bloc"
	IgnoreFileName = ".blocignore"

	headFile   = "HEAD"
	configFile = "config"
	indexFile  = "index"
)

var (
	// ErrNotRepository is returned by Open when no repository is found.
	ErrNotRepository = errors.New("not a bloc repository")
	// ErrAlreadyExists is returned by Init when the target already holds a
	// repository.
	ErrAlreadyExists = errors.New("repository already exists")
	// ErrMalformed is returned when a persisted record (HEAD, config,
	// index, ref) cannot be decoded.
	ErrMalformed = errors.New("malformed repository record")
	// ErrBinaryContent is returned when staging content that is not valid
	// UTF-8 text.
	ErrBinaryContent = errors.New("content is not valid UTF-8 text")
)

// Repo is an opened bloc repository. One Repo lives for the duration of a
// single command; it holds the loaded config and staging index and hands
// its roots to every other component.
type Repo struct {
	RootDir string // working root (equal to MetaDir when bare)
	MetaDir string // metadata root: RootDir/.bloc, or RootDir when bare
	Bare    bool

	Config *Config
	Index  *Index
	Store  *object.Store
	Ignore *IgnoreChecker

	logger *zap.Logger
	now    func() time.Time
}

// Option configures Init and Open.
type Option func(*options)

type options struct {
	logger       *zap.Logger
	now          func() time.Time
	globalConfig string
}

// WithLogger sets the logger used by the repository. The default discards
// everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides the wall-clock source used for index mtimes and commit
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithGlobalConfig names the global identity file consulted by Init to seed
// user.name and user.email. Empty disables the lookup.
func WithGlobalConfig(path string) Option {
	return func(o *options) {
		o.globalConfig = path
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newRepo(root, metaDir string, bare bool, o options) *Repo {
	return &Repo{
		RootDir: root,
		MetaDir: metaDir,
		Bare:    bare,
		Store:   object.NewStore(metaDir),
		logger:  o.logger.Named("repo"),
		now:     o.now,
	}
}

// metaDirName is the name the ignore filter protects. Bare repositories
// have no separate working tree, so there is nothing to protect.
func (r *Repo) metaDirName() string {
	if r.Bare {
		return ""
	}
	return MetaDirName
}

func (r *Repo) headPath() string {
	return filepath.Join(r.MetaDir, headFile)
}

func (r *Repo) configPath() string {
	return filepath.Join(r.MetaDir, configFile)
}

func (r *Repo) indexPath() string {
	return filepath.Join(r.MetaDir, indexFile)
}

func (r *Repo) headsDir() string {
	return filepath.Join(r.MetaDir, "refs", "heads")
}
