package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Init creates a new repository at path, creating path if needed. A
// non-bare repository keeps its metadata in path/.bloc; a bare one keeps it
// directly in path. Returns ErrAlreadyExists if a HEAD or config file is
// already present in the metadata root.
func Init(path string, bare bool, opts ...Option) (*Repo, error) {
	o := buildOptions(opts)

	root, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("init: abs path: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("init: mkdir %s: %w", root, err)
	}

	metaDir := root
	if !bare {
		metaDir = filepath.Join(root, MetaDirName)
	}
	for _, marker := range []string{headFile, configFile} {
		if _, err := os.Stat(filepath.Join(metaDir, marker)); err == nil {
			return nil, fmt.Errorf("init: %w at %s", ErrAlreadyExists, metaDir)
		}
	}

	dirs := []string{
		filepath.Join(metaDir, "objects"),
		filepath.Join(metaDir, "refs", "heads"),
		filepath.Join(metaDir, "refs", "tags"),
		filepath.Join(metaDir, "refs", "remotes"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	r := newRepo(root, metaDir, bare, o)
	r.Config = DefaultConfig()
	r.Config.Core.Bare = bare
	if o.globalConfig != "" {
		id, ok, err := LoadIdentity(o.globalConfig)
		if err != nil {
			return nil, fmt.Errorf("init: %w", err)
		}
		if ok {
			r.Config.User.merge(id)
		}
	}
	r.Index = NewIndex(r.now)
	r.Ignore = NewIgnoreChecker(r.RootDir, r.metaDirName())

	if err := r.SaveConfig(); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	if err := r.writeHead(r.Config.Core.DefaultBranch); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	if !bare {
		if err := r.SaveIndex(); err != nil {
			return nil, fmt.Errorf("init: %w", err)
		}
		if err := hideDir(metaDir); err != nil {
			r.logger.Warn("could not hide metadata directory", zap.String("dir", metaDir), zap.Error(err))
		}
	}

	r.logger.Debug("initialized repository",
		zap.String("root", root),
		zap.String("meta", metaDir),
		zap.Bool("bare", bare),
	)
	return r, nil
}

// Open locates the repository containing path and loads its config and
// staging index. It accepts path itself as a bare repository when HEAD and
// config sit directly inside it, and otherwise searches upward for a .bloc/
// directory. Returns ErrNotRepository if neither is found.
func Open(path string, opts ...Option) (*Repo, error) {
	o := buildOptions(opts)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	root, metaDir, bare, err := locate(abs)
	if err != nil {
		return nil, err
	}

	r := newRepo(root, metaDir, bare, o)
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func locate(start string) (root, metaDir string, bare bool, err error) {
	if isDir(filepath.Join(start, MetaDirName)) {
		return start, filepath.Join(start, MetaDirName), false, nil
	}
	if isFile(filepath.Join(start, headFile)) && isFile(filepath.Join(start, configFile)) {
		return start, start, true, nil
	}

	cur := start
	for {
		parent := filepath.Dir(cur)
		if parent == cur {
			// Reached filesystem root without finding .bloc/.
			return "", "", false, fmt.Errorf("open %s: %w", start, ErrNotRepository)
		}
		cur = parent
		if isDir(filepath.Join(cur, MetaDirName)) {
			return cur, filepath.Join(cur, MetaDirName), false, nil
		}
	}
}

func (r *Repo) load() error {
	cfg, err := r.ReadConfig()
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	if cfg.Core.Bare != r.Bare {
		r.logger.Warn("config bare flag disagrees with repository layout",
			zap.Bool("config", cfg.Core.Bare),
			zap.Bool("layout", r.Bare),
		)
	}
	r.Config = cfg

	ix, err := r.ReadIndex()
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	r.Index = ix
	r.Ignore = NewIgnoreChecker(r.RootDir, r.metaDirName())
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
