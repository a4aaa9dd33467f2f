package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/martian56/bloc/pkg/object"
)

type stagedFile struct {
	path string
	hash object.Hash
	size int64
}

// AddPaths stages files. Each path is absolute or relative to the working
// root; directories (including ".") are walked recursively. Ignored files
// are skipped. For each file the content is written to the object store and
// an index entry is recorded; the index is saved once at the end.
//
// Content that is not valid UTF-8 fails the whole call with
// ErrBinaryContent and leaves the index untouched.
func (r *Repo) AddPaths(paths []string) (Outcome, error) {
	if r.Bare {
		return softFailure(ReasonBareRepository, "cannot add files to a bare repository"), nil
	}

	var out Outcome
	var staged []stagedFile
	for _, p := range paths {
		rel, ok := r.repoRelPath(p)
		if !ok {
			out.fail(ReasonPathOutside, "warning: %s is outside the repository", p)
			continue
		}
		abs := filepath.Join(r.RootDir, filepath.FromSlash(rel))
		info, err := os.Stat(abs)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				out.fail(ReasonPathNotFound, "warning: %s does not exist", p)
				continue
			}
			return Outcome{}, fmt.Errorf("add: stat %q: %w", p, err)
		}

		if !info.IsDir() {
			if !validPathName(rel) {
				out.fail(ReasonInvalidPath, "warning: %q cannot be recorded", rel)
				continue
			}
			if r.Ignore.IsIgnored(rel) {
				out.note("Ignored %s", rel)
				continue
			}
			f, err := r.stageFile(rel, abs)
			if err != nil {
				return Outcome{}, err
			}
			staged = append(staged, f)
			continue
		}

		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				if d.Name() == MetaDirName {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			fileRel, err := filepath.Rel(r.RootDir, path)
			if err != nil {
				return err
			}
			fileRel = filepath.ToSlash(fileRel)
			if r.Ignore.IsIgnored(fileRel) {
				return nil
			}
			if !validPathName(fileRel) {
				out.fail(ReasonInvalidPath, "warning: %q cannot be recorded", fileRel)
				return nil
			}
			f, err := r.stageFile(fileRel, path)
			if err != nil {
				return err
			}
			staged = append(staged, f)
			return nil
		})
		if err != nil {
			return Outcome{}, fmt.Errorf("add: walk %q: %w", p, err)
		}
	}

	for _, f := range staged {
		r.Index.Add(f.path, f.hash, f.size)
		out.note("Added %s", f.path)
	}
	if len(staged) > 0 {
		if err := r.SaveIndex(); err != nil {
			return Outcome{}, fmt.Errorf("add: %w", err)
		}
	}
	return out, nil
}

// stageFile stores the content of one file and returns the entry to record.
func (r *Repo) stageFile(rel, abs string) (stagedFile, error) {
	content, err := os.ReadFile(abs)
	if err != nil {
		return stagedFile{}, fmt.Errorf("add: read %q: %w", rel, err)
	}
	if !utf8.Valid(content) {
		return stagedFile{}, fmt.Errorf("add %q: %w", rel, ErrBinaryContent)
	}
	h, err := r.Store.Put(content)
	if err != nil {
		return stagedFile{}, fmt.Errorf("add: store %q: %w", rel, err)
	}
	r.logger.Debug("stored object", zap.String("path", rel), zap.String("hash", string(h)))
	return stagedFile{path: rel, hash: h, size: int64(len(content))}, nil
}

// validPathName reports whether rel survives the index and tree formats:
// tree descriptors are newline separated and the index is JSON, which
// replaces invalid UTF-8.
func validPathName(rel string) bool {
	return utf8.ValidString(rel) && !strings.Contains(rel, "\n")
}

// repoRelPath converts an absolute or root-relative path into a cleaned,
// forward-slash path relative to the working root. ok is false for paths
// that resolve outside the root.
func (r *Repo) repoRelPath(p string) (rel string, ok bool) {
	if filepath.IsAbs(p) {
		var err error
		p, err = filepath.Rel(r.RootDir, p)
		if err != nil {
			return "", false
		}
	}
	rel = filepath.ToSlash(filepath.Clean(p))
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}
