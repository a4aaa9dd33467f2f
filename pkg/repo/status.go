package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/martian56/bloc/pkg/object"
)

// StatusReport describes the staging index and working tree relative to the
// head commit of the current branch.
type StatusReport struct {
	Branch     string
	HasCommits bool
	Staged     []string
	// Modified lists files tracked in the head commit whose working copy
	// differs and that are not staged.
	Modified []string
	// Deleted lists files tracked in the head commit that are missing on
	// disk and not staged.
	Deleted   []string
	Untracked []string
}

// Clean reports whether nothing is staged, changed or untracked.
func (s *StatusReport) Clean() bool {
	return len(s.Staged) == 0 && len(s.Modified) == 0 && len(s.Deleted) == 0 && len(s.Untracked) == 0
}

// Status computes the repository status.
//
// Algorithm:
//  1. Resolve the current branch and the tree of its head commit.
//  2. Walk the working root, skipping the metadata directory and ignored
//     paths.
//  3. Compare each unstaged working file against the head tree.
//  4. Report head tree paths that vanished from disk.
//
// Bare repositories have no working tree; only the branch and staged
// sections are filled.
func (r *Repo) Status() (*StatusReport, error) {
	branch, err := r.CurrentBranch()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	report := &StatusReport{Branch: branch, Staged: r.Index.Paths()}

	head, ok, err := r.BranchHead(branch)
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	report.HasCommits = ok
	if r.Bare {
		return report, nil
	}

	tracked, err := r.headTree(head)
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	seen := make(map[string]bool)
	err = filepath.WalkDir(r.RootDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == r.RootDir {
			return nil
		}
		rel, err := filepath.Rel(r.RootDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if d.Name() == MetaDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || r.Ignore.IsIgnored(rel) {
			return nil
		}

		seen[rel] = true
		if r.Index.IsStaged(rel) {
			return nil
		}
		want, isTracked := tracked[rel]
		if !isTracked {
			report.Untracked = append(report.Untracked, rel)
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if object.HashBytes(content) != want {
			report.Modified = append(report.Modified, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("status: walk: %w", err)
	}

	for p := range tracked {
		if !seen[p] && !r.Index.IsStaged(p) {
			report.Deleted = append(report.Deleted, p)
		}
	}
	sort.Strings(report.Modified)
	sort.Strings(report.Deleted)
	sort.Strings(report.Untracked)
	return report, nil
}

// headTree returns the path -> content hash map recorded by commit h. An
// empty h yields an empty map.
func (r *Repo) headTree(h object.Hash) (map[string]object.Hash, error) {
	tree := make(map[string]object.Hash)
	if h == "" {
		return tree, nil
	}
	c, err := r.Store.ReadCommit(h)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			r.logger.Warn("head commit missing from object store")
			return tree, nil
		}
		return nil, err
	}
	entries, err := object.ParseTreeDescriptor(c.Tree)
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", h.Short(), err)
	}
	for _, e := range entries {
		tree[e.Path] = e.Hash
	}
	return tree, nil
}

// ShowStatus formats Status for display.
func (r *Repo) ShowStatus() (Outcome, error) {
	s, err := r.Status()
	if err != nil {
		return Outcome{}, err
	}

	var out Outcome
	out.note("On branch %s", s.Branch)
	if !s.HasCommits {
		out.note("")
		out.note("No commits yet")
	}

	out.note("")
	if len(s.Staged) == 0 {
		out.note("No changes staged for commit")
	} else {
		out.note("Changes to be committed:")
		for _, p := range s.Staged {
			out.note("  staged: %s", p)
		}
	}

	if len(s.Modified) > 0 || len(s.Deleted) > 0 {
		out.note("")
		out.note("Changes not staged for commit:")
		out.note("  (use \"bloc add <file>...\" to update what will be committed)")
		for _, p := range s.Modified {
			out.note("  modified: %s", p)
		}
		for _, p := range s.Deleted {
			out.note("  deleted:  %s", p)
		}
	}

	if len(s.Untracked) > 0 {
		out.note("")
		out.note("Untracked files:")
		out.note("  (use \"bloc add <file>...\" to include in what will be committed)")
		for _, p := range s.Untracked {
			out.note("  %s", p)
		}
	}
	return out, nil
}
