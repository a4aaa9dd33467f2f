package repo

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/martian56/bloc/pkg/object"
)

// Branch is one entry of the branch list.
type Branch struct {
	Name    string
	Hash    object.Hash
	Current bool
}

// CreateBranch creates name pointing at the current branch's head commit.
// It requires the current branch to have at least one commit.
func (r *Repo) CreateBranch(name string) (Outcome, error) {
	if !validBranchName(name) {
		return softFailure(ReasonInvalidName, "invalid branch name %q", name), nil
	}
	exists, err := fileExists(r.branchRefPath(name))
	if err != nil {
		return Outcome{}, fmt.Errorf("create branch %q: %w", name, err)
	}
	if exists {
		return softFailure(ReasonBranchExists, "Branch '%s' already exists", name), nil
	}

	current, err := r.CurrentBranch()
	if err != nil {
		return Outcome{}, fmt.Errorf("create branch %q: %w", name, err)
	}
	head, ok, err := r.BranchHead(current)
	if err != nil {
		return Outcome{}, fmt.Errorf("create branch %q: %w", name, err)
	}
	if !ok {
		return softFailure(ReasonNoCommits, "Cannot create branch: no commits yet"), nil
	}

	if err := r.Advance(name, head); err != nil {
		return Outcome{}, fmt.Errorf("create branch %q: %w", name, err)
	}
	return completed("Created branch '%s'", name), nil
}

// DeleteBranch removes a branch ref. The checked-out branch is never
// deleted, whatever force says. Merge-safety is not verified, so deletion
// of any other branch requires force.
func (r *Repo) DeleteBranch(name string, force bool) (Outcome, error) {
	current, err := r.CurrentBranch()
	if err != nil {
		return Outcome{}, fmt.Errorf("delete branch %q: %w", name, err)
	}
	if current == name {
		return softFailure(ReasonCurrentBranch, "Cannot delete branch '%s': currently checked out", name), nil
	}
	if !validBranchName(name) {
		return softFailure(ReasonInvalidName, "invalid branch name %q", name), nil
	}

	refPath := r.branchRefPath(name)
	exists, err := fileExists(refPath)
	if err != nil {
		return Outcome{}, fmt.Errorf("delete branch %q: %w", name, err)
	}
	if !exists {
		return softFailure(ReasonBranchNotFound, "Branch '%s' does not exist", name), nil
	}
	if !force {
		return softFailure(ReasonForceRequired, "Use --force to delete %s (branch merge check not implemented)", name), nil
	}

	if err := os.Remove(refPath); err != nil {
		return Outcome{}, fmt.Errorf("delete branch %q: %w", name, err)
	}
	r.logger.Debug("branch deleted", zap.String("branch", name))
	return completed("Deleted branch '%s'", name), nil
}

// RenameBranch renames a branch ref, moving HEAD along when it pointed at
// the old name.
func (r *Repo) RenameBranch(oldName, newName string) (Outcome, error) {
	if !validBranchName(oldName) {
		return softFailure(ReasonInvalidName, "invalid branch name %q", oldName), nil
	}
	if !validBranchName(newName) {
		return softFailure(ReasonInvalidName, "invalid branch name %q", newName), nil
	}

	oldPath, newPath := r.branchRefPath(oldName), r.branchRefPath(newName)
	exists, err := fileExists(oldPath)
	if err != nil {
		return Outcome{}, fmt.Errorf("rename branch %q: %w", oldName, err)
	}
	if !exists {
		return softFailure(ReasonBranchNotFound, "Branch '%s' does not exist", oldName), nil
	}
	exists, err = fileExists(newPath)
	if err != nil {
		return Outcome{}, fmt.Errorf("rename branch %q: %w", oldName, err)
	}
	if exists {
		return softFailure(ReasonBranchExists, "Branch '%s' already exists", newName), nil
	}

	current, err := r.CurrentBranch()
	if err != nil {
		return Outcome{}, fmt.Errorf("rename branch %q: %w", oldName, err)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return Outcome{}, fmt.Errorf("rename branch %q: %w", oldName, err)
	}
	if current == oldName {
		if err := r.writeHead(newName); err != nil {
			return Outcome{}, fmt.Errorf("rename branch %q: %w", oldName, err)
		}
	}
	return completed("Renamed branch '%s' to '%s'", oldName, newName), nil
}

// Branches lists refs/heads sorted by name, marking the branch HEAD names.
func (r *Repo) Branches() ([]Branch, error) {
	entries, err := os.ReadDir(r.headsDir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list branches: %w", err)
	}
	current, err := r.CurrentBranch()
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}

	var branches []Branch
	for _, e := range entries {
		if e.IsDir() || !validBranchName(e.Name()) {
			// Skips temp files left by an interrupted write.
			continue
		}
		h, ok, err := r.BranchHead(e.Name())
		if err != nil {
			return nil, fmt.Errorf("list branches: %w", err)
		}
		if !ok {
			continue
		}
		branches = append(branches, Branch{Name: e.Name(), Hash: h, Current: e.Name() == current})
	}
	sort.Slice(branches, func(i, j int) bool { return branches[i].Name < branches[j].Name })
	return branches, nil
}

// ListBranches formats Branches as "* current" / "  other" lines.
func (r *Repo) ListBranches() (Outcome, error) {
	branches, err := r.Branches()
	if err != nil {
		return Outcome{}, err
	}
	if len(branches) == 0 {
		return completed("No branches found"), nil
	}
	var out Outcome
	for _, b := range branches {
		if b.Current {
			out.note("* %s", b.Name)
		} else {
			out.note("  %s", b.Name)
		}
	}
	return out, nil
}
