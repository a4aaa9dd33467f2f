package repo

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/martian56/bloc/pkg/object"
)

// CreateCommit stores a commit snapshotting entries and returns its hash.
// The timestamp comes from the repository clock. parent is empty for a root
// commit. No ref is moved; see Advance.
func (r *Repo) CreateCommit(message, author, committer string, parent object.Hash, entries []object.TreeEntry) (object.Hash, error) {
	c := &object.Commit{
		Parent:    parent,
		Author:    author,
		Committer: committer,
		Timestamp: r.now().UTC(),
		Message:   message,
		Tree:      object.BuildTreeDescriptor(entries),
	}
	h, err := r.Store.WriteCommit(c)
	if err != nil {
		return "", fmt.Errorf("create commit: %w", err)
	}
	r.logger.Debug("commit written",
		zap.String("hash", string(h)),
		zap.String("parent", string(parent)),
		zap.Int("entries", len(entries)),
	)
	return h, nil
}

// CommitStaged records the staging index as a new commit on the current
// branch.
//
//  1. Refuse an empty index
//  2. Resolve the current branch head as parent (none for the first commit)
//  3. Store the commit
//  4. Advance the branch
//  5. Clear and save the index
func (r *Repo) CommitStaged(message string) (Outcome, error) {
	// 1. Empty index.
	if r.Index.Len() == 0 {
		return softFailure(ReasonNothingToCommit, "Nothing to commit"), nil
	}

	// 2. Parent.
	branch, err := r.CurrentBranch()
	if err != nil {
		return Outcome{}, fmt.Errorf("commit: %w", err)
	}
	parent, _, err := r.BranchHead(branch)
	if err != nil {
		return Outcome{}, fmt.Errorf("commit: %w", err)
	}

	// 3. Store.
	h, err := r.CreateCommit(message, r.Config.User.Name, r.Config.User.Email, parent, r.Index.TreeEntries())
	if err != nil {
		return Outcome{}, fmt.Errorf("commit: %w", err)
	}

	// 4. Advance.
	if err := r.Advance(branch, h); err != nil {
		return Outcome{}, fmt.Errorf("commit: %w", err)
	}

	// 5. Clear.
	r.Index.Clear()
	if err := r.SaveIndex(); err != nil {
		return Outcome{}, fmt.Errorf("commit: %w", err)
	}
	return completed("Committed %s %s", h.Short(), message), nil
}
