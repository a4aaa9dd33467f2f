package repo

import (
	"errors"
	"fmt"
	"iter"

	"github.com/martian56/bloc/pkg/object"
)

// logDateLayout renders commit timestamps in log output.
const logDateLayout = "Mon Jan 02 15:04:05 2006 -0700"

// LogEntry is one commit in a history walk.
type LogEntry struct {
	Hash   object.Hash
	Commit *object.Commit
}

// Traverse walks first-parent history from start, newest first. The walk
// ends quietly at a root commit or when an object is missing from the
// store; a commit that exists but cannot be decoded is yielded as an error
// and ends the walk. An empty start yields nothing.
func (r *Repo) Traverse(start object.Hash) iter.Seq2[LogEntry, error] {
	return func(yield func(LogEntry, error) bool) {
		h := start
		for h != "" {
			c, err := r.Store.ReadCommit(h)
			if err != nil {
				if errors.Is(err, object.ErrNotFound) {
					return
				}
				yield(LogEntry{Hash: h}, fmt.Errorf("traverse %s: %w", h.Short(), err))
				return
			}
			if !yield(LogEntry{Hash: h, Commit: c}, nil) {
				return
			}
			h = c.Parent
		}
	}
}

// Log returns up to limit commits of the current branch, newest first. A
// limit of zero or less means no limit. A branch without commits yields an
// empty slice.
func (r *Repo) Log(limit int) ([]LogEntry, error) {
	branch, err := r.CurrentBranch()
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	head, ok, err := r.BranchHead(branch)
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var entries []LogEntry
	for e, err := range r.Traverse(head) {
		if err != nil {
			return nil, fmt.Errorf("log: %w", err)
		}
		entries = append(entries, e)
		if limit > 0 && len(entries) >= limit {
			break
		}
	}
	return entries, nil
}

// ShowLog formats the full history of the current branch.
func (r *Repo) ShowLog(oneline bool) (Outcome, error) {
	return r.ShowLogN(oneline, 0)
}

// ShowLogN is ShowLog limited to the newest limit commits.
func (r *Repo) ShowLogN(oneline bool, limit int) (Outcome, error) {
	entries, err := r.Log(limit)
	if err != nil {
		return Outcome{}, err
	}
	if len(entries) == 0 {
		return softFailure(ReasonNoCommits, "No commits yet"), nil
	}

	var out Outcome
	for _, e := range entries {
		c := e.Commit
		if oneline {
			out.note("%s %s", e.Hash.Short(), c.Message)
			continue
		}
		out.note("commit %s", e.Hash)
		out.note("Author: %s <%s>", c.Author, c.Committer)
		out.note("Date: %s", c.Timestamp.Format(logDateLayout))
		out.note("")
		out.note("    %s", c.Message)
		out.note("")
	}
	return out, nil
}
