package repo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/martian56/bloc/pkg/object"
)

// resolveRevision turns HEAD, a branch name or a hash prefix into a full
// object hash. Unknown or ambiguous names come back as an Outcome.
func (r *Repo) resolveRevision(rev string) (object.Hash, *Outcome, error) {
	if rev == "HEAD" {
		branch, err := r.CurrentBranch()
		if err != nil {
			return "", nil, err
		}
		rev = branch
	}
	if validBranchName(rev) {
		h, ok, err := r.BranchHead(rev)
		if err != nil {
			return "", nil, err
		}
		if ok {
			return h, nil, nil
		}
	}

	h, err := r.Store.Resolve(rev)
	switch {
	case err == nil:
		return h, nil, nil
	case errors.Is(err, object.ErrNotFound):
		out := softFailure(ReasonObjectNotFound, "fatal: bad revision '%s'", rev)
		return "", &out, nil
	case errors.Is(err, object.ErrAmbiguous):
		out := softFailure(ReasonAmbiguousObject, "fatal: ambiguous revision '%s'", rev)
		return "", &out, nil
	default:
		return "", nil, err
	}
}

// Show displays an object. target is one of:
//
//	<rev>         commit details and its tree, or raw content for a file object
//	<rev>:<path>  content of path as recorded by commit <rev>
//
// where <rev> is HEAD, a branch name or a hash prefix.
func (r *Repo) Show(target string) (Outcome, error) {
	rev, path, hasPath := strings.Cut(target, ":")

	h, soft, err := r.resolveRevision(rev)
	if err != nil {
		return Outcome{}, fmt.Errorf("show %s: %w", target, err)
	}
	if soft != nil {
		return *soft, nil
	}

	data, err := r.Store.Get(h)
	if err != nil {
		return Outcome{}, fmt.Errorf("show %s: %w", target, err)
	}
	// JSON content that merely decodes is not taken for a commit.
	c, decodeErr := object.UnmarshalCommit(data)
	isCommit := decodeErr == nil && !c.Timestamp.IsZero()

	if !hasPath {
		if !isCommit {
			return contentOutcome(data), nil
		}
		return r.showCommit(h, c)
	}

	if !isCommit {
		return softFailure(ReasonObjectNotFound, "fatal: %s is not a commit", h.Short()), nil
	}
	entries, err := object.ParseTreeDescriptor(c.Tree)
	if err != nil {
		return Outcome{}, fmt.Errorf("show %s: %w", target, err)
	}
	path = strings.TrimPrefix(path, "./")
	for _, e := range entries {
		if e.Path != path {
			continue
		}
		content, err := r.Store.Get(e.Hash)
		if err != nil {
			return Outcome{}, fmt.Errorf("show %s: %w", target, err)
		}
		return contentOutcome(content), nil
	}
	return softFailure(ReasonPathNotFound, "fatal: path '%s' does not exist in %s", path, h.Short()), nil
}

func (r *Repo) showCommit(h object.Hash, c *object.Commit) (Outcome, error) {
	entries, err := object.ParseTreeDescriptor(c.Tree)
	if err != nil {
		return Outcome{}, fmt.Errorf("show %s: %w", h.Short(), err)
	}

	var out Outcome
	out.note("commit %s", h)
	if c.HasParent() {
		out.note("Parent: %s", c.Parent)
	}
	out.note("Author: %s <%s>", c.Author, c.Committer)
	out.note("Date: %s", c.Timestamp.Format(logDateLayout))
	out.note("")
	out.note("    %s", c.Message)
	out.note("")
	for _, e := range entries {
		out.note("%s %s", e.Hash.Short(), e.Path)
	}
	return out, nil
}

func contentOutcome(content []byte) Outcome {
	text := strings.TrimSuffix(string(content), "\n")
	return Outcome{Lines: strings.Split(text, "\n")}
}
