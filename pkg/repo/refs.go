package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/martian56/bloc/pkg/atomicfile"
	"github.com/martian56/bloc/pkg/object"
)

const (
	symbolicPrefix = "ref: "
	headsPrefix    = "refs/heads/"
)

// Head reads HEAD and returns the ref path it names, e.g. "refs/heads/main".
// HEAD is always symbolic; anything else is ErrMalformed.
func (r *Repo) Head() (string, error) {
	data, err := os.ReadFile(r.headPath())
	if err != nil {
		return "", fmt.Errorf("head: %w", err)
	}
	content := strings.TrimSpace(string(data))
	if !strings.HasPrefix(content, symbolicPrefix) {
		return "", fmt.Errorf("head: %w: %q", ErrMalformed, content)
	}
	return strings.TrimPrefix(content, symbolicPrefix), nil
}

// CurrentBranch returns the branch HEAD points at. The branch need not
// exist yet: a fresh repository names its default branch before the first
// commit.
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("current branch: %w", err)
	}
	if !strings.HasPrefix(head, headsPrefix) {
		return "", fmt.Errorf("current branch: %w: HEAD names %q", ErrMalformed, head)
	}
	return strings.TrimPrefix(head, headsPrefix), nil
}

// writeHead points HEAD at branch.
func (r *Repo) writeHead(branch string) error {
	content := symbolicPrefix + headsPrefix + branch + "\n"
	if err := atomicfile.WriteFile(r.headPath(), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write HEAD: %w", err)
	}
	r.logger.Debug("HEAD updated", zap.String("branch", branch))
	return nil
}

func (r *Repo) branchRefPath(name string) string {
	return filepath.Join(r.headsDir(), name)
}

// BranchHead returns the commit hash a branch points at. ok is false when
// the branch has no ref file.
func (r *Repo) BranchHead(name string) (h object.Hash, ok bool, err error) {
	data, err := os.ReadFile(r.branchRefPath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read ref %q: %w", name, err)
	}
	h = object.Hash(strings.TrimSpace(string(data)))
	if !h.Valid() {
		return "", false, fmt.Errorf("read ref %q: %w: %q", name, ErrMalformed, h)
	}
	return h, true, nil
}

// Advance points branch at h, creating the ref if needed. It is an
// unconditional fast-forward: no ancestry check is made, so callers that
// skip validating the parent chain can rewrite history.
func (r *Repo) Advance(branch string, h object.Hash) error {
	if err := os.MkdirAll(r.headsDir(), 0o755); err != nil {
		return fmt.Errorf("advance %q: mkdir: %w", branch, err)
	}
	if err := atomicfile.WriteFile(r.branchRefPath(branch), []byte(h), 0o644); err != nil {
		return fmt.Errorf("advance %q: %w", branch, err)
	}
	r.logger.Debug("ref advanced", zap.String("branch", branch), zap.String("hash", string(h)))
	return nil
}

// validBranchName keeps branch names to a single file name inside
// refs/heads.
func validBranchName(name string) bool {
	if name == "" || name == "HEAD" {
		return false
	}
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "-") {
		return false
	}
	if strings.ContainsAny(name, "/\\: \t\n") || strings.Contains(name, "..") {
		return false
	}
	return true
}
