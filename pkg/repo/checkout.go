package repo

import "fmt"

// Checkout points HEAD at an existing branch. Working tree files are not
// touched.
func (r *Repo) Checkout(name string) (Outcome, error) {
	if !validBranchName(name) {
		return softFailure(ReasonInvalidName, "invalid branch name %q", name), nil
	}
	exists, err := fileExists(r.branchRefPath(name))
	if err != nil {
		return Outcome{}, fmt.Errorf("checkout %q: %w", name, err)
	}
	if !exists {
		return softFailure(ReasonBranchNotFound, "Branch '%s' does not exist", name), nil
	}
	if err := r.writeHead(name); err != nil {
		return Outcome{}, fmt.Errorf("checkout %q: %w", name, err)
	}
	return completed("Switched to branch '%s'", name), nil
}
