package repo

import "fmt"

// ResetPaths removes paths from the staging index. Paths that were never
// staged are reported and leave the index unchanged.
func (r *Repo) ResetPaths(paths []string) (Outcome, error) {
	if r.Bare {
		return softFailure(ReasonBareRepository, "cannot reset files in a bare repository"), nil
	}

	var out Outcome
	removed := 0
	for _, p := range paths {
		rel, ok := r.repoRelPath(p)
		if ok && r.Index.Remove(rel) {
			removed++
			out.note("Reset %s", rel)
			continue
		}
		out.fail(ReasonNotStaged, "warning: %s not in staging area", p)
	}

	if removed > 0 {
		if err := r.SaveIndex(); err != nil {
			return Outcome{}, fmt.Errorf("reset: %w", err)
		}
	}
	return out, nil
}
