//go:build !windows

package repo

// hideDir is a no-op: the leading dot already hides the directory.
func hideDir(string) error {
	return nil
}
