//go:build windows

package repo

import "golang.org/x/sys/windows"

// hideDir sets the hidden attribute on dir. Windows does not treat
// dot-prefixed names as hidden.
func hideDir(dir string) error {
	p, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return err
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return err
	}
	return windows.SetFileAttributes(p, attrs|windows.FILE_ATTRIBUTE_HIDDEN)
}
