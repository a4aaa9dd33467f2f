package repo

import (
	"fmt"
	"strings"
)

// RemoteAdd records a named remote with the default fetch refspec. An
// existing remote of the same name is replaced.
func (r *Repo) RemoteAdd(name, remoteURL string) (Outcome, error) {
	name = strings.TrimSpace(name)
	remoteURL = strings.TrimSpace(remoteURL)
	if name == "" || strings.ContainsAny(name, " \t/") {
		return softFailure(ReasonInvalidName, "invalid remote name %q", name), nil
	}
	if remoteURL == "" {
		return softFailure(ReasonInvalidName, "remote URL is required"), nil
	}

	r.Config.Remotes[name] = Remote{
		URL:   remoteURL,
		Fetch: fmt.Sprintf(defaultFetchTemplate, name),
	}
	if err := r.SaveConfig(); err != nil {
		return Outcome{}, fmt.Errorf("remote add %s: %w", name, err)
	}
	return completed("Added remote '%s' -> %s", name, remoteURL), nil
}

// RemoteRemove deletes a named remote.
func (r *Repo) RemoteRemove(name string) (Outcome, error) {
	if _, ok := r.Config.Remotes[name]; !ok {
		return softFailure(ReasonRemoteNotFound, "remote '%s' not found", name), nil
	}
	delete(r.Config.Remotes, name)
	if err := r.SaveConfig(); err != nil {
		return Outcome{}, fmt.Errorf("remote remove %s: %w", name, err)
	}
	return completed("Removed remote '%s'", name), nil
}

// RemoteList reports "name<TAB>url" lines sorted by name.
func (r *Repo) RemoteList() (Outcome, error) {
	names := r.remoteNames()
	if len(names) == 0 {
		return completed("No remotes configured"), nil
	}
	var out Outcome
	for _, name := range names {
		out.note("%s\t%s", name, r.Config.Remotes[name].URL)
	}
	return out, nil
}

// RemoteShow reports the details of one remote.
func (r *Repo) RemoteShow(name string) (Outcome, error) {
	rem, ok := r.Config.Remotes[name]
	if !ok {
		return softFailure(ReasonRemoteNotFound, "remote '%s' not found", name), nil
	}
	var out Outcome
	out.note("%s:", name)
	out.note("  URL: %s", rem.URL)
	out.note("  Fetch: %s", rem.Fetch)
	if rem.Push != "" {
		out.note("  Push: %s", rem.Push)
	}
	return out, nil
}

// RemoteRename moves a remote to a new name. A fetch refspec still equal to
// the default for the old name is rewritten for the new one.
func (r *Repo) RemoteRename(oldName, newName string) (Outcome, error) {
	rem, ok := r.Config.Remotes[oldName]
	if !ok {
		return softFailure(ReasonRemoteNotFound, "remote '%s' not found", oldName), nil
	}
	newName = strings.TrimSpace(newName)
	if newName == "" || strings.ContainsAny(newName, " \t/") {
		return softFailure(ReasonInvalidName, "invalid remote name %q", newName), nil
	}
	if _, exists := r.Config.Remotes[newName]; exists {
		return softFailure(ReasonRemoteExists, "remote '%s' already exists", newName), nil
	}

	if rem.Fetch == fmt.Sprintf(defaultFetchTemplate, oldName) {
		rem.Fetch = fmt.Sprintf(defaultFetchTemplate, newName)
	}
	delete(r.Config.Remotes, oldName)
	r.Config.Remotes[newName] = rem
	if err := r.SaveConfig(); err != nil {
		return Outcome{}, fmt.Errorf("remote rename %s: %w", oldName, err)
	}
	return completed("Renamed remote '%s' to '%s'", oldName, newName), nil
}
