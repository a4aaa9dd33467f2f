package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Test 1: Fresh repository with an untracked file.
func TestStatus_Untracked(t *testing.T) {
	r := initRepo(t)
	writeFile(t, filepath.Join(r.RootDir, "new.txt"), "n")

	s, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	want := &StatusReport{Branch: "main", Untracked: []string{"new.txt"}}
	if diff := cmp.Diff(want, s, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("status mismatch (-want +got):\n%s", diff)
	}
}

// Test 2: Staged, modified, deleted and untracked are told apart.
func TestStatus_Sections(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".blocignore"), "*.log\n")
	r, err := Init(dir, false, WithClock(stepClock()))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	stageFile(t, r, ".blocignore", "*.log\n")
	stageFile(t, r, "kept.txt", "same")
	stageFile(t, r, "changed.txt", "before")
	stageFile(t, r, "gone.txt", "bye")
	if _, err := r.CommitStaged("base"); err != nil {
		t.Fatalf("CommitStaged: %v", err)
	}

	writeFile(t, filepath.Join(dir, "changed.txt"), "after")
	if err := os.Remove(filepath.Join(dir, "gone.txt")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	stageFile(t, r, "staged.txt", "s")
	writeFile(t, filepath.Join(dir, "fresh.txt"), "f")
	writeFile(t, filepath.Join(dir, "noise.log"), "ignored")

	s, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	want := &StatusReport{
		Branch:     "main",
		HasCommits: true,
		Staged:     []string{"staged.txt"},
		Modified:   []string{"changed.txt"},
		Deleted:    []string{"gone.txt"},
		Untracked:  []string{"fresh.txt"},
	}
	if diff := cmp.Diff(want, s, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("status mismatch (-want +got):\n%s", diff)
	}
}

// Test 3: ShowStatus formatting.
func TestShowStatus(t *testing.T) {
	r := initRepoWithFile(t, "a.txt", "a")
	writeFile(t, filepath.Join(r.RootDir, "b.txt"), "b")

	out, err := r.ShowStatus()
	if err != nil {
		t.Fatalf("ShowStatus: %v", err)
	}
	want := []string{
		"On branch main",
		"",
		"No commits yet",
		"",
		"Changes to be committed:",
		"  staged: a.txt",
		"",
		"Untracked files:",
		`  (use "bloc add <file>..." to include in what will be committed)`,
		"  b.txt",
	}
	if diff := cmp.Diff(want, out.Lines); diff != "" {
		t.Errorf("ShowStatus mismatch (-want +got):\n%s", diff)
	}
}

// Test 4: Bare repositories report only the branch.
func TestStatus_Bare(t *testing.T) {
	r, err := Init(t.TempDir(), true)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	s, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !s.Clean() || s.Branch != "main" {
		t.Errorf("bare status = %+v", s)
	}
}
