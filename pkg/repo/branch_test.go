package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Test 1: Create, list, and delete branches.
func TestBranch_CreateListDelete(t *testing.T) {
	r := initRepo(t)
	head := commitFile(t, r, "a.txt", "hello", "first")

	out, err := r.CreateBranch("feature")
	if err != nil {
		t.Fatalf("CreateBranch(feature): %v", err)
	}
	if !out.OK() {
		t.Fatalf("CreateBranch(feature) = %v", out)
	}
	if got := mustBranchHead(t, r, "feature"); got != head {
		t.Errorf("feature = %s, want %s", got, head)
	}

	branches, err := r.Branches()
	if err != nil {
		t.Fatalf("Branches: %v", err)
	}
	want := []Branch{
		{Name: "feature", Hash: head},
		{Name: "main", Hash: head, Current: true},
	}
	if diff := cmp.Diff(want, branches); diff != "" {
		t.Errorf("Branches mismatch (-want +got):\n%s", diff)
	}

	out, err = r.DeleteBranch("feature", true)
	if err != nil {
		t.Fatalf("DeleteBranch(feature): %v", err)
	}
	if !out.OK() {
		t.Fatalf("DeleteBranch(feature) = %v", out)
	}
	branches, err = r.Branches()
	if err != nil {
		t.Fatalf("Branches after delete: %v", err)
	}
	if len(branches) != 1 || branches[0].Name != "main" {
		t.Errorf("Branches after delete = %+v", branches)
	}
}

// Test 2: CurrentBranch returns "main" initially.
func TestBranch_CurrentBranch(t *testing.T) {
	r := initRepo(t)

	branch, err := r.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if branch != "main" {
		t.Errorf("CurrentBranch = %q, want %q", branch, "main")
	}
}

// Test 3: Creating a branch before the first commit is refused.
func TestBranch_CreateWithoutCommits(t *testing.T) {
	r := initRepo(t)

	out, err := r.CreateBranch("feature")
	if err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}
	if out.OK() || out.Reason != ReasonNoCommits {
		t.Errorf("outcome = %+v, want no-commits soft failure", out)
	}
	if _, err := os.Stat(filepath.Join(r.MetaDir, "refs", "heads", "feature")); !os.IsNotExist(err) {
		t.Errorf("feature ref exists, stat err = %v", err)
	}
}

// Test 4: Creating a duplicate branch is refused.
func TestBranch_CreateDuplicate(t *testing.T) {
	r := initRepo(t)
	commitFile(t, r, "a.txt", "hello", "first")

	out, err := r.CreateBranch("main")
	if err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}
	if out.Reason != ReasonBranchExists {
		t.Errorf("outcome = %+v, want branch-exists", out)
	}
}

// Test 5: The checked-out branch is never deleted, with or without force.
func TestBranch_DeleteCurrentBranch(t *testing.T) {
	r := initRepo(t)
	commitFile(t, r, "a.txt", "hello", "first")

	for _, force := range []bool{false, true} {
		out, err := r.DeleteBranch("main", force)
		if err != nil {
			t.Fatalf("DeleteBranch(main, %v): %v", force, err)
		}
		if out.Reason != ReasonCurrentBranch {
			t.Errorf("DeleteBranch(main, %v) = %+v, want current-branch", force, out)
		}
		mustBranchHead(t, r, "main")
	}
}

// Test 6: Deleting without force, and deleting a missing branch.
func TestBranch_DeleteRefusals(t *testing.T) {
	r := initRepo(t)
	commitFile(t, r, "a.txt", "hello", "first")
	if _, err := r.CreateBranch("feature"); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}

	out, err := r.DeleteBranch("feature", false)
	if err != nil {
		t.Fatalf("DeleteBranch: %v", err)
	}
	if out.Reason != ReasonForceRequired {
		t.Errorf("DeleteBranch(no force) = %+v, want force-required", out)
	}
	mustBranchHead(t, r, "feature")

	out, err = r.DeleteBranch("ghost", true)
	if err != nil {
		t.Fatalf("DeleteBranch(ghost): %v", err)
	}
	if out.Reason != ReasonBranchNotFound {
		t.Errorf("DeleteBranch(ghost) = %+v, want branch-not-found", out)
	}
}

// Test 7: Renaming the current branch moves HEAD.
func TestBranch_RenameCurrent(t *testing.T) {
	r := initRepo(t)
	head := commitFile(t, r, "a.txt", "hello", "first")

	out, err := r.RenameBranch("main", "trunk")
	if err != nil {
		t.Fatalf("RenameBranch: %v", err)
	}
	if !out.OK() {
		t.Fatalf("RenameBranch = %v", out)
	}
	current, err := r.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if current != "trunk" {
		t.Errorf("CurrentBranch = %q, want trunk", current)
	}
	if got := mustBranchHead(t, r, "trunk"); got != head {
		t.Errorf("trunk = %s, want %s", got, head)
	}
	if _, ok, _ := r.BranchHead("main"); ok {
		t.Error("main still exists after rename")
	}
}

// Test 8: Rename refusals.
func TestBranch_RenameRefusals(t *testing.T) {
	r := initRepo(t)
	commitFile(t, r, "a.txt", "hello", "first")
	if _, err := r.CreateBranch("feature"); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}

	tests := []struct {
		oldName, newName string
		want             Reason
	}{
		{"ghost", "other", ReasonBranchNotFound},
		{"feature", "main", ReasonBranchExists},
		{"feature", "../escape", ReasonInvalidName},
	}
	for _, tt := range tests {
		out, err := r.RenameBranch(tt.oldName, tt.newName)
		if err != nil {
			t.Fatalf("RenameBranch(%s, %s): %v", tt.oldName, tt.newName, err)
		}
		if out.Reason != tt.want {
			t.Errorf("RenameBranch(%s, %s) reason = %q, want %q", tt.oldName, tt.newName, out.Reason, tt.want)
		}
	}
}

// Test 9: Branch names that would escape refs/heads are refused.
func TestBranch_InvalidNames(t *testing.T) {
	r := initRepo(t)
	commitFile(t, r, "a.txt", "hello", "first")

	for _, name := range []string{"", "a/b", `a\b`, "..", ".hidden", "-x", "HEAD", "has space"} {
		out, err := r.CreateBranch(name)
		if err != nil {
			t.Fatalf("CreateBranch(%q): %v", name, err)
		}
		if out.Reason != ReasonInvalidName {
			t.Errorf("CreateBranch(%q) reason = %q, want invalid-name", name, out.Reason)
		}
	}
}

// Test 10: A fresh repository lists no branches.
func TestBranch_ListEmpty(t *testing.T) {
	r := initRepo(t)

	out, err := r.ListBranches()
	if err != nil {
		t.Fatalf("ListBranches: %v", err)
	}
	if out.String() != "No branches found" {
		t.Errorf("ListBranches = %q", out.String())
	}
}

// Test 11: A rename that cannot read HEAD leaves the branch where it was.
func TestBranch_RenameMalformedHEAD(t *testing.T) {
	r := initRepo(t)
	head := commitFile(t, r, "a.txt", "hello", "first")
	if _, err := r.CreateBranch("feature"); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}
	writeFile(t, filepath.Join(r.MetaDir, "HEAD"), "0123abcd\n")

	if _, err := r.RenameBranch("feature", "topic"); err == nil {
		t.Fatal("RenameBranch with malformed HEAD succeeded")
	}
	if got := mustBranchHead(t, r, "feature"); got != head {
		t.Errorf("feature = %s, want %s", got, head)
	}
	if _, ok, _ := r.BranchHead("topic"); ok {
		t.Error("topic created despite the failure")
	}
}
