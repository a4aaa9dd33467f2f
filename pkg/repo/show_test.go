package repo

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/martian56/bloc/pkg/object"
)

func TestShow_CommitByPrefix(t *testing.T) {
	r := initRepo(t)
	first := commitFile(t, r, "a.txt", "hello", "first")
	second := commitFile(t, r, "b.txt", "bee", "second")

	out, err := r.Show(string(second[:10]))
	if err != nil {
		t.Fatalf("Show: %v", err)
	}
	if !out.OK() {
		t.Fatalf("Show = %v", out)
	}
	if out.Lines[0] != "commit "+string(second) || out.Lines[1] != "Parent: "+string(first) {
		t.Errorf("header = %q", out.Lines[:2])
	}
	// The index is cleared on commit, so the second tree only holds b.txt.
	last := out.Lines[len(out.Lines)-1]
	if want := object.HashBytes([]byte("bee")).Short() + " b.txt"; last != want {
		t.Errorf("tree line = %q, want %q", last, want)
	}
}

func TestShow_PathAtRevision(t *testing.T) {
	r := initRepo(t)
	h := commitFile(t, r, "docs/readme.md", "line one\nline two\n", "docs")

	tests := []string{"HEAD:docs/readme.md", "main:docs/readme.md", string(h[:6]) + ":docs/readme.md"}
	for _, target := range tests {
		out, err := r.Show(target)
		if err != nil {
			t.Fatalf("Show(%s): %v", target, err)
		}
		if diff := cmp.Diff([]string{"line one", "line two"}, out.Lines); diff != "" {
			t.Errorf("Show(%s) mismatch (-want +got):\n%s", target, diff)
		}
	}

	out, err := r.Show("HEAD:missing.txt")
	if err != nil {
		t.Fatalf("Show: %v", err)
	}
	if out.Reason != ReasonPathNotFound {
		t.Errorf("Show(missing path) = %+v", out)
	}
}

func TestShow_RawObject(t *testing.T) {
	r := initRepo(t)
	h, err := r.Store.Put([]byte("just text"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	out, err := r.Show(string(h))
	if err != nil {
		t.Fatalf("Show: %v", err)
	}
	if out.String() != "just text" {
		t.Errorf("Show(blob) = %q", out.String())
	}
}

func TestShow_JSONBlobIsNotACommit(t *testing.T) {
	r := initRepo(t)
	h, err := r.Store.Put([]byte(`{"message": "looks like one"}`))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	out, err := r.Show(string(h))
	if err != nil {
		t.Fatalf("Show: %v", err)
	}
	if out.String() != `{"message": "looks like one"}` {
		t.Errorf("Show(json blob) = %q", out.String())
	}

	out, err = r.Show(string(h) + ":a.txt")
	if err != nil {
		t.Fatalf("Show(path): %v", err)
	}
	if out.Reason != ReasonObjectNotFound {
		t.Errorf("Show(json blob:path) = %+v, want object-not-found", out)
	}
}

func TestShow_UnknownRevision(t *testing.T) {
	r := initRepo(t)
	commitFile(t, r, "a.txt", "hello", "first")

	for _, target := range []string{"deadbeef", "zz", "nobranch"} {
		out, err := r.Show(target)
		if err != nil {
			t.Fatalf("Show(%s): %v", target, err)
		}
		if out.Reason != ReasonObjectNotFound {
			t.Errorf("Show(%s) = %+v", target, out)
		}
		if !strings.Contains(out.String(), target) {
			t.Errorf("Show(%s) message = %q", target, out.String())
		}
	}
}
