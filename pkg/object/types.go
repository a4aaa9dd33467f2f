package object

import "time"

// Hash is a 64-character hex-encoded SHA-256 digest.
type Hash string

// ModeFile is the only file mode recorded for staged content.
const ModeFile = "100644"

// Commit is an immutable history record. It is stored in the object store
// like any other content, addressed by the hash of its serialized form.
type Commit struct {
	// Parent is empty for the first commit on a branch.
	Parent    Hash      `json:"parent,omitempty"`
	Author    string    `json:"author"`
	Committer string    `json:"committer"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	// Tree is the flat tree descriptor, see BuildTreeDescriptor.
	Tree string `json:"tree"`
}

// HasParent reports whether c links to an earlier commit.
func (c *Commit) HasParent() bool {
	return c.Parent != ""
}

// TreeEntry is one path:hash pair of a tree descriptor.
type TreeEntry struct {
	Path string
	Hash Hash
}
