package object

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MarshalCommit returns the canonical serialization of c. The commit hash is
// the hash of exactly these bytes, so field order and formatting must stay
// stable.
func MarshalCommit(c *Commit) ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal commit: %w", err)
	}
	return data, nil
}

// UnmarshalCommit decodes bytes produced by MarshalCommit.
func UnmarshalCommit(data []byte) (*Commit, error) {
	var c Commit
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal commit: %w: %v", ErrMalformed, err)
	}
	if c.Parent != "" && !c.Parent.Valid() {
		return nil, fmt.Errorf("unmarshal commit: %w: invalid parent %q", ErrMalformed, c.Parent)
	}
	return &c, nil
}

// BuildTreeDescriptor flattens entries into "path:hash" lines joined by
// newlines. Entries are written in the order given; no sub-trees are created.
func BuildTreeDescriptor(entries []TreeEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Path+":"+string(e.Hash))
	}
	return strings.Join(lines, "\n")
}

// ParseTreeDescriptor splits a tree descriptor back into entries. The hash
// never contains ':', so the last separator on a line splits it, which keeps
// paths containing ':' intact.
func ParseTreeDescriptor(tree string) ([]TreeEntry, error) {
	if tree == "" {
		return nil, nil
	}
	lines := strings.Split(tree, "\n")
	entries := make([]TreeEntry, 0, len(lines))
	for i, line := range lines {
		idx := strings.LastIndexByte(line, ':')
		if idx <= 0 {
			return nil, fmt.Errorf("parse tree line %d: %w: %q", i+1, ErrMalformed, line)
		}
		h := Hash(line[idx+1:])
		if !h.Valid() {
			return nil, fmt.Errorf("parse tree line %d: %w: invalid hash %q", i+1, ErrMalformed, h)
		}
		entries = append(entries, TreeEntry{Path: line[:idx], Hash: h})
	}
	return entries, nil
}
