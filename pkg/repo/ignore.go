package repo

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// IgnoreChecker determines if a path should be excluded from staging and
// status.
type IgnoreChecker struct {
	metaDir  string
	patterns []ignorePattern
}

type patternKind int

const (
	kindContains patternKind = iota // plain text, or *text*
	kindDir                         // text/
	kindSuffix                      // *text
	kindPrefix                      // text*
)

type ignorePattern struct {
	raw  string // the line as written, used for the containment fallback
	text string
	kind patternKind
}

// NewIgnoreChecker creates an IgnoreChecker for the given working root.
// Paths with a segment equal to metaDirName are always ignored; pass "" for
// bare repositories. If an ignore file exists in root, its patterns are
// applied after that.
func NewIgnoreChecker(root, metaDirName string) *IgnoreChecker {
	ic := &IgnoreChecker{metaDir: metaDirName}

	f, err := os.Open(filepath.Join(root, IgnoreFileName))
	if err == nil {
		defer f.Close()
		ic.patterns = parsePatterns(f)
	}
	return ic
}

func parsePatterns(rd io.Reader) []ignorePattern {
	var patterns []ignorePattern
	scanner := bufio.NewScanner(rd)
	for scanner.Scan() {
		if p, ok := parseLine(scanner.Text()); ok {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// parseLine parses one ignore file line. Empty lines and comments yield
// ok == false.
func parseLine(line string) (ignorePattern, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return ignorePattern{}, false
	}

	p := ignorePattern{raw: line, text: line, kind: kindContains}
	switch {
	case strings.HasSuffix(line, "/"):
		p.kind = kindDir
		p.text = strings.TrimSuffix(line, "/")
	case len(line) >= 2 && strings.HasPrefix(line, "*") && strings.HasSuffix(line, "*"):
		p.text = line[1 : len(line)-1]
	case strings.HasPrefix(line, "*"):
		p.kind = kindSuffix
		p.text = line[1:]
	case strings.HasSuffix(line, "*"):
		p.kind = kindPrefix
		p.text = line[:len(line)-1]
	}
	return p, true
}

func (p ignorePattern) matches(path string) bool {
	switch p.kind {
	case kindDir:
		if strings.HasPrefix(path, p.text) || strings.Contains(path, "/"+p.text) {
			return true
		}
	case kindSuffix:
		if strings.HasSuffix(path, p.text) {
			return true
		}
	case kindPrefix:
		if strings.HasPrefix(path, p.text) {
			return true
		}
	case kindContains:
		if strings.Contains(path, p.text) {
			return true
		}
	}
	// Every pattern also matches where its raw text appears verbatim.
	return strings.Contains(path, p.raw)
}

// IsIgnored checks whether a path relative to the working root should be
// ignored. Patterns are evaluated in file order and the first match wins.
func (ic *IgnoreChecker) IsIgnored(path string) bool {
	path = strings.TrimPrefix(filepath.ToSlash(path), "./")

	if ic.metaDir != "" {
		for _, seg := range strings.Split(path, "/") {
			if seg == ic.metaDir {
				return true
			}
		}
	}

	for _, p := range ic.patterns {
		if p.matches(path) {
			return true
		}
	}
	return false
}
