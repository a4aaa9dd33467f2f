package repo

import (
	"fmt"
	"strings"
)

// Status classifies how a front-end operation finished. Hard failures are
// not a Status: they are returned as errors.
type Status int

const (
	// StatusCompleted means the operation did everything it was asked to.
	StatusCompleted Status = iota
	// StatusSoftFailure means an expected user-level condition stopped all
	// or part of the operation. The repository is consistent and the caller
	// should still treat the command as successful.
	StatusSoftFailure
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusSoftFailure:
		return "soft-failure"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Reason identifies the condition behind a soft failure.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonBareRepository   Reason = "bare-repository"
	ReasonPathNotFound     Reason = "path-not-found"
	ReasonPathOutside      Reason = "path-outside-repository"
	ReasonInvalidPath      Reason = "invalid-path"
	ReasonNotStaged        Reason = "not-staged"
	ReasonNothingToCommit  Reason = "nothing-to-commit"
	ReasonNoCommits        Reason = "no-commits"
	ReasonBranchExists     Reason = "branch-exists"
	ReasonBranchNotFound   Reason = "branch-not-found"
	ReasonCurrentBranch    Reason = "current-branch"
	ReasonForceRequired    Reason = "force-required"
	ReasonInvalidName      Reason = "invalid-name"
	ReasonUnknownConfigKey Reason = "unknown-config-key"
	ReasonRemoteNotFound   Reason = "remote-not-found"
	ReasonRemoteExists     Reason = "remote-exists"
	ReasonObjectNotFound   Reason = "object-not-found"
	ReasonAmbiguousObject  Reason = "ambiguous-object"
)

// Outcome is the result of a front-end operation that did not hit a hard
// failure. Lines carry the human-readable detail in display order.
type Outcome struct {
	Status Status
	// Reason is the first soft-failure condition met, ReasonNone otherwise.
	Reason Reason
	Lines  []string
}

// OK reports whether the operation completed without any soft failure.
func (o Outcome) OK() bool {
	return o.Status == StatusCompleted
}

// String joins Lines with newlines.
func (o Outcome) String() string {
	return strings.Join(o.Lines, "\n")
}

func (o *Outcome) note(format string, args ...any) {
	o.Lines = append(o.Lines, fmt.Sprintf(format, args...))
}

// fail records a soft failure. The first reason sticks so that callers see
// the earliest condition when several paths fail in one call.
func (o *Outcome) fail(reason Reason, format string, args ...any) {
	if o.Status != StatusSoftFailure {
		o.Status = StatusSoftFailure
		o.Reason = reason
	}
	o.note(format, args...)
}

func completed(format string, args ...any) Outcome {
	var o Outcome
	o.note(format, args...)
	return o
}

func softFailure(reason Reason, format string, args ...any) Outcome {
	var o Outcome
	o.fail(reason, format, args...)
	return o
}
