// Package errs defines the failure kinds reported by the toggle pipeline.
//
// Every error here is raised while validating a document, before any byte
// of the target file is rewritten. Line numbers are 1-based.
package errs

import (
	"fmt"
	"strings"
)

// UnsupportedSyntaxError is returned when no comment convention is known for
// a file and none was given explicitly.
type UnsupportedSyntaxError struct {
	// Path is the file that was inspected (may be empty for stdin).
	Path string
	// Name is the requested syntax name, if one was given.
	Name string
}

func (e *UnsupportedSyntaxError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unsupported syntax %q", e.Name)
	}
	if e.Path == "" {
		return "unsupported syntax: no comment syntax given for stdin (use --syntax)"
	}
	return fmt.Sprintf("unsupported syntax: cannot determine comment syntax for %s (use --syntax)", e.Path)
}

// MalformedDirectiveError is returned when a line carries the directive
// marker but the rest of it does not parse.
type MalformedDirectiveError struct {
	Line   int
	Reason string
}

func (e *MalformedDirectiveError) Error() string {
	return fmt.Sprintf("line %d: malformed directive: %s", e.Line, e.Reason)
}

// DirectiveCollisionError is returned when commenting or uncommenting a
// line would make it read as a directive, which the next run could not
// undo.
type DirectiveCollisionError struct {
	Group string
	Line  int
}

func (e *DirectiveCollisionError) Error() string {
	return fmt.Sprintf("line %d: toggling this line of group %q would turn it into a toggle directive", e.Line, e.Group)
}

// UnmatchedOpenError is returned when a block is never closed, or when a
// close for an enclosing block arrives while it is still open.
type UnmatchedOpenError struct {
	Group string
	Line  int
}

func (e *UnmatchedOpenError) Error() string {
	return fmt.Sprintf("line %d: group %q is opened but never closed", e.Line, e.Group)
}

// UnmatchedCloseError is returned for a close directive with no open block
// of that name.
type UnmatchedCloseError struct {
	Group string
	Line  int
}

func (e *UnmatchedCloseError) Error() string {
	if e.Group == "" {
		return fmt.Sprintf("line %d: end without an open group", e.Line)
	}
	return fmt.Sprintf("line %d: end of group %q without a matching begin", e.Line, e.Group)
}

// DuplicateGroupError is returned when two sibling profile blocks in the
// same scope claim the same group name.
type DuplicateGroupError struct {
	Group string
	Line  int
	// First is the line of the earlier sibling.
	First int
}

func (e *DuplicateGroupError) Error() string {
	return fmt.Sprintf("line %d: group %q already defined in this scope at line %d", e.Line, e.Group, e.First)
}

// UnknownGroupError is returned when a requested group does not exist in
// the document.
type UnknownGroupError struct {
	Requested string
	Available []string
}

func (e *UnknownGroupError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("unknown group %q (no groups of that kind in file)", e.Requested)
	}
	return fmt.Sprintf("unknown group %q (available: %s)", e.Requested, strings.Join(e.Available, ", "))
}

// ConflictingSelectionError is returned when a selection asks for two
// mutually exclusive things at once.
type ConflictingSelectionError struct {
	Groups []string
	Reason string
}

func (e *ConflictingSelectionError) Error() string {
	return fmt.Sprintf("conflicting selection %s: %s", strings.Join(e.Groups, ", "), e.Reason)
}
