// Package section builds the directive blocks for each axis of a sweep.
//
// Every builder takes the validated options and returns one Section per concrete choice on its
// axis, in a deterministic order. Sections that are identical in both directives and fragment
// collapse into one, since they would only produce the same job twice.
package section

import (
	"strings"
)

// Section is the directive block and filename fragment for one choice on one axis.
type Section struct {
	// Directive lines, without trailing newlines.
	Block []string
	// Token identifying the choice in file names. Empty for axes that never vary.
	Fragment string
}

// Text renders the block as it appears in a macro file.
func (s Section) Text() string {
	if len(s.Block) == 0 {
		return ""
	}
	return strings.Join(s.Block, "\n") + "\n"
}

func (s Section) equal(other Section) bool {
	if s.Fragment != other.Fragment || len(s.Block) != len(other.Block) {
		return false
	}
	for i := range s.Block {
		if s.Block[i] != other.Block[i] {
			return false
		}
	}
	return true
}

// appendUnique appends s unless an identical section is already present.
func appendUnique(sections []Section, s Section) []Section {
	for _, existing := range sections {
		if existing.equal(s) {
			return sections
		}
	}
	return append(sections, s)
}

func directive(command string, args ...string) string {
	if len(args) == 0 {
		return command
	}
	return command + " " + strings.Join(args, " ")
}

// Bool renders b the way the simulator's boolean directives expect it.
func Bool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
