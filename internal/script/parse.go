// Package script parses the header of chezmoi-toggle interpreter scripts.
//
// A chezmoi modify script using chezmoi-toggle as its interpreter looks like:
//
//	#!/usr/bin/env chezmoi-toggle
//	# version 1
//	# syntax shell
//	# profile dark
//	# enable mouse
//	# disable bell
//	# reset-flags false
//
// Every line after the shebang is a "#" comment holding one directive. A
// "#---" line ends the header; anything after it is ignored.
package script

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/thirteen37/chezmoi-toggle/internal/toggle"
)

// CurrentVersion is the latest supported script format version.
const CurrentVersion = 1

// Script represents a parsed chezmoi-toggle script header.
type Script struct {
	Version int
	// Syntax is a syntax name or literal prefix; empty means detect from
	// the target name.
	Syntax    string
	Selection toggle.Selection
}

// Parse parses a chezmoi-toggle script from its content.
func Parse(content string) (*Script, error) {
	script := &Script{}

	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNum := 0
	versionSeen := false

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		// Skip shebang
		if lineNum == 1 && strings.HasPrefix(line, "#!") {
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if trimmed == "#---" {
			break
		}
		if !strings.HasPrefix(trimmed, "#") {
			return nil, fmt.Errorf("line %d: expected a # directive, got %q", lineNum, trimmed)
		}
		body := strings.TrimSpace(strings.TrimPrefix(trimmed, "#"))
		if body == "" {
			continue
		}

		parts := strings.SplitN(body, " ", 2)
		if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
			return nil, fmt.Errorf("line %d: invalid directive %q", lineNum, body)
		}
		directive := parts[0]
		value := strings.TrimSpace(parts[1])

		if directive != "version" && !versionSeen {
			if !isKnownDirective(directive) {
				return nil, fmt.Errorf("line %d: unknown directive %q", lineNum, directive)
			}
			return nil, fmt.Errorf("line %d: version directive must come first", lineNum)
		}

		switch directive {
		case "version":
			if versionSeen {
				return nil, fmt.Errorf("line %d: duplicate version directive", lineNum)
			}
			v, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid version %q", lineNum, value)
			}
			if v > CurrentVersion {
				return nil, fmt.Errorf("line %d: unsupported version %d (max supported: %d), please upgrade chezmoi-toggle", lineNum, v, CurrentVersion)
			}
			if v < 1 {
				return nil, fmt.Errorf("line %d: invalid version %d", lineNum, v)
			}
			script.Version = v
			versionSeen = true

		case "syntax":
			if script.Syntax != "" {
				return nil, fmt.Errorf("line %d: duplicate syntax directive", lineNum)
			}
			script.Syntax = value

		case "profile":
			script.Selection.Profiles = append(script.Selection.Profiles, splitList(value)...)

		case "enable":
			script.Selection.Enable = append(script.Selection.Enable, splitList(value)...)

		case "disable":
			script.Selection.Disable = append(script.Selection.Disable, splitList(value)...)

		case "reset-flags":
			switch value {
			case "true":
				script.Selection.ResetFlags = true
			case "false":
				script.Selection.ResetFlags = false
			default:
				return nil, fmt.Errorf("line %d: reset-flags must be true or false", lineNum)
			}

		default:
			return nil, fmt.Errorf("line %d: unknown directive %q", lineNum, directive)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading script: %w", err)
	}

	if !versionSeen {
		return nil, fmt.Errorf("missing required version directive")
	}

	return script, nil
}

// splitList splits a comma or space separated list of names.
func splitList(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// isKnownDirective checks if a word is a known directive.
func isKnownDirective(word string) bool {
	switch word {
	case "version", "syntax", "profile", "enable", "disable", "reset-flags":
		return true
	}
	return false
}
