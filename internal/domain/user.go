// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	MaxDisplayNameLen = 36
	defaultNamePrefix = "User"
	defaultNameIDLen  = 6
)

var (
	ErrDisplayNameTooLong = errors.New("display name too long")
	ErrDisplayNameEmpty   = errors.New("display name empty")
)

// DefaultDisplayName derives a short deterministic name from a connection id.
func DefaultDisplayName(id string) string {
	if len(id) > defaultNameIDLen {
		id = id[:defaultNameIDLen]
	}
	return defaultNamePrefix + id
}

// NormalizeDisplayName trims the name and checks its length.
// An empty result is reported as ErrDisplayNameEmpty so callers can fall back
// to DefaultDisplayName.
func NormalizeDisplayName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrDisplayNameEmpty
	}
	if utf8.RuneCountInString(name) > MaxDisplayNameLen {
		return "", ErrDisplayNameTooLong
	}
	return name, nil
}
