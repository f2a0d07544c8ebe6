// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation and validation for
// category and genre identity keys.
package slug

import (
	"regexp"
	"strings"
)

// MaxLen is the maximum slug length accepted for categories and genres.
const MaxLen = 50

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// validSlug is the charset accepted for client-supplied slugs.
	validSlug = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Science Fiction" → "science-fiction"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Valid reports whether a client-supplied slug is non-empty, within
// MaxLen, and restricted to letters, digits, hyphens and underscores.
func Valid(s string) bool {
	return s != "" && len(s) <= MaxLen && validSlug.MatchString(s)
}
