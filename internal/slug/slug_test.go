// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package slug

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Normal names ---
		{"simple name", "Books", "books"},
		{"two words", "Science Fiction", "science-fiction"},
		{"already lowercase", "movies", "movies"},
		{"mixed case", "Rock And Roll", "rock-and-roll"},

		// --- Special characters ---
		{"punctuation stripped", "Sci-Fi & Fantasy!", "sci-fi-fantasy"},
		{"apostrophe", "Director's Cut", "directors-cut"},
		{"digits kept", "Top 10 Albums", "top-10-albums"},

		// --- Whitespace handling ---
		{"leading and trailing spaces", "  Drama  ", "drama"},
		{"multiple inner spaces", "Stand  Up   Comedy", "stand-up-comedy"},

		// --- Hyphen collapsing ---
		{"existing hyphens", "post-rock", "post-rock"},
		{"double hyphen collapsed", "indie--folk", "indie-folk"},
		{"hyphens trimmed", "-jazz-", "jazz"},

		// --- Edge cases ---
		{"empty string", "", ""},
		{"only punctuation", "!?&", ""},
		{"only spaces", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple", "books", true},
		{"with hyphen", "science-fiction", true},
		{"with underscore", "lo_fi", true},
		{"uppercase allowed", "Books", true},
		{"digits", "top-10", true},
		{"empty", "", false},
		{"space", "science fiction", false},
		{"unicode", "книги", false},
		{"punctuation", "sci-fi!", false},
		{"at max length", strings.Repeat("a", MaxLen), true},
		{"over max length", strings.Repeat("a", MaxLen+1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Valid(tt.input); got != tt.want {
				t.Errorf("Valid(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
