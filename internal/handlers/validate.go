package handlers

import (
	"strings"
	"time"
	"unicode/utf8"

	"reviewhub/internal/errs"
	"reviewhub/internal/models"
	"reviewhub/internal/slug"
)

// Validation limits for content fields.
const (
	maxTaxonomyNameLen = 256
	maxTitleNameLen    = 250
	maxTextLen         = 10_000
)

// validateTaxonomy checks a category or genre write payload. An empty
// slug is filled in from the name.
func validateTaxonomy(name, slugValue string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errs.Validation("name", "must not be empty")
	}
	if utf8.RuneCountInString(name) > maxTaxonomyNameLen {
		return "", errs.Validation("name", "must be at most 256 characters")
	}
	if slugValue == "" {
		slugValue = slug.Generate(name)
	}
	if !slug.Valid(slugValue) {
		return "", errs.Validation("slug", "must be at most 50 characters of letters, digits, hyphens and underscores")
	}
	return slugValue, nil
}

// validateTitleName checks a title name.
func validateTitleName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.Validation("name", "must not be empty")
	}
	if utf8.RuneCountInString(name) > maxTitleNameLen {
		return errs.Validation("name", "must be at most 250 characters")
	}
	return nil
}

// validateYear rejects release years later than the current calendar year.
func validateYear(year int) error {
	if year > time.Now().UTC().Year() {
		return errs.Validation("year", "must not be later than the current year")
	}
	return nil
}

// validateScore enforces the review score range.
func validateScore(score int) error {
	if score < models.MinScore || score > models.MaxScore {
		return errs.Validation("score", "must be between 1 and 10")
	}
	return nil
}

// validateText checks a review or comment body.
func validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errs.Validation("text", "must not be empty")
	}
	if utf8.RuneCountInString(text) > maxTextLen {
		return errs.Validation("text", "must be at most 10,000 characters")
	}
	return nil
}
