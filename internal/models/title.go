// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Title represents a reviewable work. Category is optional and survives
// category deletion as null; genres are a set of Genre references.
type Title struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Year        int       `json:"year"`
	Description *string   `json:"description"`
	Category    *Category `json:"category"`
	Genres      []Genre   `json:"genre"`

	// Rating is the arithmetic mean of the title's review scores, or nil
	// when no reviews exist. It is derived at read time, never stored.
	Rating *float64 `json:"rating"`

	CreatedAt time.Time `json:"-"`
}
