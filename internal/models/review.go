// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Review score bounds. Enforced at validation time and by a DB check
// constraint.
const (
	MinScore = 1
	MaxScore = 10
)

// Review is a user's scored write-up of a title. At most one review may
// exist per (title, author) pair. Deleting a title cascades to its
// reviews.
type Review struct {
	ID       uuid.UUID `json:"id"`
	TitleID  uuid.UUID `json:"-"`
	AuthorID uuid.UUID `json:"-"`
	Author   string    `json:"author"` // username, populated by store reads
	Text     string    `json:"text"`
	Score    int       `json:"score"`
	PubDate  time.Time `json:"pub_date"`
}

// Comment is a user's remark on a review. Deleting a review cascades to
// its comments.
type Comment struct {
	ID       uuid.UUID `json:"id"`
	ReviewID uuid.UUID `json:"-"`
	AuthorID uuid.UUID `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}
