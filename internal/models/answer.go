// Package models defines the answer record and the small value types that
// travel between the store, the backup codec and the terminal client.
package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/answerbook/internal/common"
)

// Answer is a reusable text response. Id is the sole identity key and never
// changes after creation.
type Answer struct {
	Id       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Favorite bool   `json:"favorite"`
}

// String renders a one-line listing row.
func (a Answer) String() string {
	star := " "
	if a.Favorite {
		star = "*"
	}
	return fmt.Sprintf("%s %d [%s] %s", star, a.Id, a.Category, a.Title)
}

// Migrate fills in fields that older stored data may lack. Applying it to an
// already migrated answer changes nothing.
func (a *Answer) Migrate() {
	if a.Category == "" {
		a.Category = common.CategoryUncategorized
	}
}

// Matches reports whether a lowercased query occurs in the title, content or
// category.
func (a Answer) Matches(query string) bool {
	return strings.Contains(strings.ToLower(a.Title), query) ||
		strings.Contains(strings.ToLower(a.Content), query) ||
		strings.Contains(strings.ToLower(a.Category), query)
}

// Clone returns a copy of the slice. A nil input yields an empty, non-nil slice.
func Clone(answers []Answer) []Answer {
	out := make([]Answer, len(answers))
	copy(out, answers)
	return out
}

// IndexOf returns the position of the answer with the given id, or -1.
func IndexOf(answers []Answer, id int64) int {
	for i := range answers {
		if answers[i].Id == id {
			return i
		}
	}
	return -1
}
