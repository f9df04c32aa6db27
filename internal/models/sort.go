package models

import (
	"fmt"

	"github.com/dmitrijs2005/answerbook/internal/common"
)

// SortOrder selects how answers are ordered by title.
type SortOrder string

const (
	SortNone     SortOrder = ""
	SortNameAsc  SortOrder = "name-asc"
	SortNameDesc SortOrder = "name-desc"
)

// ParseSortOrder validates a user-supplied order. The empty string yields
// SortNone (insertion order).
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(s); o {
	case SortNone, SortNameAsc, SortNameDesc:
		return o, nil
	default:
		return SortNone, fmt.Errorf("%w: unknown sort order %q (want %s or %s)",
			common.ErrValidation, s, SortNameAsc, SortNameDesc)
	}
}
