package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/answerbook/internal/common"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type answerInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

var notFavorites = validation.NotIn(common.CategoryFavorites).
	Error("is reserved for the favorites filter")

// notBlank rejects strings that are empty after trimming, without trimming
// the value itself.
var notBlank = validation.By(func(v any) error {
	if s, _ := v.(string); strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
})

// newAnswerInput trims title and category and checks all three fields. The
// content is kept verbatim.
func newAnswerInput(title, content, category string) (answerInput, error) {
	in := answerInput{
		Title:    strings.TrimSpace(title),
		Content:  content,
		Category: strings.TrimSpace(category),
	}

	err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required),
		validation.Field(&in.Content, notBlank),
		validation.Field(&in.Category, validation.Required, notFavorites),
	)
	if err != nil {
		return answerInput{}, fmt.Errorf("%w: %w", common.ErrValidation, err)
	}
	return in, nil
}

func validateCategoryName(name string) error {
	if err := validation.Validate(name, validation.Required, notFavorites); err != nil {
		return fmt.Errorf("%w: category name %w", common.ErrValidation, err)
	}
	return nil
}
