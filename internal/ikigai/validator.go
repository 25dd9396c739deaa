package ikigai

import (
	"careerai/internal/model"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MinSummaryLength is the minimum trimmed summary length that completes a category on its own
const MinSummaryLength = 10

// ValidationError reports a category that cannot be left yet
type ValidationError struct {
	Category model.Category
	Message  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// IsCategoryComplete reports whether an answer carries enough content to leave its step
func IsCategoryComplete(answer *model.CategoryAnswer) bool {
	if answer == nil {
		return false
	}
	if len(answer.Selected) > 0 {
		return true
	}
	if utf8.RuneCountInString(strings.TrimSpace(answer.Summary)) >= MinSummaryLength {
		return true
	}
	return strings.TrimSpace(answer.Other) != ""
}

func validateCategory(c model.Category, answer *model.CategoryAnswer) error {
	if IsCategoryComplete(answer) {
		return nil
	}
	return &ValidationError{
		Category: c,
		Message:  fmt.Sprintf("select at least one option, add other items, or write a summary of %d or more characters", MinSummaryLength),
	}
}
