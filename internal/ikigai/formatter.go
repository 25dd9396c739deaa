package ikigai

import (
	"careerai/internal/model"
	"strings"
)

// NoInformation is sent for a category the user left entirely empty
const NoInformation = "No information provided"

// FormatCategory turns a raw answer into the single descriptive string sent upstream.
// Output is a pure function of the answer; selections keep their insertion order.
func FormatCategory(answer *model.CategoryAnswer) string {
	if answer == nil {
		return NoInformation
	}

	var parts []string
	if len(answer.Selected) > 0 {
		parts = append(parts, "Selected items: "+strings.Join(answer.Selected, ", ")+".")
	}
	if other := strings.TrimSpace(answer.Other); other != "" {
		parts = append(parts, "Other: "+strings.TrimSuffix(other, ".")+".")
	}
	if summary := strings.TrimSpace(answer.Summary); summary != "" {
		parts = append(parts, summary)
	}

	out := strings.TrimSpace(strings.Join(parts, " "))
	if out == "" {
		return NoInformation
	}
	return out
}

// BuildRequest formats every category of a response
func BuildRequest(response model.QuestionnaireResponse) model.SummarizationRequest {
	req := make(model.SummarizationRequest, len(model.Categories))
	for _, c := range model.Categories {
		req[c] = FormatCategory(response[c])
	}
	return req
}
