package ikigai

import (
	"careerai/internal/model"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Request schema versions accepted by DecodeSubmission
const (
	SchemaRawStrings = 1 // {"version":1,"love":"...",...}
	SchemaAnswers    = 2 // {"version":2,"answers":{"love":{"selected":[],"summary":"","other":""},...}}
)

var ErrUnsupportedVersion = errors.New("unsupported request version")

// Submission is the current (v2) request body
type Submission struct {
	Version int                              `json:"version"`
	Answers map[string]*model.CategoryAnswer `json:"answers"`
}

// DecodeSubmission parses a versioned request body into a formatted request.
// Version 1 bodies are migrated: each raw string is used as the category text.
func DecodeSubmission(data []byte) (model.SummarizationRequest, error) {
	var envelope struct {
		Version *int `json:"version"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	if envelope.Version == nil {
		return nil, fmt.Errorf("%w: version is required", ErrUnsupportedVersion)
	}

	switch *envelope.Version {
	case SchemaAnswers:
		return decodeAnswers(data)
	case SchemaRawStrings:
		return migrateRawStrings(data)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, *envelope.Version)
	}
}

func decodeAnswers(data []byte) (model.SummarizationRequest, error) {
	var sub Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	response := model.NewQuestionnaireResponse()
	for key, answer := range sub.Answers {
		c := model.Category(key)
		if !c.Valid() {
			return nil, fmt.Errorf("invalid request body: unknown category %q", key)
		}
		if answer == nil {
			continue
		}
		selected, err := CleanSelected(c, answer.Selected)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", c, err)
		}
		answer.Selected = selected
		response[c] = answer
	}
	return BuildRequest(response), nil
}

func migrateRawStrings(data []byte) (model.SummarizationRequest, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	req := make(model.SummarizationRequest, len(model.Categories))
	for _, c := range model.Categories {
		req[c] = NoInformation
		raw, ok := fields[string(c)]
		if !ok {
			continue
		}
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, fmt.Errorf("invalid request body: %s must be a string in version %d", c, SchemaRawStrings)
		}
		if text = strings.TrimSpace(text); text != "" {
			req[c] = text
		}
	}
	return req, nil
}
