package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// SummarizationRequest maps each category to its formatted description
type SummarizationRequest map[Category]string

// MarshalJSON writes the categories in wizard order so the upstream prompt is stable
func (r SummarizationRequest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range Categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(c))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r[c])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// IkigaiResult is the structured synthesis returned by the upstream model
type IkigaiResult struct {
	Summary     string   `json:"summary,omitempty" bson:"summary,omitempty"`
	Sentiment   string   `json:"sentiment,omitempty" bson:"sentiment,omitempty"`
	Themes      []string `json:"themes,omitempty" bson:"themes,omitempty"`
	Suggestions []string `json:"suggestions,omitempty" bson:"suggestions,omitempty"` // 2-3 role names
	Paths       []string `json:"paths,omitempty" bson:"paths,omitempty"`             // 1-2 path descriptions
}

// ResultRecord is an archived submission
type ResultRecord struct {
	ID        string               `json:"id" bson:"_id,omitempty"`
	UserID    string               `json:"userId" bson:"userId"`
	Request   SummarizationRequest `json:"request" bson:"request"`
	Result    IkigaiResult         `json:"result" bson:"result"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
}
