package export

import (
	"careerai/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownFullResult(t *testing.T) {
	r := &model.IkigaiResult{
		Summary:     "S",
		Sentiment:   "Motivated",
		Themes:      []string{"a", "b"},
		Suggestions: []string{"Counsellor", "Developer Advocate"},
		Paths:       []string{"Bootcamp"},
	}

	want := "# Your Ikigai Results\n" +
		"\n## Summary\n\nS\n" +
		"\n## Sentiment\n\nMotivated\n" +
		"\n## Suggested Roles\n\n- Counsellor\n- Developer Advocate\n" +
		"\n## Key Themes\n\n- a\n- b\n" +
		"\n## Suggested Paths\n\n- Bootcamp\n"
	assert.Equal(t, want, Markdown(r))
}

func TestMarkdownSkipsAbsentFields(t *testing.T) {
	got := Markdown(&model.IkigaiResult{Summary: "Only a summary", Themes: []string{" ", ""}})
	assert.Equal(t, "# Your Ikigai Results\n\n## Summary\n\nOnly a summary\n", got)
	assert.Equal(t, "# Your Ikigai Results\n", Markdown(nil))
}

func TestJobSearchURL(t *testing.T) {
	assert.Equal(t,
		"https://www.linkedin.com/jobs/search/?keywords=Data%20Scientist%20%26%20Analyst",
		JobSearchURL("Data Scientist & Analyst"))
}
