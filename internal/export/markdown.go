package export

import (
	"careerai/internal/model"
	"fmt"
	"net/url"
	"strings"
)

// Markdown renders a result the way the results page lays it out.
// Empty sections are skipped.
func Markdown(r *model.IkigaiResult) string {
	var b strings.Builder
	b.WriteString("# Your Ikigai Results\n")

	section := func(title, body string) {
		if strings.TrimSpace(body) == "" {
			return
		}
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", title, body)
	}
	list := func(items []string, prefix string) string {
		var lines []string
		for _, it := range items {
			if it = strings.TrimSpace(it); it != "" {
				lines = append(lines, prefix+it)
			}
		}
		return strings.Join(lines, "\n")
	}

	if r == nil {
		return b.String()
	}
	section("Summary", r.Summary)
	section("Sentiment", r.Sentiment)
	section("Suggested Roles", list(r.Suggestions, "- "))
	section("Key Themes", list(r.Themes, "- "))
	section("Suggested Paths", list(r.Paths, "- "))
	return b.String()
}

// JobSearchURL links a suggested role to a LinkedIn job search
func JobSearchURL(role string) string {
	q := strings.ReplaceAll(url.QueryEscape(role), "+", "%20")
	return "https://www.linkedin.com/jobs/search/?keywords=" + q
}
