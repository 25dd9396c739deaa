package model

// Category is one of the four fixed Ikigai questionnaire dimensions
type Category string

const (
	CategoryLove       Category = "love"
	CategoryGoodAt     Category = "goodAt"
	CategoryWorldNeeds Category = "worldNeeds"
	CategoryPaidFor    Category = "paidFor"
)

// Categories is the fixed order the wizard walks through
var Categories = []Category{
	CategoryLove,
	CategoryGoodAt,
	CategoryWorldNeeds,
	CategoryPaidFor,
}

// Valid reports whether c is one of the four known categories
func (c Category) Valid() bool {
	_, ok := CategoryInfo[c]
	return ok
}

// CategoryMeta is the display metadata for a category
type CategoryMeta struct {
	Key     Category `json:"key"`
	Title   string   `json:"title"` // Wizard step title
	Label   string   `json:"label"` // Circle label on the landing view
	Color   string   `json:"color"`
	Options []string `json:"options"` // Predefined selectable options
}

// CategoryInfo maps every category to its display metadata
var CategoryInfo = map[Category]CategoryMeta{
	CategoryLove: {
		Key:   CategoryLove,
		Title: "What do you love?",
		Label: "What you love",
		Color: "#2ec4b6",
		Options: []string{
			"Working with technology",
			"Helping others",
			"Creative problem-solving",
			"Learning new things",
			"Teaching and mentoring",
		},
	},
	CategoryGoodAt: {
		Key:   CategoryGoodAt,
		Title: "What are you good at?",
		Label: "What you are good at",
		Color: "#ffce3a",
		Options: []string{
			"Technical skills",
			"Communication",
			"Problem-solving",
			"Project management",
			"Team collaboration",
		},
	},
	CategoryWorldNeeds: {
		Key:   CategoryWorldNeeds,
		Title: "What does the world need?",
		Label: "What the world needs",
		Color: "#ff5ca7",
		Options: []string{
			"Better technology solutions",
			"Environmental sustainability",
			"Education and learning",
			"Healthcare improvements",
			"Social impact",
		},
	},
	CategoryPaidFor: {
		Key:   CategoryPaidFor,
		Title: "What can you be paid for?",
		Label: "What you can be paid for",
		Color: "#ff7f3f",
		Options: []string{
			"Technical expertise",
			"Management skills",
			"Creative services",
			"Consulting",
			"Specialized knowledge",
		},
	},
}

// HasOption reports whether option is one of the category's predefined options
func (m CategoryMeta) HasOption(option string) bool {
	for _, o := range m.Options {
		if o == option {
			return true
		}
	}
	return false
}

// CategoryAnswer is the raw input collected for one category
type CategoryAnswer struct {
	Selected []string `json:"selected"`        // Insertion ordered, unique
	Summary  string   `json:"summary"`         // Free text, at least 10 chars when it is the only signal
	Other    string   `json:"other,omitempty"` // Free text, no minimum
}

// QuestionnaireResponse holds one answer per category
type QuestionnaireResponse map[Category]*CategoryAnswer

// NewQuestionnaireResponse returns a response with all four categories present and empty
func NewQuestionnaireResponse() QuestionnaireResponse {
	q := make(QuestionnaireResponse, len(Categories))
	for _, c := range Categories {
		q[c] = &CategoryAnswer{Selected: []string{}}
	}
	return q
}

// Answer returns the answer for c, creating an empty one if it is missing
func (q QuestionnaireResponse) Answer(c Category) *CategoryAnswer {
	a, ok := q[c]
	if !ok || a == nil {
		a = &CategoryAnswer{Selected: []string{}}
		q[c] = a
	}
	return a
}
