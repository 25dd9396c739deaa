package ikigai

import (
	"careerai/internal/model"
	"errors"
	"fmt"
)

var (
	ErrNotOnLastCategory = errors.New("submission is only available on the last category")
	ErrUnknownOption     = errors.New("option is not offered for this category")
)

// Observer is notified with the newly active category on every step change
type Observer func(model.Category)

// Wizard sequences the four categories and holds the in-progress answers
type Wizard struct {
	Step    int                         `json:"step"`
	Answers model.QuestionnaireResponse `json:"answers"`

	observer Observer
}

// NewWizard returns a wizard positioned on the first category with empty answers
func NewWizard() *Wizard {
	return &Wizard{
		Step:    0,
		Answers: model.NewQuestionnaireResponse(),
	}
}

// Observe attaches the step-change observer
func (w *Wizard) Observe(o Observer) {
	w.observer = o
}

// Normalize repairs a wizard restored from storage
func (w *Wizard) Normalize() {
	if w.Answers == nil {
		w.Answers = model.NewQuestionnaireResponse()
	}
	for _, c := range model.Categories {
		w.Answers.Answer(c)
	}
	if w.Step < 0 {
		w.Step = 0
	}
	if w.Step > len(model.Categories)-1 {
		w.Step = len(model.Categories) - 1
	}
}

// Current returns the active category
func (w *Wizard) Current() model.Category {
	return model.Categories[w.Step]
}

// IsLast reports whether the active category is the final one
func (w *Wizard) IsLast() bool {
	return w.Step == len(model.Categories)-1
}

// CurrentAnswer returns the answer being edited
func (w *Wizard) CurrentAnswer() *model.CategoryAnswer {
	return w.Answers.Answer(w.Current())
}

// Advance moves to the next category once the current one is complete.
// On the last category a complete answer leaves the step unchanged.
func (w *Wizard) Advance() error {
	if err := validateCategory(w.Current(), w.CurrentAnswer()); err != nil {
		return err
	}
	if w.IsLast() {
		return nil
	}
	w.moveTo(w.Step + 1)
	return nil
}

// Retreat moves to the previous category without validation
func (w *Wizard) Retreat() {
	if w.Step == 0 {
		return
	}
	w.moveTo(w.Step - 1)
}

// CheckSubmittable reports whether the response may be submitted
func (w *Wizard) CheckSubmittable() error {
	if !w.IsLast() {
		return ErrNotOnLastCategory
	}
	for _, c := range model.Categories {
		if err := validateCategory(c, w.Answers[c]); err != nil {
			return err
		}
	}
	return nil
}

// ToggleOption adds or removes a predefined option on the current category
func (w *Wizard) ToggleOption(option string) error {
	if !model.CategoryInfo[w.Current()].HasOption(option) {
		return ErrUnknownOption
	}
	a := w.CurrentAnswer()
	for i, s := range a.Selected {
		if s == option {
			a.Selected = append(a.Selected[:i:i], a.Selected[i+1:]...)
			return nil
		}
	}
	a.Selected = append(a.Selected, option)
	return nil
}

// SetSelected replaces the current category's selections, dropping duplicates
func (w *Wizard) SetSelected(options []string) error {
	selected, err := CleanSelected(w.Current(), options)
	if err != nil {
		return err
	}
	w.CurrentAnswer().Selected = selected
	return nil
}

// CleanSelected checks every option against the category's predefined list
// and drops repeats, keeping first-seen order
func CleanSelected(c model.Category, options []string) ([]string, error) {
	meta := model.CategoryInfo[c]
	selected := make([]string, 0, len(options))
	seen := make(map[string]struct{}, len(options))
	for _, o := range options {
		if !meta.HasOption(o) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOption, o)
		}
		if _, dup := seen[o]; dup {
			continue
		}
		seen[o] = struct{}{}
		selected = append(selected, o)
	}
	return selected, nil
}

// SetSummary replaces the current category's summary text
func (w *Wizard) SetSummary(text string) {
	w.CurrentAnswer().Summary = text
}

// SetOther replaces the current category's free-form items
func (w *Wizard) SetOther(text string) {
	w.CurrentAnswer().Other = text
}

// Request formats the collected answers for submission
func (w *Wizard) Request() model.SummarizationRequest {
	return BuildRequest(w.Answers)
}

func (w *Wizard) moveTo(step int) {
	w.Step = step
	if w.observer != nil {
		w.observer(w.Current())
	}
}
