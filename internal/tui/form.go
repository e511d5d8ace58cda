package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/nbrandt/linkstash/internal/model"
	"github.com/nbrandt/linkstash/internal/session"
)

// Form field indexes, in focus order.
const (
	fieldURL = iota
	fieldTitle
	fieldDescription
	fieldCategory
	fieldTags
	fieldNotes
	fieldCount
)

var fieldLabels = [fieldCount]string{"URL", "Title", "Description", "Category", "Tags", "Notes"}

// FormState holds the text inputs for the add/edit modal. The draft of
// record lives in the session; the inputs are synced into it on every
// change.
type FormState struct {
	inputs [fieldCount]textinput.Model
	focus  int
}

// NewFormState creates a FormState with initialized inputs.
func NewFormState() FormState {
	var f FormState

	for i := range f.inputs {
		input := textinput.New()
		input.CharLimit = 256
		input.Width = 48
		f.inputs[i] = input
	}

	f.inputs[fieldURL].Placeholder = "https://..."
	f.inputs[fieldURL].CharLimit = 1024
	f.inputs[fieldTitle].Placeholder = "Title"
	f.inputs[fieldDescription].Placeholder = "Description"
	f.inputs[fieldCategory].Placeholder = "Uncategorized"
	f.inputs[fieldTags].Placeholder = "tag1, tag2, tag3"
	f.inputs[fieldNotes].Placeholder = "Notes"

	return f
}

// Load seeds the inputs from a session draft and focuses the URL field.
func (f *FormState) Load(draft session.Draft) {
	f.SetValues(draft)
	f.setFocus(fieldURL)
}

// SetValues refreshes the input values without moving focus. Used when
// an enrichment result lands while the user is on another field.
func (f *FormState) SetValues(draft session.Draft) {
	f.inputs[fieldURL].SetValue(draft.URL)
	f.inputs[fieldTitle].SetValue(draft.Title)
	f.inputs[fieldDescription].SetValue(draft.Description)
	f.inputs[fieldCategory].SetValue(string(draft.Category))
	f.inputs[fieldTags].SetValue(draft.Tags)
	f.inputs[fieldNotes].SetValue(draft.Notes)
}

// Draft reads the inputs back into a draft. Image and Favicon are not
// edited in the form, so they carry over from the base draft.
func (f *FormState) Draft(base session.Draft) session.Draft {
	base.URL = f.inputs[fieldURL].Value()
	base.Title = f.inputs[fieldTitle].Value()
	base.Description = f.inputs[fieldDescription].Value()
	base.Category = model.Category(f.inputs[fieldCategory].Value())
	base.Tags = f.inputs[fieldTags].Value()
	base.Notes = f.inputs[fieldNotes].Value()
	return base
}

// Next moves focus to the following field and returns the field that
// lost focus.
func (f *FormState) Next() int {
	blurred := f.focus
	f.setFocus((f.focus + 1) % fieldCount)
	return blurred
}

// Prev moves focus to the preceding field and returns the field that
// lost focus.
func (f *FormState) Prev() int {
	blurred := f.focus
	f.setFocus((f.focus + fieldCount - 1) % fieldCount)
	return blurred
}

// Focus returns the currently focused field index.
func (f *FormState) Focus() int {
	return f.focus
}

func (f *FormState) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}
