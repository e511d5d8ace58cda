package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nbrandt/linkstash/internal/enrich"
	"github.com/nbrandt/linkstash/internal/model"
	"github.com/nbrandt/linkstash/internal/session"
	"github.com/nbrandt/linkstash/internal/storage"
	"github.com/nbrandt/linkstash/internal/view"
)

// Mode is the top-level UI mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeForm
	ModeConfirmDelete
	ModeHelp
)

// enrichMsg carries an enrichment result back into the update loop,
// tagged with the session generation that requested it.
type enrichMsg struct {
	generation int
	result     enrich.Result
	err        error
}

// App is the main bubbletea model for the bookmark manager.
type App struct {
	collection *model.Collection
	store      storage.Storage
	enricher   *enrich.Client
	session    *session.Session
	keys       KeyMap
	styles     Styles
	openURL    func(string)

	mode        Mode
	cursor      int
	visible     []model.Bookmark
	categories  []string
	categoryIdx int
	sortMode    view.SortMode
	query       string
	searchInput textinput.Model
	form        FormState
	deleteID    string
	skipConfirm bool
	status      string

	// For gg command
	lastKeyWasG bool

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Collection *model.Collection
	Store      storage.Storage
	Enricher   *enrich.Client
	Config     *storage.Config
	OpenURL    func(string) // optional browser launcher
	Keys       *KeyMap      // optional, uses default if nil
	Styles     *Styles      // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	sortMode := view.SortDateDesc
	skipConfirm := false
	if params.Config != nil {
		sortMode = view.SortMode(params.Config.DefaultSort)
		skipConfirm = params.Config.SkipDeleteConfirm
	}

	searchInput := textinput.New()
	searchInput.Placeholder = "Search..."
	searchInput.CharLimit = 128
	searchInput.Width = 40

	app := App{
		collection:  params.Collection,
		store:       params.Store,
		enricher:    params.Enricher,
		session:     session.New(),
		keys:        keys,
		styles:      styles,
		openURL:     params.OpenURL,
		sortMode:    sortMode,
		skipConfirm: skipConfirm,
		searchInput: searchInput,
		form:        NewFormState(),
		width:       80,
		height:      24,
	}

	app.refresh()
	return app
}

// Collection returns the authoritative collection.
func (a App) Collection() *model.Collection {
	return a.collection
}

// Mode returns the current UI mode.
func (a App) Mode() Mode {
	return a.mode
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Visible returns the currently displayed bookmarks.
func (a App) Visible() []model.Bookmark {
	return a.visible
}

// ActiveCategory returns the active category filter.
func (a App) ActiveCategory() string {
	if len(a.categories) == 0 {
		return view.FilterAll
	}
	return a.categories[a.categoryIdx]
}

// refresh recomputes the category chips and the derived view, clamping
// the cursor to the new list.
func (a *App) refresh() {
	active := a.ActiveCategory()
	a.categories = view.Categories(a.collection.Bookmarks)

	a.categoryIdx = 0
	for i, c := range a.categories {
		if c == active {
			a.categoryIdx = i
			break
		}
	}

	a.visible = view.Apply(a.collection.Bookmarks, a.ActiveCategory(), a.query, a.sortMode)
	if a.cursor >= len(a.visible) {
		a.cursor = len(a.visible) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// persist writes the collection after a mutation. Failures are surfaced
// in the status line rather than silently dropped.
func (a *App) persist() {
	if a.store == nil {
		return
	}
	if err := a.store.Save(a.collection); err != nil {
		a.status = fmt.Sprintf("save failed: %v", err)
	}
}

// selected returns the bookmark under the cursor, or nil.
func (a *App) selected() *model.Bookmark {
	if len(a.visible) == 0 || a.cursor >= len(a.visible) {
		return nil
	}
	return &a.visible[a.cursor]
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case enrichMsg:
		return a.updateEnrichment(msg), nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeSearch:
			return a.updateSearch(msg)
		case ModeForm:
			return a.updateForm(msg)
		case ModeConfirmDelete:
			return a.updateConfirmDelete(msg)
		case ModeHelp:
			a.mode = ModeNormal
			return a, nil
		default:
			return a.updateNormal(msg)
		}
	}

	return a, nil
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if len(a.visible) > 0 && a.cursor < len(a.visible)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.visible) > 0 {
			a.cursor = len(a.visible) - 1
		}

	case key.Matches(msg, a.keys.NextCategory):
		a.categoryIdx = (a.categoryIdx + 1) % len(a.categories)
		a.cursor = 0
		a.visible = view.Apply(a.collection.Bookmarks, a.ActiveCategory(), a.query, a.sortMode)

	case key.Matches(msg, a.keys.PrevCategory):
		a.categoryIdx = (a.categoryIdx + len(a.categories) - 1) % len(a.categories)
		a.cursor = 0
		a.visible = view.Apply(a.collection.Bookmarks, a.ActiveCategory(), a.query, a.sortMode)

	case key.Matches(msg, a.keys.Sort):
		a.sortMode = view.NextSortMode(a.sortMode)
		a.refresh()
		a.status = fmt.Sprintf("sort: %s", a.sortMode)

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		a.searchInput.SetValue(a.query)
		a.searchInput.Focus()

	case key.Matches(msg, a.keys.Add):
		a.session.OpenCreate()
		a.form.Load(a.session.Draft())
		a.mode = ModeForm
		a.status = ""

	case key.Matches(msg, a.keys.Edit):
		if b := a.selected(); b != nil {
			a.session.OpenEdit(*b)
			a.form.Load(a.session.Draft())
			a.mode = ModeForm
			a.status = ""
		}

	case key.Matches(msg, a.keys.Delete):
		if b := a.selected(); b != nil {
			if a.skipConfirm {
				a.collection.Remove(b.ID)
				a.persist()
				a.refresh()
			} else {
				a.deleteID = b.ID
				a.mode = ModeConfirmDelete
			}
		}

	case key.Matches(msg, a.keys.Favorite):
		if b := a.selected(); b != nil {
			a.collection.ToggleFavorite(b.ID)
			a.persist()
			a.refresh()
		}

	case key.Matches(msg, a.keys.YankURL):
		if b := a.selected(); b != nil {
			if err := clipboard.WriteAll(b.URL); err != nil {
				a.status = fmt.Sprintf("clipboard: %v", err)
			} else {
				a.status = "URL copied"
			}
		}

	case key.Matches(msg, a.keys.Open):
		if b := a.selected(); b != nil && a.openURL != nil {
			a.openURL(b.URL)
		}

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	return a, nil
}

func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		a.query = ""
		a.searchInput.Reset()
		a.refresh()
		return a, nil

	case tea.KeyEnter:
		a.mode = ModeNormal
		a.searchInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	a.query = a.searchInput.Value()
	a.cursor = 0
	a.visible = view.Apply(a.collection.Bookmarks, a.ActiveCategory(), a.query, a.sortMode)
	return a, cmd
}

func (a App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.session.Cancel()
		a.mode = ModeNormal
		return a, nil

	case tea.KeyEnter:
		return a.saveForm()

	case tea.KeyTab, tea.KeyDown:
		return a.moveFormFocus(true)

	case tea.KeyShiftTab, tea.KeyUp:
		return a.moveFormFocus(false)
	}

	var cmd tea.Cmd
	a.form.inputs[a.form.focus], cmd = a.form.inputs[a.form.focus].Update(msg)
	a.session.SetDraft(a.form.Draft(a.session.Draft()))
	return a, cmd
}

// moveFormFocus shifts field focus. Leaving the URL field while
// creating triggers enrichment, once per loss of focus.
func (a App) moveFormFocus(forward bool) (tea.Model, tea.Cmd) {
	a.session.SetDraft(a.form.Draft(a.session.Draft()))

	var blurred int
	if forward {
		blurred = a.form.Next()
	} else {
		blurred = a.form.Prev()
	}

	if blurred == fieldURL && a.enricher != nil && a.session.State() == session.StateCreating {
		if generation, ok := a.session.BeginEnrichment(); ok {
			return a, a.enrichCmd(generation, a.session.Draft().URL)
		}
	}
	return a, nil
}

func (a App) saveForm() (tea.Model, tea.Cmd) {
	if a.session.Enriching() {
		a.status = "fetching metadata..."
		return a, nil
	}

	a.session.SetDraft(a.form.Draft(a.session.Draft()))

	_, err := a.session.Save(a.collection)
	switch {
	case errors.Is(err, model.ErrInvalidURL):
		a.status = "invalid URL"
		return a, nil
	case errors.Is(err, model.ErrDuplicateURL):
		a.status = "a bookmark with this URL already exists"
		return a, nil
	case err != nil:
		a.status = err.Error()
		return a, nil
	}

	a.mode = ModeNormal
	a.status = ""
	a.persist()
	a.refresh()
	return a, nil
}

func (a App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		a.collection.Remove(a.deleteID)
		a.deleteID = ""
		a.mode = ModeNormal
		a.persist()
		a.refresh()
	default:
		// Declined delete is a no-op
		a.deleteID = ""
		a.mode = ModeNormal
	}
	return a, nil
}

// updateEnrichment merges a completed lookup into the draft. Stale
// generations are dropped by the session.
func (a App) updateEnrichment(msg enrichMsg) App {
	if msg.err != nil {
		a.session.FailEnrichment(msg.generation)
		if errors.Is(msg.err, model.ErrInvalidURL) && a.mode == ModeForm {
			a.status = "invalid URL"
		}
		return a
	}

	if !a.session.ApplyEnrichment(msg.generation, msg.result) {
		return a
	}

	a.form.SetValues(a.session.Draft())
	if msg.result.Degraded {
		a.status = "metadata lookup failed, using defaults"
	} else {
		a.status = ""
	}
	return a
}

// enrichCmd runs the metadata lookup off the update loop.
func (a App) enrichCmd(generation int, rawURL string) tea.Cmd {
	enricher := a.enricher
	return func() tea.Msg {
		result, err := enricher.Enrich(context.Background(), rawURL)
		return enrichMsg{generation: generation, result: result, err: err}
	}
}
