package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nbrandt/linkstash/internal/session"
)

// View implements tea.Model.
func (a App) View() string {
	switch a.mode {
	case ModeForm:
		return a.styles.App.Render(a.renderForm())
	case ModeConfirmDelete:
		return a.styles.App.Render(a.renderConfirmDelete())
	case ModeHelp:
		return a.styles.App.Render(a.renderHelp())
	default:
		return a.styles.App.Render(a.renderList())
	}
}

func (a App) renderList() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("linkstash"))
	b.WriteString("\n\n")
	b.WriteString(a.renderChips())
	b.WriteString("\n\n")

	if a.mode == ModeSearch {
		b.WriteString("/" + a.searchInput.View())
		b.WriteString("\n\n")
	} else if a.query != "" {
		b.WriteString(a.styles.Status.Render(fmt.Sprintf("filter: %q", a.query)))
		b.WriteString("\n\n")
	}

	if len(a.visible) == 0 {
		b.WriteString(a.styles.Empty.Render("No bookmarks. Press 'a' to add one."))
		b.WriteString("\n")
	}

	maxRows := a.height - 12
	if maxRows < 3 {
		maxRows = 3
	}
	start := 0
	if a.cursor >= maxRows {
		start = a.cursor - maxRows + 1
	}

	for i := start; i < len(a.visible) && i < start+maxRows; i++ {
		b.WriteString(a.renderItem(i))
	}

	b.WriteString("\n")
	if a.status != "" {
		b.WriteString(a.styles.Warning.Render(a.status))
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render(
		"j/k: move  c: category  /: search  s: sort  a: add  e: edit  d: delete  f: favorite  ?: help  q: quit"))

	return b.String()
}

func (a App) renderChips() string {
	chips := make([]string, 0, len(a.categories))
	for i, category := range a.categories {
		style := a.styles.Chip
		if i == a.categoryIdx {
			style = a.styles.ChipActive
		}
		chips = append(chips, style.Render(category))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func (a App) renderItem(i int) string {
	bookmark := a.visible[i]

	style := a.styles.Item
	if i == a.cursor {
		style = a.styles.ItemSelected
	}

	favorite := " "
	if bookmark.IsFavorite {
		favorite = a.styles.Favorite.Render("★")
	}

	line := fmt.Sprintf("%s %s %s", bookmark.Category.Glyph(), favorite,
		truncate(bookmark.Title, a.width-30))

	detail := a.styles.URL.Render("   " + truncate(bookmark.URL, a.width-10))
	if len(bookmark.Tags) > 0 {
		detail += a.styles.Tag.Render("  #" + strings.Join(bookmark.Tags, " #"))
	}

	return style.Render(line) + "\n" + detail + "\n"
}

func (a App) renderForm() string {
	var b strings.Builder

	title := "Add Bookmark"
	if a.session.State() == session.StateEditing {
		title = "Edit Bookmark"
	}
	b.WriteString(a.styles.Title.Render(title))
	b.WriteString("\n\n")

	for i := 0; i < fieldCount; i++ {
		b.WriteString(a.styles.FieldLabel.Render(fieldLabels[i]))
		b.WriteString(a.form.inputs[i].View())
		b.WriteString("\n")
		if i == fieldTags && a.form.Focus() == fieldTags {
			if existing := a.collection.AllTags(); len(existing) > 0 {
				hint := "existing: " + truncate(strings.Join(existing, ", "), a.width-20)
				b.WriteString(a.styles.Help.Render(hint))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	if a.session.Enriching() {
		b.WriteString(a.styles.Status.Render("fetching metadata..."))
		b.WriteString("\n")
	} else if a.session.Degraded() {
		b.WriteString(a.styles.Warning.Render("metadata lookup failed, using defaults"))
		b.WriteString("\n")
	}
	if a.status != "" {
		b.WriteString(a.styles.Warning.Render(a.status))
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Help.Render("tab: next field  enter: save  esc: cancel"))

	return a.styles.Modal.Render(b.String())
}

func (a App) renderConfirmDelete() string {
	var b strings.Builder

	title := "Delete bookmark?"
	if bookmark := a.collection.GetByID(a.deleteID); bookmark != nil {
		title = fmt.Sprintf("Delete %q?", bookmark.Title)
	}

	b.WriteString(a.styles.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("y: delete  any other key: cancel"))

	return a.styles.Modal.Render(b.String())
}

func (a App) renderHelp() string {
	help := `linkstash keybindings

  Navigation:
    j/k         Move down/up
    gg/G        Jump to top/bottom
    c/C         Next/previous category
    /           Search (esc clears)
    s           Cycle sort mode

  Actions:
    a           Add bookmark
    e           Edit selected
    d           Delete selected
    f           Toggle favorite
    Y           Copy URL to clipboard
    o/Enter     Open in browser

  Other:
    ?           Close this help
    q           Quit`

	return a.styles.Modal.Render(help)
}

// truncate shortens s to at most max runes, appending an ellipsis.
func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
