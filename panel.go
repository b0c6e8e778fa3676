package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type panelAction int

const (
	panelNone panelAction = iota
	panelAddPage
	panelFocusPage
	panelRenamePage
	panelDeletePage
	panelSelectComponent
	panelDeleteComponent
	panelDeselect
	panelScrollUp
	panelScrollDown
)

// panelRow is one line of the page/component list. Mouse presses on a row trigger its
// action.
type panelRow struct {
	text        string
	style       *lipgloss.Style
	action      panelAction
	pageID      string
	componentID string
}

// renameBuffer holds an inline page name edit until it is committed or discarded.
type renameBuffer struct {
	pageID string
	input  textinput.Model
}

func newRenameBuffer() renameBuffer {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 40
	in.Width = panelWidth - 4
	return renameBuffer{input: in}
}

func (r renameBuffer) active() bool {
	return r.pageID != ""
}

func (r *renameBuffer) start(page Page) tea.Cmd {
	r.pageID = page.ID
	r.input.SetValue(page.Name)
	r.input.CursorEnd()
	return r.input.Focus()
}

// commit writes the buffer to the page. Empty names are accepted.
func (r *renameBuffer) commit(app *App) Outcome {
	if !r.active() {
		return NotFound
	}
	outcome := app.RenamePage(r.pageID, r.input.Value())
	r.reset()
	return outcome
}

func (r *renameBuffer) cancel() {
	r.reset()
}

func (r *renameBuffer) reset() {
	r.pageID = ""
	r.input.SetValue("")
	r.input.Blur()
}

func (r renameBuffer) update(msg tea.Msg) (renameBuffer, tea.Cmd) {
	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	return r, cmd
}

// componentSummary returns the components listed for a page and how many are hidden.
func componentSummary(page Page) ([]Component, int) {
	if len(page.Components) <= panelPreviewLimit {
		return page.Components, 0
	}
	return page.Components[:panelPreviewLimit], len(page.Components) - panelPreviewLimit
}

func componentCountLabel(n int) string {
	if n == 1 {
		return "1 component"
	}
	return fmt.Sprintf("%d components", n)
}

var (
	panelTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1f2937"))
	panelMutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	panelActionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2563eb"))
	panelDangerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	panelSelectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("#dbeafe")).Foreground(lipgloss.Color("#1e40af"))
	panelFocusedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8b5cf6"))
)

func buildPanelRows(pages []Page, selected string, focusedPage string, rename renameBuffer) []panelRow {
	return append(buildPageRows(pages, selected, focusedPage, rename), selectionRows(pages, selected)...)
}

// visiblePanelRows fits the panel into height rows. The page list scrolls by offset and
// the selection block stays pinned below it, so every row returned is on screen.
func visiblePanelRows(list, pinned []panelRow, offset, height int) []panelRow {
	if len(list)+len(pinned) <= height {
		return append(list, pinned...)
	}
	room := height - len(pinned)
	if room < 1 {
		return pinned[:max(0, height)]
	}
	offset = clamp(offset, 0, len(list)-room)
	rows := make([]panelRow, 0, height)
	rows = append(rows, list[offset:offset+room]...)
	if room >= 3 {
		if offset > 0 {
			rows[0] = panelRow{text: "  ▲ more", style: &panelMutedStyle, action: panelScrollUp}
		}
		if offset+room < len(list) {
			rows[room-1] = panelRow{text: "  ▼ more", style: &panelMutedStyle, action: panelScrollDown}
		}
	}
	return append(rows, pinned...)
}

func buildPageRows(pages []Page, selected string, focusedPage string, rename renameBuffer) []panelRow {
	rows := []panelRow{
		{text: "Pages", style: &panelTitleStyle},
		{text: "[a] + Add Page", style: &panelActionStyle, action: panelAddPage},
		{},
	}

	for _, page := range pages {
		if rename.active() && rename.pageID == page.ID {
			rows = append(rows, panelRow{text: "> " + rename.input.View(), action: panelRenamePage, pageID: page.ID})
		} else {
			style := &panelTitleStyle
			marker := "  "
			if page.ID == focusedPage {
				style = &panelFocusedStyle
				marker = "▸ "
			}
			rows = append(rows, panelRow{text: marker + sanitizeText(page.Name), style: style, action: panelFocusPage, pageID: page.ID})
		}
		rows = append(rows, panelRow{text: "  " + componentCountLabel(len(page.Components)), style: &panelMutedStyle,
			action: panelFocusPage, pageID: page.ID})

		shown, more := componentSummary(page)
		for _, c := range shown {
			style := panelMutedStyle
			if c.ID == selected {
				style = panelSelectedStyle
			}
			swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(libraryItemFor(c.Kind).Swatch)).Render("■")
			rows = append(rows, panelRow{
				text:        "    " + swatch + " " + style.Render(fmt.Sprintf("%s • %s", c.Kind, sanitizeText(c.Content))),
				action:      panelSelectComponent,
				pageID:      page.ID,
				componentID: c.ID,
			})
		}
		if more > 0 {
			rows = append(rows, panelRow{text: fmt.Sprintf("    +%d more", more), style: &panelMutedStyle,
				action: panelFocusPage, pageID: page.ID})
		}

		actions := panelRow{text: "  [r] Rename", style: &panelActionStyle, action: panelRenamePage, pageID: page.ID}
		rows = append(rows, actions)
		if len(pages) > 1 {
			rows = append(rows, panelRow{text: "  [D] Delete page", style: &panelDangerStyle, action: panelDeletePage, pageID: page.ID})
		}
		rows = append(rows, panelRow{})
	}
	return rows
}

func selectionRows(pages []Page, selected string) []panelRow {
	if selected == "" {
		return nil
	}
	for _, page := range pages {
		idx := page.indexOf(selected)
		if idx == -1 {
			continue
		}
		c := page.Components[idx]
		return []panelRow{
			{text: "Selected Component", style: &panelTitleStyle},
			{text: "  Type: " + string(c.Kind)},
			{text: "  Content: " + sanitizeText(c.Content)},
			{text: "  Page: " + sanitizeText(page.Name)},
			{text: fmt.Sprintf("  Position: %d,%d", c.X, c.Y), style: &panelMutedStyle},
			{text: "  [x] Delete", style: &panelDangerStyle, action: panelDeleteComponent, componentID: c.ID},
			{text: "  [esc] Deselect", style: &panelActionStyle, action: panelDeselect},
		}
	}
	return nil
}

func renderPanelRow(row panelRow) string {
	if row.style == nil {
		return fitWidth(row.text, panelWidth)
	}
	return fitWidth(row.style.Render(row.text), panelWidth)
}
