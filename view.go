package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8b5cf6"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e5e7eb")).Background(lipgloss.Color("#1f2937"))
	draggingStyle = lipgloss.NewStyle().Reverse(true)
)

var libraryTips = []string{
	"Tips",
	"• Drag onto a page",
	"• Drag between pages",
	"• Click to select",
	"• ? for all keys",
}

func (m model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.help {
		return m.helpView()
	}

	bodyHeight := m.bodyHeight()
	library := m.libraryLines()
	pages := m.pageLines()
	var panel []string
	for _, row := range m.panelRows() {
		panel = append(panel, renderPanelRow(row))
	}

	pagesWidth := m.panelLeft() - pagesLeft
	lines := make([]string, 0, m.height)
	lines = append(lines, fitWidth(titleStyle.Render("Mobile App Builder")+"  "+
		mutedStyle.Render("Drag components between pages to build your mobile app"), m.width))
	for r := 0; r < bodyHeight; r++ {
		line := fitWidth(lineAt(library, r), libraryWidth) + " " +
			fitWidth(lineAt(pages, r), pagesWidth) +
			fitWidth(lineAt(panel, r), panelWidth)
		lines = append(lines, fitWidth(line, m.width))
	}
	lines = append(lines, m.statusLine())
	return strings.Join(lines, "\n")
}

func lineAt(lines []string, i int) string {
	if i < 0 || i >= len(lines) {
		return ""
	}
	return lines[i]
}

func (m model) libraryLines() []string {
	lines := []string{titleStyle.Render("Component Library")}
	for _, item := range componentLibrary {
		swatch := "■"
		if c, ok := termColor(item.Swatch); ok {
			swatch = lipgloss.NewStyle().Foreground(c).Render("■")
		}
		label := item.Label
		if m.drag.active && m.drag.payload.Type == PayloadNewComponent && m.drag.payload.ComponentType == item.Kind {
			label = draggingStyle.Render(label)
		}
		lines = append(lines, swatch+" "+label, mutedStyle.Render("  Drag to add"))
	}
	lines = append(lines, "")
	for i, tip := range libraryTips {
		if i == 0 {
			lines = append(lines, titleStyle.Render(tip))
			continue
		}
		lines = append(lines, mutedStyle.Render(tip))
	}
	return lines
}

// pageLines renders the visible page frames side by side, relative to bodyTop.
func (m model) pageLines() []string {
	start, end := m.visiblePageRange()
	pages := m.app.Pages()

	lines := make([]string, frameTop-bodyTop+frameHeight)
	if len(pages) > end-start {
		lines[0] = mutedStyle.Render(fmt.Sprintf("Pages %d-%d of %d  ({ } to scroll)", start+1, end, len(pages)))
	}

	gap := strings.Repeat(" ", frameGap)
	frames := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		opts := frameOptions{
			focused:  i == m.focusedPage,
			selected: m.app.Selected(),
			cursorX:  m.cursorX,
			cursorY:  m.cursorY,
		}
		frames = append(frames, renderPageFrame(pages[i], opts))
	}
	for row := 0; row < frameHeight; row++ {
		parts := make([]string, len(frames))
		for i, frame := range frames {
			parts[i] = frame[row]
		}
		lines[frameTop-bodyTop+row] = strings.Join(parts, gap)
	}
	return lines
}

func (m model) modeString() string {
	switch m.mode {
	case ModeMove:
		return "MOVE"
	case ModeRename:
		return "RENAME"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "NORMAL"
	}
}

func (m model) confirmPrompt() string {
	switch m.confirmAction {
	case ConfirmQuit:
		return "Quit? (y/n)"
	case ConfirmDeletePage:
		page, _ := m.app.Page(m.confirmTarget)
		return fmt.Sprintf("Delete page '%s'? (y/n)", sanitizeText(page.Name))
	case ConfirmDeleteComponent:
		return "Delete component? (y/n)"
	}
	return ""
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeFileInput:
		return fitWidth(m.fileInput.View(), m.width)
	case ModeConfirm:
		return fitWidth(errorStyle.Render(m.confirmPrompt()), m.width)
	}

	pageName := ""
	if page, ok := m.app.Page(m.focusedPageID()); ok {
		pageName = sanitizeText(page.Name)
	}
	parts := []string{
		"Mode: " + m.modeString(),
		fmt.Sprintf("Page: %s (%d/%d)", pageName, m.focusedPage+1, m.app.PageCount()),
		fmt.Sprintf("Cursor: (%d,%d)", m.cursorX*pxPerCol, m.cursorY*pxPerRow),
	}
	if comp, _, ok := m.app.SelectedComponent(); ok {
		parts = append(parts, fmt.Sprintf("Selected: %s • %s", comp.Kind, sanitizeText(comp.Content)))
	}
	if m.drag.active {
		parts = append(parts, "Dragging")
	}
	status := statusStyle.Render(" " + strings.Join(parts, " | ") + " ")

	switch {
	case m.errorMessage != "":
		status += " " + errorStyle.Render("ERROR: "+m.errorMessage)
	case m.successMessage != "":
		status += " " + successStyle.Render(m.successMessage)
	default:
		status += " " + mutedStyle.Render("? for help | q to quit")
	}
	return fitWidth(status, m.width)
}

var helpLines = []string{
	"Mobile App Builder",
	"",
	"Pages",
	"  tab / }        focus next page",
	"  shift+tab / {  focus previous page",
	"  a              add page",
	"  r              rename focused page (enter saves, esc discards)",
	"  D              delete focused page",
	"",
	"Components",
	"  1-4            drop Button, Text, Image or Input at the cursor",
	"  h j k l        move cursor (shift for double steps)",
	"  enter / space  select the component under the cursor",
	"  esc            clear selection",
	"  m              move selected component with h j k l",
	"  < >            send selected component to previous or next page",
	"  [ ]            send backward or bring forward",
	"  x              delete selected component",
	"",
	"Clipboard",
	"  y              copy selected component as a move payload",
	"  c              copy selected component as a new-component payload",
	"  p              paste a payload at the cursor",
	"",
	"Export",
	"  S              save PNG snapshot of all pages",
	"  T              save text snapshot of all pages",
	"",
	"Mouse",
	"  drag a library item onto a page to add it",
	"  drag a component within a page to move it",
	"  drag a component onto another page to transfer it",
	"  click rows in the page list to focus, rename or delete",
	"",
	"  q              quit",
	"  ?              close help (j/k to scroll)",
}

func (m model) maxHelpScroll() int {
	visible := m.height - 1
	if visible < 1 {
		visible = 1
	}
	return max(0, len(helpLines)-visible)
}

func (m model) helpView() string {
	visible := m.height - 1
	if visible < 1 {
		visible = 1
	}
	start := min(m.helpScroll, m.maxHelpScroll())
	end := min(len(helpLines), start+visible)

	lines := make([]string, 0, visible+1)
	for i, line := range helpLines[start:end] {
		if start+i == 0 {
			line = titleStyle.Render(line)
		}
		lines = append(lines, fitWidth(line, m.width))
	}
	lines = append(lines, mutedStyle.Render("Press any key to close help"))
	return strings.Join(lines, "\n")
}
