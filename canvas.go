package main

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

// PageCanvas is the drop target for one page. It holds no component state of its own;
// every change goes through the App.
type PageCanvas struct {
	app     *App
	pageID  string
	originX int
	originY int
	log     *slog.Logger
}

func newPageCanvas(app *App, pageID string, originX, originY int) *PageCanvas {
	return &PageCanvas{
		app:     app,
		pageID:  pageID,
		originX: originX,
		originY: originY,
		log:     app.log.With(slog.String("page", pageID)),
	}
}

func clampPosition(x, y int) (int, int) {
	return clamp(x, 0, canvasMaxX), clamp(y, 0, canvasMaxY)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// localPoint converts pointer coordinates to a component position, centering the
// placeholder under the pointer.
func (pc *PageCanvas) localPoint(clientX, clientY int) (int, int) {
	return clientX - pc.originX - dropOffsetX, clientY - pc.originY - dropOffsetY
}

func (pc *PageCanvas) HandleDrop(payload DragPayload, clientX, clientY int) Outcome {
	x, y := pc.localPoint(clientX, clientY)
	switch payload.Type {
	case PayloadNewComponent:
		_, outcome := pc.DropNew(payload.ComponentType, payload.Content, x, y)
		return outcome
	case PayloadExistingComponent:
		if payload.FromPageID != pc.pageID {
			return pc.app.MoveComponentAcrossPages(payload.ComponentID, payload.FromPageID, pc.pageID, x, y)
		}
		return pc.MoveComponent(payload.ComponentID, x, y)
	}
	pc.log.Warn("drop ignored: unknown payload type", slog.String("type", string(payload.Type)))
	return Rejected
}

func (pc *PageCanvas) DropNew(kind ComponentKind, content string, x, y int) (Component, Outcome) {
	page, ok := pc.app.Page(pc.pageID)
	if !ok {
		pc.log.Warn("drop skipped: page is gone")
		return Component{}, NotFound
	}
	x, y = clampPosition(x, y)
	content = sanitizeText(content)
	comp := Component{
		ID:      pc.app.newID("component"),
		Kind:    kind,
		X:       x,
		Y:       y,
		Width:   defaultComponentWidth,
		Height:  defaultComponentHeight,
		Content: content,
		Style:   defaultStyle(kind),
	}
	outcome := pc.app.UpdatePageComponents(pc.pageID, append(page.Components, comp))
	if outcome == Applied {
		pc.log.Debug("component dropped", slog.String("id", comp.ID), slog.String("kind", string(kind)),
			slog.Int("x", x), slog.Int("y", y))
	}
	return comp, outcome
}

func (pc *PageCanvas) MoveComponent(componentID string, x, y int) Outcome {
	page, ok := pc.app.Page(pc.pageID)
	if !ok {
		return NotFound
	}
	idx := page.indexOf(componentID)
	if idx == -1 {
		pc.log.Warn("move skipped: component not on page", slog.String("id", componentID))
		return NotFound
	}
	page.Components[idx].X, page.Components[idx].Y = clampPosition(x, y)
	return pc.app.UpdatePageComponents(pc.pageID, page.Components)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// cellRect returns the terminal cells covered by a component. Positions round to the
// nearest cell so a drop lands under the pointer.
func cellRect(c Component) (col, row, cols, rows int) {
	col = (c.X + pxPerCol/2) / pxPerCol
	row = (c.Y + pxPerRow/2) / pxPerRow
	if row > canvasRows-1 {
		row = canvasRows - 1
	}
	cols = ceilDiv(c.Width, pxPerCol)
	if cols < 1 {
		cols = 1
	}
	rows = ceilDiv(c.Height, pxPerRow)
	if rows < 1 {
		rows = 1
	}
	return col, row, cols, rows
}

// componentAt returns the topmost component covering the given canvas cell.
func componentAt(page Page, col, row int) string {
	for i := len(page.Components) - 1; i >= 0; i-- {
		c := page.Components[i]
		x, y, w, h := cellRect(c)
		if col >= x && col < x+w && row >= y && row < y+h {
			return c.ID
		}
	}
	return ""
}

type canvasCell struct {
	r     rune
	owner int
}

func componentLabel(c Component, width int) string {
	var label string
	switch c.Kind {
	case KindButton:
		inner := width - 2
		if inner < 0 {
			inner = 0
		}
		text := truncate.String(sanitizeText(c.Content), uint(inner))
		pad := inner - runewidth.StringWidth(text)
		label = "[" + strings.Repeat(" ", pad/2) + text + strings.Repeat(" ", pad-pad/2) + "]"
	case KindImage:
		label = "▣ " + sanitizeText(c.Content)
	case KindInput:
		label = sanitizeText(c.Content)
		if n := width - runewidth.StringWidth(label); n > 0 {
			label += strings.Repeat("_", n)
		}
	default:
		label = sanitizeText(c.Content)
	}
	return truncate.String(label, uint(width))
}

func canvasGrid(page Page) [][]canvasCell {
	grid := make([][]canvasCell, canvasRows)
	for y := range grid {
		grid[y] = make([]canvasCell, canvasCols)
		for x := range grid[y] {
			r := ' '
			if x%5 == 0 && y%2 == 0 {
				r = '·'
			}
			grid[y][x] = canvasCell{r: r, owner: -1}
		}
	}

	if len(page.Components) == 0 {
		writeCentered(grid, canvasRows/2-1, "Drop components here")
		writeCentered(grid, canvasRows/2, "Drag from library or other pages")
		return grid
	}

	for i, c := range page.Components {
		col, row, cols, rows := cellRect(c)
		for dy := 0; dy < rows; dy++ {
			y := row + dy
			if y < 0 || y >= canvasRows {
				continue
			}
			for dx := 0; dx < cols; dx++ {
				if x := col + dx; x >= 0 && x < canvasCols {
					grid[y][x] = canvasCell{r: ' ', owner: i}
				}
			}
			if dy == rows/2 {
				writeLabel(grid[y], col, min(cols, canvasCols-col), componentLabel(c, cols), i)
			}
		}
	}
	return grid
}

// writeLabel lays text into row cells starting at col by display width. A wide rune
// takes its cell plus a continuation cell; one that would cross the edge is dropped.
func writeLabel(row []canvasCell, col, width int, text string, owner int) {
	dx := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if dx+w > width {
			break
		}
		row[col+dx] = canvasCell{r: r, owner: owner}
		if w == 2 {
			row[col+dx+1] = canvasCell{r: 0, owner: owner}
		}
		dx += w
	}
}

func writeCentered(grid [][]canvasCell, row int, text string) {
	runes := []rune(text)
	start := (canvasCols - len(runes)) / 2
	if start < 0 {
		start = 0
	}
	for i, r := range runes {
		if start+i < canvasCols {
			grid[row][start+i] = canvasCell{r: r, owner: -2}
		}
	}
}

type frameOptions struct {
	plain    bool
	focused  bool
	selected string
	cursorX  int
	cursorY  int
}

var (
	frameBorderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	focusedFrameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b5cf6")).Bold(true)
	gridStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#d1d5db"))
	hintStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
	selectedStyle     = lipgloss.NewStyle().Background(lipgloss.Color("#1e40af")).Foreground(lipgloss.Color("#ffffff")).Bold(true)
	cursorStyle       = lipgloss.NewStyle().Reverse(true)
)

// renderPageFrame draws one phone frame: title border, status bar, canvas rows and the
// bottom border. Every line is exactly frameWidth cells wide.
func renderPageFrame(page Page, opts frameOptions) []string {
	border := frameBorderStyle
	if opts.focused {
		border = focusedFrameStyle
	}
	paint := func(s lipgloss.Style, text string) string {
		if opts.plain {
			return text
		}
		return s.Render(text)
	}

	title := " " + truncate.String(sanitizeText(page.Name), uint(canvasCols-4)) + " "
	fill := canvasCols - runewidth.StringWidth(title)
	top := "╭" + strings.Repeat("─", fill/2) + title + strings.Repeat("─", fill-fill/2) + "╮"
	status := " 9:41" + strings.Repeat(" ", canvasCols-9) + "●●● "

	lines := make([]string, 0, frameHeight)
	lines = append(lines, paint(border, top))
	lines = append(lines, paint(border, "│")+status+paint(border, "│"))

	grid := canvasGrid(page)
	for y, row := range grid {
		var b strings.Builder
		runStart := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && sameRun(opts, row, y, runStart, x) {
				continue
			}
			var seg strings.Builder
			for _, cell := range row[runStart:x] {
				if cell.r != 0 {
					seg.WriteRune(cell.r)
				}
			}
			b.WriteString(paint(cellStyle(page, opts, row[runStart], runStart, y), seg.String()))
			runStart = x
		}
		lines = append(lines, paint(border, "│")+b.String()+paint(border, "│"))
	}
	lines = append(lines, paint(border, "╰"+strings.Repeat("─", canvasCols)+"╯"))
	return lines
}

func isCursor(opts frameOptions, x, y int) bool {
	return opts.focused && !opts.plain && x == opts.cursorX && y == opts.cursorY
}

func sameRun(opts frameOptions, row []canvasCell, y, start, x int) bool {
	if isCursor(opts, start, y) || isCursor(opts, x, y) {
		return false
	}
	return row[start].owner == row[x].owner
}

func cellStyle(page Page, opts frameOptions, cell canvasCell, x, y int) lipgloss.Style {
	if isCursor(opts, x, y) {
		return cursorStyle
	}
	switch {
	case cell.owner == -2:
		return hintStyle
	case cell.owner < 0:
		return gridStyle
	}
	c := page.Components[cell.owner]
	if c.ID == opts.selected {
		return selectedStyle
	}
	return componentStyle(c)
}

func componentStyle(c Component) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c.Style != nil {
		if bg, ok := termColor(c.Style.BackgroundColor); ok {
			s = s.Background(bg)
		}
		if fg, ok := termColor(c.Style.Color); ok {
			s = s.Foreground(fg)
		}
	}
	switch c.Kind {
	case KindInput:
		s = s.Underline(true)
	case KindButton:
		s = s.Bold(true)
	case KindImage:
		s = s.Italic(true)
	}
	return s
}
