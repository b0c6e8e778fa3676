package main

func (m *model) handleCursorMove(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.cursorX -= speed
	case "l", "right", "L", "shift+right":
		m.cursorX += speed
	case "k", "up", "K", "shift+up":
		m.cursorY -= speed
	case "j", "down", "J", "shift+down":
		m.cursorY += speed
	}
	m.ensureCursorInBounds()
}

// handleMoveKey nudges the component being moved by whole cells.
func (m *model) handleMoveKey(key string, speed int) {
	comp, page, ok := m.app.FindComponent(m.movingID)
	if !ok {
		m.mode = ModeNormal
		return
	}
	x, y := comp.X, comp.Y
	switch key {
	case "h", "left", "H", "shift+left":
		x -= speed * pxPerCol
	case "l", "right", "L", "shift+right":
		x += speed * pxPerCol
	case "k", "up", "K", "shift+up":
		y -= speed * pxPerRow
	case "j", "down", "J", "shift+down":
		y += speed * pxPerRow
	}
	m.canvasFor(m.pageIndexByID(page.ID)).MoveComponent(comp.ID, x, y)
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func isDirectionKey(key string) bool {
	switch key {
	case "h", "j", "k", "l", "H", "J", "K", "L",
		"left", "right", "up", "down",
		"shift+left", "shift+right", "shift+up", "shift+down":
		return true
	}
	return false
}

func (m *model) ensureCursorInBounds() {
	m.cursorX = clamp(m.cursorX, 0, canvasCols-1)
	m.cursorY = clamp(m.cursorY, 0, canvasRows-1)
}

func (m *model) focusPage(idx int) {
	n := m.app.PageCount()
	if n == 0 {
		return
	}
	if idx < 0 {
		idx = n - 1
	}
	if idx >= n {
		idx = 0
	}
	m.focusedPage = idx
	m.ensureFocusVisible()
	m.ensurePanelShows(m.focusedPageID())
}

func (m *model) ensureFocusVisible() {
	n := m.app.PageCount()
	m.focusedPage = clamp(m.focusedPage, 0, n-1)
	visible := m.visiblePageCount()
	if m.focusedPage < m.pageOffset {
		m.pageOffset = m.focusedPage
	}
	if m.focusedPage >= m.pageOffset+visible {
		m.pageOffset = m.focusedPage - visible + 1
	}
	m.pageOffset = clamp(m.pageOffset, 0, max(0, n-visible))
}

func (m *model) bodyHeight() int {
	return max(0, m.height-2)
}

// panelListRoom is how many page list rows fit above the pinned selection block.
func (m *model) panelListRoom() (list []panelRow, room int) {
	pages := m.app.Pages()
	list = buildPageRows(pages, m.app.Selected(), m.focusedPageID(), m.rename)
	room = m.bodyHeight() - len(selectionRows(pages, m.app.Selected()))
	return list, room
}

func (m *model) scrollPanel(delta int) {
	list, room := m.panelListRoom()
	m.panelOffset = clamp(m.panelOffset+delta, 0, max(0, len(list)-room))
}

// ensurePanelShows scrolls the page list so the page's name row sits clear of the
// scroll markers.
func (m *model) ensurePanelShows(pageID string) {
	list, room := m.panelListRoom()
	if len(list) <= room || room < 3 {
		return
	}
	idx := -1
	for i, row := range list {
		if row.pageID == pageID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	if idx < m.panelOffset+1 {
		m.panelOffset = idx - 1
	}
	if idx > m.panelOffset+room-2 {
		m.panelOffset = idx - room + 2
	}
	m.panelOffset = clamp(m.panelOffset, 0, len(list)-room)
}

func (m *model) focusedPageID() string {
	pages := m.app.Pages()
	if m.focusedPage < 0 || m.focusedPage >= len(pages) {
		return ""
	}
	return pages[m.focusedPage].ID
}

func (m *model) pageIndexByID(pageID string) int {
	return m.app.pageIndex(pageID)
}

func (m *model) visiblePageCount() int {
	avail := m.width - pagesLeft - panelWidth
	n := avail / pageSlot
	if n < 1 {
		n = 1
	}
	return n
}

func (m *model) visiblePageRange() (int, int) {
	end := m.pageOffset + m.visiblePageCount()
	if end > m.app.PageCount() {
		end = m.app.PageCount()
	}
	return m.pageOffset, end
}

func (m *model) frameLeft(idx int) int {
	return pagesLeft + (idx-m.pageOffset)*pageSlot
}

// canvasOrigin is the screen cell of a page canvas's top-left corner.
func (m *model) canvasOrigin(idx int) (int, int) {
	return m.frameLeft(idx) + 1, frameTop + 2
}

func (m *model) panelLeft() int {
	return pagesLeft + m.visiblePageCount()*pageSlot
}

func libraryItemRow(i int) int {
	return bodyTop + 1 + 2*i
}

// canvasFor returns the drop target for a page, positioned at its current screen
// location in pixel space.
func (m *model) canvasFor(idx int) *PageCanvas {
	pages := m.app.Pages()
	if idx < 0 || idx >= len(pages) {
		return newPageCanvas(m.app, "", 0, 0)
	}
	ox, oy := m.canvasOrigin(idx)
	return newPageCanvas(m.app, pages[idx].ID, ox*pxPerCol, oy*pxPerRow)
}

// pointerPx maps a screen cell to the pixel at its center.
func pointerPx(x, y int) (int, int) {
	return x*pxPerCol + pxPerCol/2, y*pxPerRow + pxPerRow/2
}

func (m *model) hitTest(x, y int) screenTarget {
	if x < libraryWidth {
		for i := range componentLibrary {
			row := libraryItemRow(i)
			if y == row || y == row+1 {
				return screenTarget{kind: targetLibrary, library: i}
			}
		}
		return screenTarget{kind: targetNone}
	}
	if x >= m.panelLeft() {
		if y >= bodyTop {
			return screenTarget{kind: targetPanel, panelRow: y - bodyTop}
		}
		return screenTarget{kind: targetNone}
	}
	start, end := m.visiblePageRange()
	for i := start; i < end; i++ {
		ox, oy := m.canvasOrigin(i)
		if x >= ox && x < ox+canvasCols && y >= oy && y < oy+canvasRows {
			return screenTarget{kind: targetCanvas, page: i, canvasX: x - ox, canvasY: y - oy}
		}
	}
	return screenTarget{kind: targetNone}
}
