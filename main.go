package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	config, cfgErr := loadConfig()
	logger, closer := newLogger(config)
	if cfgErr != nil {
		logger.Warn("config not loaded, using defaults", slog.Any("err", cfgErr))
	}

	p := tea.NewProgram(
		initialModel(config, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	if err := shutdown(logger, err, closer); err != nil {
		log.Fatal(err)
	}
}

// shutdown records how the program ended and closes the log file. It returns the run
// error and any close error together.
func shutdown(logger *slog.Logger, runErr error, closer io.Closer) error {
	if runErr != nil {
		logger.Error("program exited with error", slog.Any("err", runErr))
	}
	var closeErr error
	if err := closer.Close(); err != nil {
		closeErr = fmt.Errorf("close log file: %w", err)
	}
	return errors.Join(runErr, closeErr)
}

func initialModel(config *Config, logger *slog.Logger) model {
	if config == nil {
		config = defaultConfig()
	}
	if logger == nil {
		logger = discardLogger()
	}
	fileInput := textinput.New()
	fileInput.Prompt = "File name: "
	fileInput.CharLimit = 120

	return model{
		app:       NewApp(logger),
		config:    config,
		log:       logger.With(slog.String("component", "ui")),
		rename:    newRenameBuffer(),
		fileInput: fileInput,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureFocusVisible()
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	switch m.mode {
	case ModeRename:
		m.rename, cmd = m.rename.update(msg)
	case ModeFileInput:
		m.fileInput, cmd = m.fileInput.Update(msg)
	}
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.help {
		switch key {
		case "j", "down":
			if m.helpScroll < m.maxHelpScroll() {
				m.helpScroll++
			}
		case "k", "up":
			if m.helpScroll > 0 {
				m.helpScroll--
			}
		default:
			m.help = false
			m.helpScroll = 0
		}
		return m, nil
	}

	switch m.mode {
	case ModeRename:
		return m.handleRenameKey(msg)
	case ModeFileInput:
		return m.handleFileInputKey(msg)
	case ModeConfirm:
		return m.handleConfirmKey(key)
	case ModeMove:
		return m.handleMoveModeKey(key)
	}
	return m.handleNormalKey(key)
}

func (m model) handleNormalKey(key string) (tea.Model, tea.Cmd) {
	m.errorMessage = ""
	m.successMessage = ""

	if isDirectionKey(key) {
		m.handleCursorMove(key, m.getMoveSpeed(key))
		return m, nil
	}

	switch key {
	case "ctrl+c", "q":
		if !m.config.Confirmations {
			return m, tea.Quit
		}
		m.mode = ModeConfirm
		m.confirmAction = ConfirmQuit
		return m, nil
	case "?":
		m.help = true
		return m, nil
	case "esc":
		m.app.SelectComponent("")
		return m, nil
	case "pgup":
		m.scrollPanel(-m.bodyHeight() / 2)
		return m, nil
	case "pgdown":
		m.scrollPanel(m.bodyHeight() / 2)
		return m, nil
	case "tab", "}":
		m.focusPage(m.focusedPage + 1)
		return m, nil
	case "shift+tab", "{":
		m.focusPage(m.focusedPage - 1)
		return m, nil
	case "1", "2", "3", "4":
		item := componentLibrary[int(key[0]-'1')]
		pc := m.canvasFor(m.focusedPage)
		comp, outcome := pc.DropNew(item.Kind, item.DefaultContent, m.cursorX*pxPerCol, m.cursorY*pxPerRow)
		m.reportOutcome(outcome, fmt.Sprintf("Added %s at %d,%d", item.Label, comp.X, comp.Y), "drop failed")
		return m, nil
	case "enter", " ":
		page, ok := m.app.Page(m.focusedPageID())
		if !ok {
			return m, nil
		}
		m.app.SelectComponent(componentAt(page, m.cursorX, m.cursorY))
		return m, nil
	case "m":
		m.startMove()
		return m, nil
	case "<", ",":
		m.reportOutcome(m.sendToAdjacentPage(m.app.Selected(), -1), "Moved to previous page", "no previous page or nothing selected")
		return m, nil
	case ">", ".":
		m.reportOutcome(m.sendToAdjacentPage(m.app.Selected(), 1), "Moved to next page", "no next page or nothing selected")
		return m, nil
	case "[":
		m.reportOutcome(m.moveComponentInOrder(m.app.Selected(), -1), "Sent backward", "cannot send backward")
		return m, nil
	case "]":
		m.reportOutcome(m.moveComponentInOrder(m.app.Selected(), 1), "Brought forward", "cannot bring forward")
		return m, nil
	case "a":
		m.addPage()
		return m, nil
	case "D":
		m.requestDeletePage(m.focusedPageID())
		return m, nil
	case "r":
		cmd := m.startRename(m.focusedPageID())
		return m, cmd
	case "x", "delete":
		m.requestDeleteComponent(m.app.Selected())
		return m, nil
	case "y":
		m.copySelected(PayloadExistingComponent)
		return m, nil
	case "c":
		m.copySelected(PayloadNewComponent)
		return m, nil
	case "p":
		m.pasteAtCursor()
		return m, nil
	case "S":
		cmd := m.startExport(FileOpExportPNG)
		return m, cmd
	case "T":
		cmd := m.startExport(FileOpExportTXT)
		return m, cmd
	}
	return m, nil
}

func (m model) handleMoveModeKey(key string) (tea.Model, tea.Cmd) {
	if isDirectionKey(key) {
		m.handleMoveKey(key, m.getMoveSpeed(key))
		return m, nil
	}
	switch key {
	case "enter":
		m.mode = ModeNormal
		m.movingID = ""
		m.successMessage = "Moved"
	case "esc":
		if _, page, ok := m.app.FindComponent(m.movingID); ok {
			m.canvasFor(m.pageIndexByID(page.ID)).MoveComponent(m.movingID, m.originalMoveX, m.originalMoveY)
		}
		m.mode = ModeNormal
		m.movingID = ""
	}
	return m, nil
}

func (m model) handleRenameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.commitRename()
		return m, nil
	case "esc":
		m.rename.cancel()
		m.mode = ModeNormal
		return m, nil
	}
	var cmd tea.Cmd
	m.rename, cmd = m.rename.update(msg)
	return m, cmd
}

func (m model) handleFileInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.runExport()
		return m, nil
	case "esc":
		m.fileInput.Blur()
		m.mode = ModeNormal
		return m, nil
	}
	var cmd tea.Cmd
	m.fileInput, cmd = m.fileInput.Update(msg)
	return m, cmd
}

func (m model) handleConfirmKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y", "enter":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmDeletePage:
			m.deletePage(m.confirmTarget)
		case ConfirmDeleteComponent:
			m.deleteComponent(m.confirmTarget)
		}
		m.confirmTarget = ""
	case "n", "N", "esc", "q":
		m.mode = ModeNormal
		m.confirmTarget = ""
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.help {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			if m.hitTest(msg.X, msg.Y).kind == targetPanel {
				if msg.Button == tea.MouseButtonWheelUp {
					m.scrollPanel(-2)
				} else {
					m.scrollPanel(2)
				}
			}
			return m, nil
		case tea.MouseButtonLeft:
		default:
			return m, nil
		}
		return m.handleMousePress(msg.X, msg.Y)
	case tea.MouseActionMotion:
		m.handleMouseMotion(msg.X, msg.Y)
	case tea.MouseActionRelease:
		m.handleMouseRelease(msg.X, msg.Y)
	}
	return m, nil
}

func (m model) handleMousePress(x, y int) (tea.Model, tea.Cmd) {
	target := m.hitTest(x, y)
	if m.mode == ModeRename {
		if target.kind == targetPanel && m.isRenameRow(target.panelRow) {
			return m, nil
		}
		// Pressing anywhere else blurs the field, which commits it.
		m.commitRename()
	}
	if m.mode != ModeNormal {
		return m, nil
	}
	m.errorMessage = ""
	m.successMessage = ""

	switch target.kind {
	case targetLibrary:
		m.drag = dragState{active: true, payload: newComponentPayload(componentLibrary[target.library])}
	case targetCanvas:
		m.focusPage(target.page)
		m.cursorX, m.cursorY = target.canvasX, target.canvasY
		page, ok := m.app.Page(m.focusedPageID())
		if !ok {
			return m, nil
		}
		id := componentAt(page, target.canvasX, target.canvasY)
		if id == "" {
			return m, nil
		}
		m.app.SelectComponent(id)
		comp := page.Components[page.indexOf(id)]
		px, py := pointerPx(target.canvasX, target.canvasY)
		m.drag = dragState{
			active:  true,
			payload: existingComponentPayload(id, page.ID),
			grabX:   px - comp.X,
			grabY:   py - comp.Y,
		}
	case targetPanel:
		rows := m.panelRows()
		if target.panelRow >= 0 && target.panelRow < len(rows) {
			cmd := m.runPanelAction(rows[target.panelRow])
			return m, cmd
		}
	}
	return m, nil
}

// handleMouseMotion moves a dragged component live while the pointer stays on its own
// page.
func (m *model) handleMouseMotion(x, y int) {
	if !m.drag.active {
		return
	}
	m.drag.pointer = point{X: x, Y: y}
	if m.drag.payload.Type != PayloadExistingComponent {
		return
	}
	target := m.hitTest(x, y)
	if target.kind != targetCanvas || m.pageIndexByID(m.drag.payload.FromPageID) != target.page {
		return
	}
	px, py := pointerPx(target.canvasX, target.canvasY)
	m.canvasFor(target.page).MoveComponent(m.drag.payload.ComponentID, px-m.drag.grabX, py-m.drag.grabY)
}

func (m *model) handleMouseRelease(x, y int) {
	if !m.drag.active {
		return
	}
	drag := m.drag
	m.drag = dragState{}

	target := m.hitTest(x, y)
	if target.kind != targetCanvas {
		return
	}
	pc := m.canvasFor(target.page)
	payload := drag.payload
	if payload.Type == PayloadExistingComponent && m.pageIndexByID(payload.FromPageID) == target.page {
		px, py := pointerPx(target.canvasX, target.canvasY)
		pc.MoveComponent(payload.ComponentID, px-drag.grabX, py-drag.grabY)
		return
	}
	clientX, clientY := pointerPx(x, y)
	outcome := pc.HandleDrop(payload, clientX, clientY)
	if outcome == Applied {
		m.focusPage(target.page)
		m.cursorX, m.cursorY = target.canvasX, target.canvasY
	}
	m.reportOutcome(outcome, "", "drop failed")
}

func (m *model) isRenameRow(row int) bool {
	rows := m.panelRows()
	if row < 0 || row >= len(rows) {
		return false
	}
	return rows[row].action == panelRenamePage && rows[row].pageID == m.rename.pageID
}

// panelRows returns the panel rows on screen, one per body line.
func (m *model) panelRows() []panelRow {
	pages := m.app.Pages()
	list := buildPageRows(pages, m.app.Selected(), m.focusedPageID(), m.rename)
	pinned := selectionRows(pages, m.app.Selected())
	return visiblePanelRows(list, pinned, m.panelOffset, m.bodyHeight())
}

func (m *model) runPanelAction(row panelRow) tea.Cmd {
	switch row.action {
	case panelAddPage:
		m.addPage()
	case panelFocusPage:
		m.focusPage(m.pageIndexByID(row.pageID))
	case panelRenamePage:
		return m.startRename(row.pageID)
	case panelDeletePage:
		m.requestDeletePage(row.pageID)
	case panelSelectComponent:
		m.app.SelectComponent(row.componentID)
		m.focusPage(m.pageIndexByID(row.pageID))
	case panelDeleteComponent:
		m.requestDeleteComponent(row.componentID)
	case panelDeselect:
		m.app.SelectComponent("")
	case panelScrollUp:
		m.scrollPanel(-1)
	case panelScrollDown:
		m.scrollPanel(1)
	}
	return nil
}

func (m *model) addPage() {
	page := m.app.AddPage()
	m.focusPage(m.app.PageCount() - 1)
	m.successMessage = "Added " + page.Name
}

func (m *model) requestDeletePage(pageID string) {
	if m.app.PageCount() <= 1 {
		m.errorMessage = "cannot delete the last page"
		return
	}
	if !m.config.Confirmations {
		m.deletePage(pageID)
		return
	}
	m.mode = ModeConfirm
	m.confirmAction = ConfirmDeletePage
	m.confirmTarget = pageID
}

func (m *model) deletePage(pageID string) {
	page, _ := m.app.Page(pageID)
	outcome := m.app.DeletePage(pageID)
	m.reportOutcome(outcome, "Deleted "+page.Name, "page not deleted")
	m.ensureFocusVisible()
}

func (m *model) requestDeleteComponent(componentID string) {
	if componentID == "" {
		m.errorMessage = "nothing selected"
		return
	}
	if !m.config.Confirmations {
		m.deleteComponent(componentID)
		return
	}
	m.mode = ModeConfirm
	m.confirmAction = ConfirmDeleteComponent
	m.confirmTarget = componentID
}

func (m *model) deleteComponent(componentID string) {
	m.reportOutcome(m.app.DeleteComponent(componentID), "Component deleted", "component not found")
}

func (m *model) startRename(pageID string) tea.Cmd {
	page, ok := m.app.Page(pageID)
	if !ok {
		return nil
	}
	m.mode = ModeRename
	return m.rename.start(page)
}

func (m *model) commitRename() {
	m.rename.commit(m.app)
	m.mode = ModeNormal
}

func (m *model) startMove() {
	id := m.app.Selected()
	if id == "" {
		if page, ok := m.app.Page(m.focusedPageID()); ok {
			id = componentAt(page, m.cursorX, m.cursorY)
		}
	}
	comp, page, ok := m.app.FindComponent(id)
	if !ok {
		m.errorMessage = "nothing to move"
		return
	}
	m.app.SelectComponent(id)
	m.focusPage(m.pageIndexByID(page.ID))
	m.movingID = id
	m.originalMoveX, m.originalMoveY = comp.X, comp.Y
	m.mode = ModeMove
}

func (m *model) copySelected(kind PayloadType) {
	comp, page, ok := m.app.SelectedComponent()
	if !ok {
		m.errorMessage = "nothing selected"
		return
	}
	payload := existingComponentPayload(comp.ID, page.ID)
	if kind == PayloadNewComponent {
		payload = DragPayload{Type: PayloadNewComponent, ComponentType: comp.Kind, Content: comp.Content}
	}
	data, err := payload.Encode()
	if err == nil {
		err = clipboardWriter(string(data))
	}
	if err != nil {
		m.log.Error("copy to clipboard failed", slog.Any("err", err))
		m.errorMessage = err.Error()
		return
	}
	m.successMessage = "Copied to clipboard"
}

func (m *model) pasteAtCursor() {
	text, err := clipboardReader()
	if err != nil {
		m.log.Error("read clipboard failed", slog.Any("err", err))
		m.errorMessage = err.Error()
		return
	}
	payload, err := DecodePayload([]byte(cleanClipboardText(text)))
	if err != nil {
		m.log.Warn("paste rejected", slog.Any("err", err))
		m.errorMessage = err.Error()
		return
	}
	ox, oy := m.canvasOrigin(m.focusedPage)
	clientX, clientY := pointerPx(ox+m.cursorX, oy+m.cursorY)
	m.reportOutcome(m.canvasFor(m.focusedPage).HandleDrop(payload, clientX, clientY), "Pasted", "paste failed")
}

func (m *model) startExport(op FileOperation) tea.Cmd {
	m.fileOp = op
	m.mode = ModeFileInput
	m.fileInput.SetValue("mockup")
	m.fileInput.CursorEnd()
	return m.fileInput.Focus()
}

func (m *model) runExport() {
	m.mode = ModeNormal
	m.fileInput.Blur()
	name := strings.TrimSpace(m.fileInput.Value())
	if name == "" {
		m.errorMessage = "file name required"
		return
	}

	var err error
	var path string
	switch m.fileOp {
	case FileOpExportPNG:
		if !strings.HasSuffix(strings.ToLower(name), ".png") {
			name += ".png"
		}
		path, err = m.config.GetSavePath(name)
		if err == nil {
			err = exportPNG(m.app.Pages(), path)
		}
	case FileOpExportTXT:
		if !strings.HasSuffix(strings.ToLower(name), ".txt") {
			name += ".txt"
		}
		path, err = m.config.GetSavePath(name)
		if err == nil {
			err = exportVisualTXT(m.app.Pages(), path)
		}
	}
	if err != nil {
		m.log.Error("export failed", slog.String("path", path), slog.Any("err", err))
		m.errorMessage = err.Error()
		return
	}
	m.log.Info("exported", slog.String("path", path))
	m.successMessage = "Exported " + path
}

func (m *model) reportOutcome(outcome Outcome, success, failure string) {
	if outcome == Applied {
		m.successMessage = success
		return
	}
	m.errorMessage = fmt.Sprintf("%s (%s)", failure, outcome)
}
