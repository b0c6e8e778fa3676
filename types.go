package main

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
)

type model struct {
	width          int
	height         int
	app            *App
	config         *Config
	log            *slog.Logger
	mode           Mode
	help           bool
	helpScroll     int
	focusedPage    int
	pageOffset     int
	panelOffset    int
	cursorX        int
	cursorY        int
	drag           dragState
	rename         renameBuffer
	fileInput      textinput.Model
	fileOp         FileOperation
	confirmAction  ConfirmAction
	confirmTarget  string
	movingID       string
	originalMoveX  int
	originalMoveY  int
	errorMessage   string
	successMessage string
}

// dragState tracks a mouse drag from press to release.
type dragState struct {
	active  bool
	payload DragPayload
	grabX   int
	grabY   int
	pointer point
}

type point struct {
	X, Y int
}

// screenTarget describes what lies under a screen cell.
type screenTarget struct {
	kind     targetKind
	page     int
	canvasX  int
	canvasY  int
	library  int
	panelRow int
}

type targetKind int

const (
	targetNone targetKind = iota
	targetLibrary
	targetCanvas
	targetPanel
)
