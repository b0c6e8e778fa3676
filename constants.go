package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeMove
	ModeRename
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpExportPNG FileOperation = iota
	FileOpExportTXT
)

type ConfirmAction int

const (
	ConfirmDeletePage ConfirmAction = iota
	ConfirmDeleteComponent
	ConfirmQuit
)

// Canvas geometry in pixels. Positions are clamped to [0,canvasMaxX]x[0,canvasMaxY]
// regardless of component size.
const (
	canvasWidthPx  = 304
	canvasHeightPx = 552
	canvasMaxX     = 270
	canvasMaxY     = 550

	dropOffsetX = 50
	dropOffsetY = 25

	defaultComponentWidth  = 100
	defaultComponentHeight = 40
	defaultFontSize        = 14
	defaultBorderRadius    = 8
)

// Terminal cell scale. 304x552 px maps to 38x14 cells.
const (
	pxPerCol   = 8
	pxPerRow   = 40
	canvasCols = canvasWidthPx / pxPerCol
	canvasRows = (canvasHeightPx + pxPerRow - 1) / pxPerRow
)

// Screen layout.
const (
	bodyTop      = 1
	libraryWidth = 24
	panelWidth   = 36
	pagesLeft    = libraryWidth + 1
	frameTop     = bodyTop + 1
	frameWidth   = canvasCols + 2
	frameGap     = 2
	pageSlot     = frameWidth + frameGap
	frameHeight  = canvasRows + 3

	panelPreviewLimit = 3
)
