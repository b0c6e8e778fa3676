package main

import (
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

func TestHandleDropNewComponentAppliesOffset(t *testing.T) {
	app := newTestApp()
	pc := newPageCanvas(app, "page-1", 100, 200)

	payload := newComponentPayload(libraryItemFor(KindText))
	if outcome := pc.HandleDrop(payload, 250, 325); outcome != Applied {
		t.Fatalf("drop: %v", outcome)
	}
	page, _ := app.Page("page-1")
	if len(page.Components) != 1 {
		t.Fatalf("expected 1 component, got %d", len(page.Components))
	}
	c := page.Components[0]
	if c.X != 100 || c.Y != 100 {
		t.Fatalf("expected (100,100), got (%d,%d)", c.X, c.Y)
	}
	if c.Kind != KindText || c.Content != "Hello World" {
		t.Fatalf("unexpected component %+v", c)
	}
	if c.Width != defaultComponentWidth || c.Height != defaultComponentHeight {
		t.Fatalf("unexpected size %dx%d", c.Width, c.Height)
	}
	if c.Style == nil || c.Style.BackgroundColor != "transparent" || c.Style.Color != "#1f2937" {
		t.Fatalf("unexpected style %+v", c.Style)
	}
}

func TestDropNewButtonStyle(t *testing.T) {
	app := newTestApp()
	c := dropOn(t, app, "page-1", KindButton, 0, 0)
	want := Style{BackgroundColor: "#3b82f6", Color: "white", FontSize: 14, BorderRadius: 8}
	if c.Style == nil || *c.Style != want {
		t.Fatalf("expected %+v, got %+v", want, c.Style)
	}
	if c.Content != "Click me" {
		t.Fatalf("expected default content, got %q", c.Content)
	}
}

func TestHandleDropNearOriginClampsToZero(t *testing.T) {
	app := newTestApp()
	pc := newPageCanvas(app, "page-1", 0, 0)
	pc.HandleDrop(newComponentPayload(libraryItemFor(KindImage)), 10, 10)

	page, _ := app.Page("page-1")
	if c := page.Components[0]; c.X != 0 || c.Y != 0 {
		t.Fatalf("expected (0,0), got (%d,%d)", c.X, c.Y)
	}
}

func TestHandleDropExistingSamePageMoves(t *testing.T) {
	app := newTestApp()
	c := dropOn(t, app, "page-1", KindButton, 0, 0)
	pc := newPageCanvas(app, "page-1", 0, 0)

	if outcome := pc.HandleDrop(existingComponentPayload(c.ID, "page-1"), 150, 125); outcome != Applied {
		t.Fatalf("drop: %v", outcome)
	}
	page, _ := app.Page("page-1")
	if len(page.Components) != 1 {
		t.Fatalf("expected 1 component, got %d", len(page.Components))
	}
	if got := page.Components[0]; got.X != 100 || got.Y != 100 {
		t.Fatalf("expected (100,100), got (%d,%d)", got.X, got.Y)
	}
}

func TestHandleDropExistingFromOtherPage(t *testing.T) {
	app := newTestApp()
	b := app.AddPage()
	c := dropOn(t, app, "page-1", KindInput, 0, 0)
	pc := newPageCanvas(app, b.ID, 0, 0)

	if outcome := pc.HandleDrop(existingComponentPayload(c.ID, "page-1"), 60, 35); outcome != Applied {
		t.Fatalf("drop: %v", outcome)
	}
	home, _ := app.Page("page-1")
	dest, _ := app.Page(b.ID)
	if len(home.Components) != 0 || len(dest.Components) != 1 {
		t.Fatalf("expected transfer, got home=%d dest=%d", len(home.Components), len(dest.Components))
	}
	if got := dest.Components[0]; got.X != 10 || got.Y != 10 {
		t.Fatalf("expected (10,10), got (%d,%d)", got.X, got.Y)
	}
}

func TestHandleDropUnknownTypeIsRejected(t *testing.T) {
	app := newTestApp()
	pc := newPageCanvas(app, "page-1", 0, 0)
	if outcome := pc.HandleDrop(DragPayload{Type: "mystery"}, 100, 100); outcome != Rejected {
		t.Fatalf("expected Rejected, got %v", outcome)
	}
	page, _ := app.Page("page-1")
	if len(page.Components) != 0 {
		t.Fatalf("expected no components, got %d", len(page.Components))
	}
}

func TestDropOnMissingPage(t *testing.T) {
	app := newTestApp()
	pc := newPageCanvas(app, "gone", 0, 0)
	if _, outcome := pc.DropNew(KindButton, "x", 0, 0); outcome != NotFound {
		t.Fatalf("expected NotFound, got %v", outcome)
	}
}

func TestPositionsStayInsideCanvas(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	app := newTestApp()
	pc := newPageCanvas(app, "page-1", 0, 0)
	c := dropOn(t, app, "page-1", KindButton, 0, 0)

	for i := 0; i < 500; i++ {
		x := rng.Intn(2000) - 1000
		y := rng.Intn(2000) - 1000
		pc.MoveComponent(c.ID, x, y)
		got, _, _ := app.FindComponent(c.ID)
		if got.X < 0 || got.X > canvasMaxX || got.Y < 0 || got.Y > canvasMaxY {
			t.Fatalf("move to (%d,%d) left component at (%d,%d)", x, y, got.X, got.Y)
		}
		if x >= 0 && x <= canvasMaxX && got.X != x {
			t.Fatalf("in-range x %d changed to %d", x, got.X)
		}
	}
}

func TestMoveComponentUnknownID(t *testing.T) {
	app := newTestApp()
	pc := newPageCanvas(app, "page-1", 0, 0)
	if outcome := pc.MoveComponent("nope", 1, 1); outcome != NotFound {
		t.Fatalf("expected NotFound, got %v", outcome)
	}
}

func TestCellRect(t *testing.T) {
	tests := []struct {
		c                    Component
		col, row, cols, rows int
	}{
		{Component{X: 0, Y: 0, Width: 100, Height: 40}, 0, 0, 13, 1},
		{Component{X: 100, Y: 100, Width: 100, Height: 40}, 13, 3, 13, 1},
		{Component{X: 270, Y: 550, Width: 100, Height: 40}, 34, canvasRows - 1, 13, 1},
		{Component{X: 3, Y: 19, Width: 0, Height: 0}, 0, 0, 1, 1},
	}
	for _, tc := range tests {
		col, row, cols, rows := cellRect(tc.c)
		if col != tc.col || row != tc.row || cols != tc.cols || rows != tc.rows {
			t.Fatalf("cellRect(%+v) = %d,%d,%d,%d, want %d,%d,%d,%d",
				tc.c, col, row, cols, rows, tc.col, tc.row, tc.cols, tc.rows)
		}
	}
}

func TestComponentAtPrefersTopmost(t *testing.T) {
	page := Page{Components: []Component{
		{ID: "under", X: 0, Y: 0, Width: 100, Height: 40},
		{ID: "over", X: 40, Y: 0, Width: 100, Height: 40},
	}}
	if got := componentAt(page, 2, 0); got != "under" {
		t.Fatalf("expected under, got %q", got)
	}
	if got := componentAt(page, 6, 0); got != "over" {
		t.Fatalf("expected over, got %q", got)
	}
	if got := componentAt(page, 30, 5); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestRenderPageFrameShape(t *testing.T) {
	page := Page{ID: "p", Name: "Home", Components: []Component{
		{ID: "b", Kind: KindButton, X: 0, Y: 0, Width: 100, Height: 40, Content: "Click me", Style: defaultStyle(KindButton)},
	}}
	lines := renderPageFrame(page, frameOptions{plain: true, cursorX: -1, cursorY: -1})
	if len(lines) != frameHeight {
		t.Fatalf("expected %d lines, got %d", frameHeight, len(lines))
	}
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n != frameWidth {
			t.Fatalf("line %d is %d cells wide: %q", i, n, line)
		}
	}
	if !strings.Contains(lines[0], " Home ") {
		t.Fatalf("title missing from %q", lines[0])
	}
	if !strings.Contains(lines[1], "9:41") {
		t.Fatalf("status bar missing from %q", lines[1])
	}
	if !strings.Contains(lines[2], "[ Click me  ]") {
		t.Fatalf("button missing from first canvas row %q", lines[2])
	}
}

func TestRenderEmptyPageShowsHint(t *testing.T) {
	lines := renderPageFrame(Page{ID: "p", Name: "Empty"}, frameOptions{plain: true, cursorX: -1, cursorY: -1})
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "Drop components here") {
		t.Fatalf("expected empty hint in\n%s", joined)
	}
}

func TestRenderPageFrameKeepsWidthForWideAndMultilineContent(t *testing.T) {
	page := Page{ID: "p", Name: "日本語\tpage", Components: []Component{
		{ID: "wide", Kind: KindText, X: 0, Y: 0, Width: 100, Height: 40, Content: "日本語日本語日本語"},
		{ID: "multi", Kind: KindText, X: 0, Y: 80, Width: 100, Height: 40, Content: "line1\nline2"},
		{ID: "button", Kind: KindButton, X: 0, Y: 160, Width: 100, Height: 40, Content: "送信する送信する"},
		{ID: "edge", Kind: KindInput, X: canvasMaxX, Y: 240, Width: 100, Height: 40, Content: "入力入力"},
	}}
	lines := renderPageFrame(page, frameOptions{plain: true, cursorX: -1, cursorY: -1})
	if len(lines) != frameHeight {
		t.Fatalf("expected %d lines, got %d", frameHeight, len(lines))
	}
	for i, line := range lines {
		if strings.ContainsAny(line, "\n\r\t") {
			t.Fatalf("line %d contains a control rune: %q", i, line)
		}
		if w := runewidth.StringWidth(line); w != frameWidth {
			t.Fatalf("line %d is %d cells wide, want %d: %q", i, w, frameWidth, line)
		}
	}
	if !strings.Contains(lines[2], "日本語日本語") {
		t.Fatalf("wide label missing from %q", lines[2])
	}
	if !strings.Contains(lines[4], "line1 line2") {
		t.Fatalf("flattened label missing from %q", lines[4])
	}
}

func TestDropNewFlattensContent(t *testing.T) {
	app := newTestApp()
	comp, _ := newPageCanvas(app, "page-1", 0, 0).DropNew(KindText, "a\nb\x07c", 0, 0)
	if comp.Content != "a bc" {
		t.Fatalf("expected flattened content, got %q", comp.Content)
	}
}
