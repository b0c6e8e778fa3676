package main

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Phone frame geometry of the PNG snapshot, in pixels.
const (
	phoneWidth     = 320
	phoneHeight    = 640
	phonePadding   = 8
	statusBarPx    = 24
	pageHeaderPx   = 48
	phoneGap       = 32
	exportMargin   = 24
	gridSpacingPx  = 20
	phoneRadius    = 40
	screenRadius   = 32
	headerFontSize = 16
)

func exportVisualTXT(pages []Page, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create %s: %w", filename, err)
	}
	defer file.Close()

	frames := make([][]string, len(pages))
	for i, page := range pages {
		frames[i] = renderPageFrame(page, frameOptions{plain: true, cursorX: -1, cursorY: -1})
	}
	for row := 0; row < frameHeight; row++ {
		parts := make([]string, len(frames))
		for i, frame := range frames {
			parts[i] = frame[row]
		}
		if _, err := fmt.Fprintln(file, strings.Join(parts, strings.Repeat(" ", frameGap))); err != nil {
			return fmt.Errorf("write %s: %w", filename, err)
		}
	}
	return nil
}

type faceCache struct {
	font  *truetype.Font
	faces map[int]font.Face
}

func (fc *faceCache) face(size int) font.Face {
	if size <= 0 {
		size = defaultFontSize
	}
	if f, ok := fc.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(fc.font, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	fc.faces[size] = f
	return f
}

func exportPNG(pages []Page, filename string) error {
	if len(pages) == 0 {
		return fmt.Errorf("nothing to export")
	}
	ttfFont, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	faces := &faceCache{font: ttfFont, faces: map[int]font.Face{}}

	width := exportMargin*2 + len(pages)*phoneWidth + (len(pages)-1)*phoneGap
	height := exportMargin*2 + phoneHeight
	dc := gg.NewContext(width, height)
	dc.SetColor(rgbaColor("#f1f5f9", color.White))
	dc.Clear()

	for i, page := range pages {
		left := float64(exportMargin + i*(phoneWidth+phoneGap))
		drawPhonePNG(dc, faces, page, left, exportMargin)
	}
	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("save %s: %w", filename, err)
	}
	return nil
}

func drawPhonePNG(dc *gg.Context, faces *faceCache, page Page, left, top float64) {
	dc.SetColor(color.Black)
	dc.DrawRoundedRectangle(left, top, phoneWidth, phoneHeight, phoneRadius)
	dc.Fill()

	screenX := left + phonePadding
	screenY := top + phonePadding
	dc.SetColor(color.White)
	dc.DrawRoundedRectangle(screenX, screenY, phoneWidth-2*phonePadding, phoneHeight-2*phonePadding, screenRadius)
	dc.Fill()

	dc.SetFontFace(faces.face(12))
	dc.SetColor(rgbaColor("#1f2937", color.Black))
	dc.DrawStringAnchored("9:41", screenX+24, screenY+statusBarPx/2, 0, 0.35)
	dc.DrawStringAnchored("●●●", screenX+canvasWidthPx-24, screenY+statusBarPx/2, 1, 0.35)

	headerY := screenY + statusBarPx
	grad := gg.NewLinearGradient(screenX, headerY, screenX+canvasWidthPx, headerY)
	grad.AddColorStop(0, rgbaColor("#a855f7", color.Black))
	grad.AddColorStop(1, rgbaColor("#3b82f6", color.Black))
	dc.SetFillStyle(grad)
	dc.DrawRectangle(screenX, headerY, canvasWidthPx, pageHeaderPx)
	dc.Fill()
	dc.SetFontFace(faces.face(headerFontSize))
	dc.SetColor(color.White)
	dc.DrawStringAnchored(page.Name, screenX+canvasWidthPx/2, headerY+pageHeaderPx/2, 0.5, 0.35)

	canvasX := screenX
	canvasY := headerY + pageHeaderPx
	dc.SetColor(rgbaColor("#f9fafb", color.White))
	dc.DrawRectangle(canvasX, canvasY, canvasWidthPx, canvasHeightPx)
	dc.Fill()

	dc.SetLineWidth(1)
	dc.SetColor(color.RGBA{A: 0x08})
	for x := 0; x <= canvasWidthPx; x += gridSpacingPx {
		dc.DrawLine(canvasX+float64(x), canvasY, canvasX+float64(x), canvasY+canvasHeightPx)
	}
	for y := 0; y <= canvasHeightPx; y += gridSpacingPx {
		dc.DrawLine(canvasX, canvasY+float64(y), canvasX+canvasWidthPx, canvasY+float64(y))
	}
	dc.Stroke()

	// Components may overflow the far edge; clip to the canvas like the editor does.
	dc.Push()
	dc.DrawRectangle(canvasX, canvasY, canvasWidthPx, canvasHeightPx)
	dc.Clip()
	for _, c := range page.Components {
		drawComponentPNG(dc, faces, c, canvasX, canvasY)
	}
	dc.ResetClip()
	dc.Pop()
}

func drawComponentPNG(dc *gg.Context, faces *faceCache, c Component, originX, originY float64) {
	style := c.Style
	if style == nil {
		style = defaultStyle(c.Kind)
	}
	x := originX + float64(c.X)
	y := originY + float64(c.Y)
	w := float64(c.Width)
	h := float64(c.Height)
	radius := float64(style.BorderRadius)

	if bg, ok := parseColor(style.BackgroundColor); ok {
		dc.SetColor(bg)
		dc.DrawRoundedRectangle(x, y, w, h, radius)
		dc.Fill()
	}
	switch c.Kind {
	case KindInput, KindImage:
		dc.SetLineWidth(1)
		dc.SetColor(rgbaColor("#d1d5db", color.Black))
		dc.DrawRoundedRectangle(x, y, w, h, radius)
		dc.Stroke()
	}

	dc.SetFontFace(faces.face(style.FontSize))
	dc.SetColor(rgbaColor(style.Color, color.Black))
	if c.Kind == KindInput {
		dc.DrawStringAnchored(c.Content, x+8, y+h/2, 0, 0.35)
		return
	}
	dc.DrawStringAnchored(c.Content, x+w/2, y+h/2, 0.5, 0.35)
}
