package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"wordslot/board"
)

// exportVisualTXT writes the arrangement as it appears on screen, without
// focus, selection or menus.
func (m *model) exportVisualTXT(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	l := buildLayout(m.session, m.renderWidth())
	for _, line := range l.Render(m.session, renderOptions{prompt: m.config.Puzzle.Prompt}) {
		if _, err := fmt.Fprintln(file, line); err != nil {
			return err
		}
	}
	return nil
}

var (
	successColor = color.RGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff}
	errorColor   = color.RGBA{R: 0xc6, G: 0x28, B: 0x28, A: 0xff}
)

// ExportToPNG draws the layout's boxes and labels into an image. The
// dropzones are framed in the outcome colour once every slot is filled.
func ExportToPNG(filename string, l *Layout, s *board.Session, prompt string) error {
	if len(l.slots) == 0 {
		return fmt.Errorf("nothing to export")
	}

	charWidth := 8.0
	charHeight := 16.0
	padding := 2

	imageWidth := int(float64(l.width+2*padding) * charWidth)
	imageHeight := int(float64(l.height+2*padding) * charHeight)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12.0,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	px := func(x int) float64 { return float64(x+padding) * charWidth }
	py := func(y int) float64 { return float64(y+padding) * charHeight }

	dc.DrawString(prompt, px(0), py(l.promptY+1))
	dc.DrawString("Word bank", px(0), py(l.bankY+1))
	dc.DrawString("Dropzones", px(0), py(l.headerY+1))

	for i, id := range l.order {
		sb := l.slots[id]
		dc.SetColor(color.Black)
		dc.DrawString(fmt.Sprintf("%d.", i+1), px(marginX), py(sb.Y+slotHeight/2+1))
		drawBoxPNG(dc, sb, px, py, charWidth, charHeight)
	}
	for _, b := range l.tokens {
		drawBoxPNG(dc, b, px, py, charWidth, charHeight)
	}

	var frame color.Color
	switch s.Marker() {
	case board.MarkerSuccess:
		frame = successColor
	case board.MarkerError:
		frame = errorColor
	}
	if frame != nil {
		first := l.slots[l.order[0]]
		last := l.slots[l.order[len(l.order)-1]]
		dc.SetColor(frame)
		dc.SetLineWidth(3.0)
		dc.DrawRectangle(px(first.X)-charWidth/2, py(first.Y)-charHeight/2,
			float64(first.Width+1)*charWidth, float64(last.Y+last.Height-first.Y+1)*charHeight)
		dc.Stroke()
	}

	return dc.SavePNG(filename)
}

func drawBoxPNG(dc *gg.Context, box Box, px, py func(int) float64, charWidth, charHeight float64) {
	x, y := px(box.X), py(box.Y)
	width := float64(box.Width) * charWidth
	height := float64(box.Height) * charHeight

	dc.SetLineWidth(1.0)
	dc.SetColor(color.Black)
	dc.DrawRectangle(x, y, width, height)
	dc.Stroke()

	for i, line := range box.Lines {
		dc.DrawString(line, x+2*charWidth, y+charHeight*float64(i+1)+charHeight/2)
	}
}
