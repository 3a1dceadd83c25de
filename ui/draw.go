package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Face is the ui font used everywhere.
var Face font.Face = basicfont.Face7x13

var Colors = map[string]color.RGBA{
	"dark":        {0x20, 0x1d, 0x27, 0xff},
	"dark-gray":   {0x40, 0x3c, 0x4a, 0xff},
	"light-beige": {0xe8, 0xdc, 0xb5, 0xff},
	"green":       {0x4f, 0x8f, 0x55, 0xff},
	"red":         {0x9e, 0x3b, 0x3b, 0xff},
	"yellow":      {0xd8, 0xb4, 0x4a, 0xff},
	"blue":        {0x4a, 0x6c, 0xd8, 0xff},
}

func FillRect(dst *ebiten.Image, x, y, w, h int, clr color.Color) {
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func StrokeRect(dst *ebiten.Image, x, y, w, h int, width float32, clr color.Color) {
	vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), width, clr, false)
}

// DrawText renders a single line with its top-left corner at (x, y).
func DrawText(dst *ebiten.Image, s string, x, y int, clr color.Color) {
	text.Draw(dst, s, Face, x, y+Face.Metrics().Ascent.Ceil(), clr)
}

// TextWidth measures a single line in pixels.
func TextWidth(s string) int {
	return font.MeasureString(Face, s).Ceil()
}
