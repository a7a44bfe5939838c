package app

import (
	"image"
	"image/color"
	"io"

	"vision-hud/internal/domain/port"
)

// Canvas поверхность HUD, на которой кроме прямоугольников рисуется кадр
type Canvas interface {
	port.Surface
	Clear(c color.Color)
	DrawImage(img image.Image, x, y float64)
	EncodePNG(w io.Writer) error
}

// CanvasFactory создаёт поверхность заданного размера
type CanvasFactory func(width, height int) Canvas

// drawBorder рисует рамку толщиной width вокруг области (lx, uy)-(rx, by)
func drawBorder(s port.Surface, c color.Color, lx, uy, rx, by, width float64) {
	if width <= 0 {
		return
	}
	s.DrawRect(c, lx-width, uy-width, rx-lx+2*width, width)
	s.DrawRect(c, lx-width, by, rx-lx+2*width, width)
	s.DrawRect(c, lx-width, uy, width, by-uy)
	s.DrawRect(c, rx, uy, width, by-uy)
}
