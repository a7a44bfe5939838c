package port

import "image/color"

// Surface поверхность HUD, на которой рисуется наложение
type Surface interface {
	// DrawRect рисует закрашенный прямоугольник
	DrawRect(c color.Color, x, y, w, h float64)
}
