package surface

import (
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"

	"vision-hud/internal/domain/port"
	"vision-hud/internal/logger"
)

// Canvas программная поверхность HUD на базе gg.Context
type Canvas struct {
	dc *gg.Context
}

// NewCanvas создаёт поверхность заданного размера
func NewCanvas(width, height int) *Canvas {
	return &Canvas{dc: gg.NewContext(width, height)}
}

// Width ширина поверхности
func (c *Canvas) Width() int {
	return c.dc.Width()
}

// Height высота поверхности
func (c *Canvas) Height() int {
	return c.dc.Height()
}

// DrawRect рисует закрашенный прямоугольник
func (c *Canvas) DrawRect(col color.Color, x, y, w, h float64) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(x, y, w, h)
	if err := c.dc.Fill(); err != nil {
		logger.WithError(err).Debug("canvas fill failed")
	}
}

// DrawImage рисует изображение с левым верхним углом в (x, y)
func (c *Canvas) DrawImage(img image.Image, x, y float64) {
	c.dc.DrawImage(gg.ImageBufFromImage(img), x, y)
}

// Clear заливает поверхность цветом
func (c *Canvas) Clear(col color.Color) {
	c.dc.ClearWithColor(gg.FromColor(col))
}

// Image возвращает текущее содержимое поверхности
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG кодирует содержимое поверхности в PNG
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// Close освобождает ресурсы контекста
func (c *Canvas) Close() error {
	return c.dc.Close()
}

// Проверка реализации интерфейса
var _ port.Surface = (*Canvas)(nil)
