package app

import (
	"context"
	"image"
	"image/color"
	"io"
	"sync"

	"vision-hud/internal/domain/entity"
)

type drawnRect struct {
	c          color.Color
	x, y, w, h float64
}

type fakeCanvas struct {
	mu     sync.Mutex
	rects  []drawnRect
	images int
	clears int
}

func (c *fakeCanvas) DrawRect(col color.Color, x, y, w, h float64) {
	c.mu.Lock()
	c.rects = append(c.rects, drawnRect{col, x, y, w, h})
	c.mu.Unlock()
}

func (c *fakeCanvas) Clear(color.Color) {
	c.mu.Lock()
	c.rects = nil
	c.clears++
	c.mu.Unlock()
}

func (c *fakeCanvas) DrawImage(image.Image, float64, float64) {
	c.mu.Lock()
	c.images++
	c.mu.Unlock()
}

func (c *fakeCanvas) EncodePNG(w io.Writer) error {
	_, err := w.Write([]byte("png"))
	return err
}

func (c *fakeCanvas) drawn() []drawnRect {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]drawnRect(nil), c.rects...)
}

// staticSource всегда отдаёт один и тот же кадр
type staticSource struct {
	frame *entity.Frame
	err   error
}

func (s *staticSource) Next(ctx context.Context) (*entity.Frame, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.frame, ctx.Err()
}

func (s *staticSource) Close() error { return nil }

// brightPixels отдаёт координаты ненулевых пикселей
type brightPixels struct{}

func (brightPixels) Perform(frame *entity.Frame, out *entity.VertexBuffer) error {
	out.Reset()
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			if b, g, r := frame.BGR(x, y); b|g|r != 0 && !out.Push(entity.Vertex{X: x, Y: y}) {
				return nil
			}
		}
	}
	return nil
}
