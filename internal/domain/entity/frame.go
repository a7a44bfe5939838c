package entity

import (
	"fmt"
	"image"
	"image/color"
)

// Channels количество каналов в пикселе кадра (B, G, R)
const Channels = 3

// Frame цветной кадр в порядке каналов BGR, 8 бит на канал.
// Pix хранится построчно, шаг строки равен Width*Channels.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewFrame создаёт чёрный кадр заданного размера
func NewFrame(width, height int) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("new frame %dx%d: %w", width, height, ErrInvalidDimensions)
	}
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*Channels),
	}, nil
}

// FrameFromImage переводит image.Image в кадр BGR того же размера
func FrameFromImage(img image.Image) (*Frame, error) {
	b := img.Bounds()
	f, err := NewFrame(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			f.SetBGR(x, y, uint8(bl>>8), uint8(g>>8), uint8(r>>8))
		}
	}
	return f, nil
}

// SameSize сообщает, совпадают ли размеры двух кадров
func (f *Frame) SameSize(other *Frame) bool {
	return other != nil && f.Width == other.Width && f.Height == other.Height
}

// CopyFrom полностью перезаписывает кадр содержимым src.
// При несовпадении размеров кадр не изменяется.
func (f *Frame) CopyFrom(src *Frame) error {
	if !f.SameSize(src) {
		if src == nil {
			return fmt.Errorf("copy nil frame: %w", ErrFrameSizeMismatch)
		}
		return fmt.Errorf("copy %dx%d into %dx%d: %w",
			src.Width, src.Height, f.Width, f.Height, ErrFrameSizeMismatch)
	}
	if len(src.Pix) != len(f.Pix) {
		return fmt.Errorf("copy frame with %d bytes into %d: %w", len(src.Pix), len(f.Pix), ErrFrameSizeMismatch)
	}
	copy(f.Pix, src.Pix)
	return nil
}

// Clone возвращает независимую копию кадра
func (f *Frame) Clone() *Frame {
	pix := make([]uint8, len(f.Pix))
	copy(pix, f.Pix)
	return &Frame{Width: f.Width, Height: f.Height, Pix: pix}
}

// SetBGR записывает пиксель (x, y)
func (f *Frame) SetBGR(x, y int, b, g, r uint8) {
	i := (y*f.Width + x) * Channels
	f.Pix[i] = b
	f.Pix[i+1] = g
	f.Pix[i+2] = r
}

// BGR возвращает пиксель (x, y)
func (f *Frame) BGR(x, y int) (b, g, r uint8) {
	i := (y*f.Width + x) * Channels
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

// Fill заливает весь кадр одним цветом
func (f *Frame) Fill(c color.Color) {
	r, g, b, _ := c.RGBA()
	for i := 0; i < len(f.Pix); i += Channels {
		f.Pix[i] = uint8(b >> 8)
		f.Pix[i+1] = uint8(g >> 8)
		f.Pix[i+2] = uint8(r >> 8)
	}
}

// ToImage переводит кадр в image.NRGBA для отрисовки и фильтров
func (f *Frame) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i, j := 0, 0; i < len(f.Pix); i, j = i+Channels, j+4 {
		img.Pix[j] = f.Pix[i+2]
		img.Pix[j+1] = f.Pix[i+1]
		img.Pix[j+2] = f.Pix[i]
		img.Pix[j+3] = 0xff
	}
	return img
}
