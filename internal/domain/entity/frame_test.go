package entity

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFrame_RejectsNonPositive(t *testing.T) {
	_, err := NewFrame(0, 10)
	require.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = NewFrame(10, -1)
	require.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestFrame_CopyFromMismatchLeavesFrameUntouched(t *testing.T) {
	dst, err := NewFrame(4, 4)
	require.NoError(t, err)
	dst.Fill(color.White)
	before := dst.Clone()

	src, err := NewFrame(4, 5)
	require.NoError(t, err)

	require.ErrorIs(t, dst.CopyFrom(src), ErrFrameSizeMismatch)
	require.ErrorIs(t, dst.CopyFrom(nil), ErrFrameSizeMismatch)
	require.Equal(t, before.Pix, dst.Pix)
}

func TestFrame_CopyFrom(t *testing.T) {
	dst, _ := NewFrame(2, 2)
	src, _ := NewFrame(2, 2)
	src.SetBGR(1, 1, 10, 20, 30)

	require.NoError(t, dst.CopyFrom(src))
	b, g, r := dst.BGR(1, 1)
	require.Equal(t, []uint8{10, 20, 30}, []uint8{b, g, r})

	// Копия независима от источника
	src.SetBGR(1, 1, 0, 0, 0)
	b, _, _ = dst.BGR(1, 1)
	require.Equal(t, uint8(10), b)
}

func TestFrameFromImage_ChannelOrder(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	f, err := FrameFromImage(img)
	require.NoError(t, err)
	require.Equal(t, 2, f.Width)
	require.Equal(t, 1, f.Height)

	b, g, r := f.BGR(0, 0)
	require.Equal(t, uint8(50), b)
	require.Equal(t, uint8(100), g)
	require.Equal(t, uint8(200), r)

	back := f.ToImage()
	require.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 255}, back.NRGBAAt(0, 0))
}
