package app

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"vision-hud/internal/infrastructure/surface"
	"vision-hud/internal/infrastructure/vision"
)

func newDetectService(t *testing.T, maxSide int) *DetectService {
	t.Helper()
	det, err := vision.NewEdgeDetector(vision.DefaultParams())
	require.NoError(t, err)
	return NewDetectService(det, func(w, h int) Canvas { return surface.NewCanvas(w, h) }, 1000, maxSide, nil)
}

func lineImage(w, h, x int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for xx := 0; xx < w; xx++ {
			img.Set(xx, y, color.Black)
		}
		img.Set(x, y, color.White)
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func TestDetectService_DetectImage(t *testing.T) {
	svc := newDetectService(t, 1024)

	out, err := svc.DetectImage(context.Background(), lineImage(64, 64, 32))
	require.NoError(t, err)
	require.Equal(t, 64, out.Width)
	require.Equal(t, 64, out.Height)
	require.Greater(t, out.Vertices.Count(), 0)
	require.LessOrEqual(t, out.Vertices.Count(), 128)

	img, err := png.Decode(bytes.NewReader(out.Highlighted))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())
}

func TestDetectService_DownscalesLargeImages(t *testing.T) {
	svc := newDetectService(t, 50)

	out, err := svc.DetectImage(context.Background(), lineImage(200, 100, 100))
	require.NoError(t, err)
	require.Equal(t, 50, out.Width)
	require.Equal(t, 25, out.Height)
}

func TestDetectService_Errors(t *testing.T) {
	svc := newDetectService(t, 0)

	_, err := svc.DetectImage(context.Background(), []byte("not an image"))
	require.ErrorIs(t, err, ErrUnsupportedImage)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.DetectImage(ctx, lineImage(8, 8, 4))
	require.ErrorIs(t, err, context.Canceled)

	empty := NewDetectService(nil, nil, 10, 0, nil)
	_, err = empty.DetectImage(context.Background(), lineImage(8, 8, 4))
	require.Error(t, err)
}

func TestDetectService_WithoutCanvas(t *testing.T) {
	det, err := vision.NewEdgeDetector(vision.DefaultParams())
	require.NoError(t, err)
	svc := NewDetectService(det, nil, 1000, 0, nil)

	out, err := svc.DetectImage(context.Background(), lineImage(16, 16, 8))
	require.NoError(t, err)
	require.Nil(t, out.Highlighted)
	require.Greater(t, out.Vertices.Count(), 0)
}

func TestDetectService_RejectsOversizedImage(t *testing.T) {
	// предел 4*4*16 = 256 пикселей
	svc := newDetectService(t, 4)

	_, err := svc.DetectImage(context.Background(), lineImage(64, 64, 32))
	require.ErrorIs(t, err, ErrUnsupportedImage)

	out, err := svc.DetectImage(context.Background(), lineImage(16, 16, 8))
	require.NoError(t, err)
	require.Equal(t, 4, out.Width)
}

type closingCanvas struct {
	fakeCanvas
	closed int
}

func (c *closingCanvas) Close() error {
	c.closed++
	return nil
}

var _ io.Closer = (*closingCanvas)(nil)

func TestDetectService_ClosesCanvas(t *testing.T) {
	det, err := vision.NewEdgeDetector(vision.DefaultParams())
	require.NoError(t, err)

	var canvases []*closingCanvas
	svc := NewDetectService(det, func(w, h int) Canvas {
		c := &closingCanvas{}
		canvases = append(canvases, c)
		return c
	}, 1000, 0, nil)

	out, err := svc.DetectImage(context.Background(), lineImage(32, 32, 16))
	require.NoError(t, err)
	require.Equal(t, []byte("png"), out.Highlighted)

	require.Len(t, canvases, 1)
	require.Equal(t, 1, canvases[0].closed)
	require.Greater(t, len(canvases[0].drawn()), 0)
}
