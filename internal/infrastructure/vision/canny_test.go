//go:build !gocv
// +build !gocv

package vision

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSobelKernels(t *testing.T) {
	d, s := sobelKernels(3)
	require.Equal(t, []int32{-1, 0, 1}, d)
	require.Equal(t, []int32{1, 2, 1}, s)

	d, s = sobelKernels(5)
	require.Equal(t, []int32{-1, -2, 0, 2, 1}, d)
	require.Equal(t, []int32{1, 4, 6, 4, 1}, s)

	d, s = sobelKernels(7)
	require.Equal(t, []int32{-1, -4, -5, 0, 5, 4, 1}, d)
	require.Equal(t, []int32{1, 6, 15, 20, 15, 6, 1}, s)
}

func stepImage(w, h, at int, lo, hi uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := lo
			if x >= at {
				v = hi
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestCanny_StepEdgeIsOnePixelWide(t *testing.T) {
	mask := canny(stepImage(16, 16, 8, 0, 255), DefaultParams())

	count := 0
	for i, v := range mask {
		if v == 0 {
			continue
		}
		require.Equal(t, uint8(255), v)
		require.Equal(t, 7, i%16)
		count++
	}
	require.Equal(t, 16, count)
}

func TestCanny_WeakEdgeWithoutStrongIsDropped(t *testing.T) {
	// Перепад 20 даёт |G| = 80: выше нижнего порога 50, ниже верхнего 150
	mask := canny(stepImage(16, 16, 8, 100, 120), DefaultParams())
	for _, v := range mask {
		require.Zero(t, v)
	}
}

func TestCanny_UniformImage(t *testing.T) {
	mask := canny(stepImage(8, 8, 0, 77, 77), DefaultParams())
	require.Len(t, mask, 64)
	for _, v := range mask {
		require.Zero(t, v)
	}
}

func TestThresholds(t *testing.T) {
	low, high := thresholds(DefaultParams())
	require.Equal(t, int32(50), low)
	require.Equal(t, int32(150), high)

	low, high = thresholds(Params{LowThreshold: 150, Ratio: 0.5, KernelSize: 3})
	require.Equal(t, int32(75), low)
	require.Equal(t, int32(150), high)
}

func TestCanny_InvertedThresholdsMatchOrdered(t *testing.T) {
	for _, img := range []*image.Gray{
		stepImage(16, 16, 8, 0, 255),
		stepImage(16, 16, 8, 100, 130),
		stepImage(16, 16, 8, 0, 30),
	} {
		ordered := canny(img, Params{LowThreshold: 75, Ratio: 2, KernelSize: 3})
		inverted := canny(img, Params{LowThreshold: 150, Ratio: 0.5, KernelSize: 3})
		require.Equal(t, ordered, inverted)
	}
}
