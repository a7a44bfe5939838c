//go:build !gocv
// +build !gocv

package vision

import (
	"image"
	"math"
)

const (
	tan22 = 0.41421356237309503 // tg(22.5°)
	tan67 = 2.414213562373095   // tg(67.5°)

	edgeNone   = 0
	edgeWeak   = 1
	edgeStrong = 2
)

// thresholds целые пороги гистерезиса; при Ratio < 1 меняются местами, как в OpenCV
func thresholds(p Params) (low, high int32) {
	low = int32(math.Floor(p.LowThreshold))
	high = int32(math.Floor(p.HighThreshold()))
	if low > high {
		low, high = high, low
	}
	return low, high
}

// canny строит бинарную маску границ (0 или 255) того же размера, что и gray.
// Градиент: оператор Собеля с репликацией краёв, норма L1, как в OpenCV.
func canny(gray *image.Gray, p Params) []uint8 {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()

	gx, gy := sobel(gray, p.KernelSize)
	mag := make([]int32, w*h)
	for i := range mag {
		mag[i] = abs32(gx[i]) + abs32(gy[i])
	}

	low, high := thresholds(p)

	at := func(x, y int) int32 {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		return mag[y*w+x]
	}

	// Подавление немаксимумов
	state := make([]uint8, w*h)
	stack := make([]int, 0, 64)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			m := mag[i]
			if m <= low {
				continue
			}

			ax, ay := float64(abs32(gx[i])), float64(abs32(gy[i]))
			var isMax bool
			switch {
			case ay < tan22*ax:
				isMax = m > at(x-1, y) && m >= at(x+1, y)
			case ay > tan67*ax:
				isMax = m > at(x, y-1) && m >= at(x, y+1)
			default:
				s := 1
				if (gx[i] < 0) != (gy[i] < 0) {
					s = -1
				}
				isMax = m > at(x-s, y-1) && m > at(x+s, y+1)
			}
			if !isMax {
				continue
			}

			if m > high {
				state[i] = edgeStrong
				stack = append(stack, i)
			} else {
				state[i] = edgeWeak
			}
		}
	}

	// Гистерезис: слабые точки остаются, только если связаны с сильными
	mask := make([]uint8, w*h)
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if mask[i] != 0 {
			continue
		}
		mask[i] = 255

		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				n := ny*w + nx
				if state[n] != edgeNone && mask[n] == 0 {
					stack = append(stack, n)
				}
			}
		}
	}

	return mask
}

// sobel считает производные по x и y разделимым ядром заданной апертуры
func sobel(gray *image.Gray, size int) (gx, gy []int32) {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	deriv, smooth := sobelKernels(size)
	r := size / 2

	rowDeriv := make([]int32, w*h)
	rowSmooth := make([]int32, w*h)
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		for x := 0; x < w; x++ {
			var d, s int32
			for k := -r; k <= r; k++ {
				v := int32(row[clamp(x+k, 0, w-1)])
				d += deriv[k+r] * v
				s += smooth[k+r] * v
			}
			rowDeriv[y*w+x] = d
			rowSmooth[y*w+x] = s
		}
	}

	gx = make([]int32, w*h)
	gy = make([]int32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var dx, dy int32
			for k := -r; k <= r; k++ {
				j := clamp(y+k, 0, h-1)*w + x
				dx += smooth[k+r] * rowDeriv[j]
				dy += deriv[k+r] * rowSmooth[j]
			}
			gx[y*w+x] = dx
			gy[y*w+x] = dy
		}
	}
	return gx, gy
}

// sobelKernels возвращает ядро производной и сглаживающее ядро размера size
func sobelKernels(size int) (deriv, smooth []int32) {
	smooth = binomial(size - 1)
	base := binomial(size - 3)
	deriv = make([]int32, size)
	for i, c := range base {
		deriv[i] -= c
		deriv[i+2] += c
	}
	return deriv, smooth
}

// binomial возвращает n-ю строку треугольника Паскаля
func binomial(n int) []int32 {
	row := []int32{1}
	for i := 0; i < n; i++ {
		next := make([]int32, len(row)+1)
		for j, v := range row {
			next[j] += v
			next[j+1] += v
		}
		row = next
	}
	return row
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
