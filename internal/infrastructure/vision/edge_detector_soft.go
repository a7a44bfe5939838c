//go:build !gocv
// +build !gocv

package vision

import (
	"image"

	"github.com/disintegration/gift"

	"vision-hud/internal/domain/entity"
)

// boxKernel нормализованное ядро размытия 3x3
var boxKernel = []float32{
	1, 1, 1,
	1, 1, 1,
	1, 1, 1,
}

// detectEdges реализация без OpenCV: серый и размытие через gift, Канни на Go
func detectEdges(frame *entity.Frame, p Params, out *entity.VertexBuffer) error {
	src := frame.ToImage()

	g := gift.New(
		gift.Grayscale(),
		gift.Convolution(boxKernel, true, false, false, 0),
	)
	gray := image.NewGray(g.Bounds(src.Bounds()))
	g.Draw(gray, src)

	mask := canny(gray, p)

	w := gray.Bounds().Dx()
	for i, v := range mask {
		if v == 0 {
			continue
		}
		if !out.Push(entity.Vertex{X: i % w, Y: i / w}) {
			break
		}
	}
	return nil
}
