//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"vision-hud/internal/domain/entity"
)

// detectEdges реализация на OpenCV
func detectEdges(frame *entity.Frame, p Params, out *entity.VertexBuffer) error {
	bgr, err := gocv.NewMatFromBytes(frame.Height, frame.Width, gocv.MatTypeCV8UC3, frame.Pix)
	if err != nil {
		return fmt.Errorf("frame to mat: %w", err)
	}
	defer bgr.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(bgr, &gray, gocv.ColorBGRToGray)

	// Подавляем шум ядром 3x3
	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.Blur(gray, &blurred, image.Pt(3, 3))

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.CannyWithParams(blurred, &edges, float32(p.LowThreshold), float32(p.HighThreshold()), p.KernelSize, false)

	if gocv.CountNonZero(edges) == 0 {
		return nil
	}

	coords := gocv.NewMat()
	defer coords.Close()
	gocv.FindNonZero(edges, &coords)

	// FindNonZero перечисляет точки построчно
	for i := 0; i < coords.Total() && !out.Full(); i++ {
		v := coords.GetVeciAt(i, 0)
		out.Push(entity.Vertex{X: int(v[0]), Y: int(v[1])})
	}
	return nil
}
