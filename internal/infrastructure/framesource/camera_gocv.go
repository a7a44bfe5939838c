//go:build gocv
// +build gocv

package framesource

import (
	"context"
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"vision-hud/internal/domain/entity"
	"vision-hud/internal/domain/port"
)

// CameraSource источник кадров с камеры через OpenCV
type CameraSource struct {
	capture *gocv.VideoCapture
	raw     gocv.Mat
	resized gocv.Mat
	frame   *entity.Frame
}

// NewCameraSource открывает камеру с индексом device
func NewCameraSource(device, width, height int) (*CameraSource, error) {
	frame, err := entity.NewFrame(width, height)
	if err != nil {
		return nil, err
	}
	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", device, err)
	}
	return &CameraSource{
		capture: capture,
		raw:     gocv.NewMat(),
		resized: gocv.NewMat(),
		frame:   frame,
	}, nil
}

// Next читает кадр с камеры и приводит его к размеру источника
func (s *CameraSource) Next(ctx context.Context) (*entity.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ok := s.capture.Read(&s.raw); !ok || s.raw.Empty() {
		return nil, errors.New("camera read failed")
	}

	gocv.Resize(s.raw, &s.resized, image.Pt(s.frame.Width, s.frame.Height), 0, 0, gocv.InterpolationArea)
	if s.resized.Type() != gocv.MatTypeCV8UC3 {
		return nil, fmt.Errorf("unexpected camera mat type %v", s.resized.Type())
	}
	copy(s.frame.Pix, s.resized.ToBytes())

	return s.frame, nil
}

// Close закрывает камеру
func (s *CameraSource) Close() error {
	s.raw.Close()
	s.resized.Close()
	return s.capture.Close()
}

// Проверка реализации интерфейса
var _ port.FrameSource = (*CameraSource)(nil)
