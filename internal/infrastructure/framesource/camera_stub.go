//go:build !gocv
// +build !gocv

package framesource

import (
	"context"
	"errors"

	"vision-hud/internal/domain/entity"
)

// CameraSource заглушка камеры для сборки без OpenCV
type CameraSource struct{}

// NewCameraSource возвращает ошибку, если сборка без тега gocv
func NewCameraSource(device, width, height int) (*CameraSource, error) {
	_ = device
	_ = width
	_ = height
	return nil, errors.New("gocv build tag is not enabled")
}

// Next возвращает ошибку, если сборка без тега gocv
func (s *CameraSource) Next(ctx context.Context) (*entity.Frame, error) {
	_ = ctx
	return nil, errors.New("gocv build tag is not enabled")
}

// Close ничего не делает
func (s *CameraSource) Close() error {
	return nil
}
