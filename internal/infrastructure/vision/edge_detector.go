package vision

import (
	"errors"
	"fmt"

	"vision-hud/internal/domain/entity"
	"vision-hud/internal/domain/port"
)

// Params параметры детектора границ Канни
type Params struct {
	LowThreshold float64 // нижний порог гистерезиса
	Ratio        float64 // отношение верхнего порога к нижнему
	KernelSize   int     // апертура оператора Собеля: 3, 5 или 7
}

// DefaultParams возвращает параметры по умолчанию
func DefaultParams() Params {
	return Params{
		LowThreshold: 50,
		Ratio:        3,
		KernelSize:   3,
	}
}

// HighThreshold верхний порог гистерезиса
func (p Params) HighThreshold() float64 {
	return p.LowThreshold * p.Ratio
}

// Validate проверяет параметры
func (p Params) Validate() error {
	if p.LowThreshold < 0 {
		return fmt.Errorf("low threshold must be non-negative, got %v", p.LowThreshold)
	}
	if p.Ratio <= 0 {
		return fmt.Errorf("ratio must be positive, got %v", p.Ratio)
	}
	switch p.KernelSize {
	case 3, 5, 7:
	default:
		return fmt.Errorf("kernel size must be 3, 5 or 7, got %d", p.KernelSize)
	}
	return nil
}

// EdgeDetector алгоритм выделения границ: серый → размытие 3x3 → Канни →
// координаты ненулевых пикселей в порядке построчного обхода.
type EdgeDetector struct {
	params Params
}

// NewEdgeDetector создаёт детектор с проверенными параметрами
func NewEdgeDetector(params Params) (*EdgeDetector, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &EdgeDetector{params: params}, nil
}

// Params возвращает параметры детектора
func (d *EdgeDetector) Params() Params {
	return d.params
}

// Perform выполняет один проход алгоритма. out перезаписывается целиком:
// в него попадают первые out.Cap() пикселей границ, остальные отбрасываются.
func (d *EdgeDetector) Perform(frame *entity.Frame, out *entity.VertexBuffer) error {
	out.Reset()

	if frame == nil {
		return errors.New("nil frame")
	}
	if frame.Width <= 0 || frame.Height <= 0 {
		return fmt.Errorf("perform on %dx%d frame: %w", frame.Width, frame.Height, entity.ErrInvalidDimensions)
	}
	if len(frame.Pix) != frame.Width*frame.Height*entity.Channels {
		return fmt.Errorf("frame buffer has %d bytes, want %d", len(frame.Pix), frame.Width*frame.Height*entity.Channels)
	}
	if out.Cap() == 0 {
		return nil
	}

	if err := detectEdges(frame, d.params, out); err != nil {
		out.Reset()
		return fmt.Errorf("edge detection: %w", err)
	}
	return nil
}

// Проверка реализации интерфейса
var _ port.Algorithm = (*EdgeDetector)(nil)
