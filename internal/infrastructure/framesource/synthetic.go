package framesource

import (
	"context"
	"image/color"

	"vision-hud/internal/domain/entity"
	"vision-hud/internal/domain/port"
)

// barWidth ширина движущейся полосы синтетического источника
const barWidth = 4

// SyntheticSource детерминированный источник: тёмный фон, неподвижный
// прямоугольник и светлая вертикальная полоса, сдвигающаяся на пиксель за кадр.
type SyntheticSource struct {
	frame *entity.Frame
	tick  int
}

// NewSyntheticSource создаёт синтетический источник кадров
func NewSyntheticSource(width, height int) (*SyntheticSource, error) {
	f, err := entity.NewFrame(width, height)
	if err != nil {
		return nil, err
	}
	return &SyntheticSource{frame: f}, nil
}

// Next возвращает следующий кадр; буфер кадра переиспользуется
func (s *SyntheticSource) Next(ctx context.Context) (*entity.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := s.frame
	f.Fill(color.RGBA{R: 24, G: 24, B: 32, A: 255})

	// Неподвижный прямоугольник в центре
	rw, rh := f.Width/4, f.Height/4
	for y := (f.Height - rh) / 2; y < (f.Height+rh)/2; y++ {
		for x := (f.Width - rw) / 2; x < (f.Width+rw)/2; x++ {
			f.SetBGR(x, y, 40, 120, 200)
		}
	}

	start := s.tick % f.Width
	for y := 0; y < f.Height; y++ {
		for dx := 0; dx < barWidth; dx++ {
			x := (start + dx) % f.Width
			f.SetBGR(x, y, 230, 230, 230)
		}
	}
	s.tick++

	return f, nil
}

// Close ничего не освобождает
func (s *SyntheticSource) Close() error {
	return nil
}

// Проверка реализации интерфейса
var _ port.FrameSource = (*SyntheticSource)(nil)
