package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"sync"
	"time"

	"vision-hud/internal/domain/entity"
	"vision-hud/internal/domain/port"
	"vision-hud/internal/logger"
	"vision-hud/internal/worker"
)

// HUDConfig размещение наложения на HUD
type HUDConfig struct {
	FrameWidth   int
	FrameHeight  int
	LeftX        float64
	TopY         float64
	BorderWidth  float64
	BorderColor  color.Color
	Background   color.Color
	TickInterval time.Duration
}

// HUDStatus состояние HUD для отладочных интерфейсов
type HUDStatus struct {
	Enabled bool          `json:"enabled"`
	Ticks   uint64        `json:"ticks"`
	Errors  uint64        `json:"errors"`
	Worker  *worker.Stats `json:"worker,omitempty"`
}

// HUDService потребитель: на каждом тике берёт кадр из источника,
// рисует его с рамкой и передаёт обработчику, который дорисовывает вершины.
type HUDService struct {
	cfg    HUDConfig
	slot   *worker.Slot
	source port.FrameSource
	canvas Canvas

	mu       sync.Mutex
	worker   *worker.Worker
	disabled bool
	ticks    uint64
	errors   uint64
}

// NewHUDService создаёт HUD; обработчик запускается в Start
func NewHUDService(cfg HUDConfig, slot *worker.Slot, source port.FrameSource, canvas Canvas) *HUDService {
	if cfg.BorderColor == nil {
		cfg.BorderColor = color.RGBA{R: 255, G: 255, A: 255}
	}
	if cfg.Background == nil {
		cfg.Background = color.Black
	}
	return &HUDService{
		cfg:    cfg,
		slot:   slot,
		source: source,
		canvas: canvas,
	}
}

// Start получает обработчик из слота. Если платформа не поддерживает
// фоновую обработку, HUD продолжает работать без наложения.
func (s *HUDService) Start() error {
	w, err := s.slot.NewWorker(s.cfg.FrameWidth, s.cfg.FrameHeight, s.canvas, s.cfg.LeftX, s.cfg.TopY)
	switch {
	case errors.Is(err, entity.ErrVisionDisabled):
		logger.WithError(err).Warn("vision overlay disabled")
		s.mu.Lock()
		s.disabled = true
		s.mu.Unlock()
		return nil
	case err != nil:
		return fmt.Errorf("start vision worker: %w", err)
	}

	s.mu.Lock()
	s.worker = w
	s.disabled = false
	s.mu.Unlock()
	return nil
}

// Tick выполняет один тик отрисовки HUD
func (s *HUDService) Tick(ctx context.Context) error {
	frame, err := s.source.Next(ctx)
	if err != nil {
		s.countError()
		return fmt.Errorf("next frame: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.canvas.Clear(s.cfg.Background)
	s.canvas.DrawImage(frame.ToImage(), s.cfg.LeftX, s.cfg.TopY)
	drawBorder(s.canvas, s.cfg.BorderColor,
		s.cfg.LeftX, s.cfg.TopY,
		s.cfg.LeftX+float64(frame.Width), s.cfg.TopY+float64(frame.Height),
		s.cfg.BorderWidth)

	if s.worker != nil {
		if err := s.worker.Update(frame); err != nil {
			s.errors++
			return err
		}
	}
	s.ticks++

	return nil
}

// Run тикает с заданным периодом до отмены контекста, затем останавливает обработчик
func (s *HUDService) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	defer s.Shutdown()

	interval := s.cfg.TickInterval
	if interval <= 0 {
		interval = time.Second / 30
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.WithField("interval", interval.String()).Info("HUD loop started")
	for {
		select {
		case <-ctx.Done():
			logger.Info("HUD loop stopped")
			return nil
		case <-ticker.C:
			if err := s.Tick(ctx); err != nil && ctx.Err() == nil {
				logger.WithError(err).Warn("HUD tick failed")
			}
		}
	}
}

// Shutdown останавливает обработчик и дожидается его завершения
func (s *HUDService) Shutdown() {
	s.slot.Shutdown()

	s.mu.Lock()
	s.worker = nil
	s.mu.Unlock()
}

// Snapshot пишет последний отрисованный HUD в формате PNG
func (s *HUDService) Snapshot(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.EncodePNG(w)
}

// SnapshotPNG возвращает последний отрисованный HUD в формате PNG
func (s *HUDService) SnapshotPNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Snapshot(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Status возвращает состояние HUD и обработчика
func (s *HUDService) Status() HUDStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := HUDStatus{
		Enabled: !s.disabled && s.worker != nil,
		Ticks:   s.ticks,
		Errors:  s.errors,
	}
	if s.worker != nil {
		stats := s.worker.Stats()
		st.Worker = &stats
	}
	return st
}

func (s *HUDService) countError() {
	s.mu.Lock()
	s.errors++
	s.mu.Unlock()
}
