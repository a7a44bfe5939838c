package worker

import (
	"fmt"
	"sync"

	"vision-hud/internal/domain/entity"
	"vision-hud/internal/domain/port"
	"vision-hud/internal/logger"
)

// Slot владеет единственным экземпляром обработчика для одного алгоритма.
// Хранится в корне композиции и передаётся тем, кому нужен обработчик.
type Slot struct {
	mu       sync.Mutex
	worker   *Worker
	algo     port.Algorithm
	platform port.Platform
	opts     Options
}

// NewSlot создаёт пустой слот
func NewSlot(algo port.Algorithm, platform port.Platform, opts Options) *Slot {
	if platform == nil {
		platform = port.PlatformFunc(func() bool { return true })
	}
	return &Slot{
		algo:     algo,
		platform: platform,
		opts:     opts,
	}
}

// NewWorker возвращает существующий обработчик или создаёт и запускает новый.
// Аргументы повторного вызова игнорируются. Если платформа не поддерживает
// фоновую обработку, возвращает entity.ErrVisionDisabled: наложение выключено.
func (s *Slot) NewWorker(width, height int, surface port.Surface, originX, originY float64) (*Worker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.worker != nil {
		return s.worker, nil
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("new worker %dx%d: %w", width, height, entity.ErrInvalidDimensions)
	}
	if !s.platform.SupportsConcurrency() {
		logger.WithField("component", "vision_slot").Warn("concurrency unsupported, vision overlay disabled")
		return nil, entity.ErrVisionDisabled
	}

	w, err := newWorker(width, height, surface, originX, originY, s.algo, s.opts)
	if err != nil {
		return nil, err
	}
	w.start()
	s.worker = w

	return w, nil
}

// Worker возвращает текущий обработчик или nil
func (s *Slot) Worker() *Worker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.worker
}

// Shutdown останавливает обработчик, дожидается его горутины и очищает слот.
// Повторный вызов и вызов без обработчика ничего не делают.
func (s *Slot) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.worker == nil {
		return
	}
	s.worker.EnsureCompletion()
	s.worker = nil
}
