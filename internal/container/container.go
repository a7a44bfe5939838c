package container

import (
	"fmt"
	"image/color"
	"sync"

	"vision-hud/config"
	app "vision-hud/internal/application"
	"vision-hud/internal/domain/port"
	"vision-hud/internal/infrastructure/framesource"
	"vision-hud/internal/infrastructure/storage"
	"vision-hud/internal/infrastructure/surface"
	"vision-hud/internal/infrastructure/vision"
	"vision-hud/internal/worker"
)

// maxDetectSide ограничение стороны изображения для разовой детекции
const maxDetectSide = 1024

// Container корень композиции: владеет слотом обработчика и сервисами
type Container struct {
	Slot          *worker.Slot
	Source        port.FrameSource
	Canvas        *surface.Canvas
	HUDService    *app.HUDService
	DetectService *app.DetectService
	ViewerService *app.ViewerService

	closeOnce sync.Once
	closeErr  error
}

// New собирает зависимости из конфигурации
func New(cfg *config.Config) (*Container, error) {
	detector, err := NewDetector(cfg)
	if err != nil {
		return nil, err
	}

	source, err := framesource.Open(cfg.FrameSource, cfg.FrameWidth, cfg.FrameHeight)
	if err != nil {
		return nil, fmt.Errorf("open frame source: %w", err)
	}

	threaded := cfg.Threaded
	platform := port.PlatformFunc(func() bool { return threaded })
	slot := worker.NewSlot(detector, platform, worker.Options{
		MaxVertices: cfg.MaxVertices,
		EdgeColor:   cfg.EdgeColor,
		Warmup:      cfg.Warmup,
		Yield:       cfg.Yield,
	})

	cw, ch := cfg.CanvasSize()
	canvas := surface.NewCanvas(cw, ch)

	hud := app.NewHUDService(app.HUDConfig{
		FrameWidth:   cfg.FrameWidth,
		FrameHeight:  cfg.FrameHeight,
		LeftX:        cfg.LeftX,
		TopY:         cfg.TopY,
		BorderWidth:  cfg.BorderWidth,
		BorderColor:  cfg.BorderColor,
		Background:   color.Black,
		TickInterval: cfg.TickInterval(),
	}, slot, source, canvas)

	return &Container{
		Slot:          slot,
		Source:        source,
		Canvas:        canvas,
		HUDService:    hud,
		DetectService: NewDetectService(cfg, detector),
		ViewerService: app.NewViewerService(storage.NewMemoryViewerRepository()),
	}, nil
}

// NewDetector создаёт детектор границ из конфигурации
func NewDetector(cfg *config.Config) (*vision.EdgeDetector, error) {
	detector, err := vision.NewEdgeDetector(vision.Params{
		LowThreshold: cfg.LowThreshold,
		Ratio:        cfg.Ratio,
		KernelSize:   cfg.KernelSize,
	})
	if err != nil {
		return nil, fmt.Errorf("edge detector: %w", err)
	}
	return detector, nil
}

// NewDetectService создаёт сервис разовой детекции с программной поверхностью
func NewDetectService(cfg *config.Config, algo port.Algorithm) *app.DetectService {
	return app.NewDetectService(algo, func(w, h int) app.Canvas {
		return surface.NewCanvas(w, h)
	}, cfg.MaxVertices, maxDetectSide, cfg.EdgeColor)
}

// Close останавливает обработчик и освобождает источник и поверхность.
// Повторные вызовы возвращают результат первого.
func (c *Container) Close() error {
	c.closeOnce.Do(func() {
		c.HUDService.Shutdown()
		c.closeErr = c.Source.Close()
		if err := c.Canvas.Close(); c.closeErr == nil {
			c.closeErr = err
		}
	})
	return c.closeErr
}
