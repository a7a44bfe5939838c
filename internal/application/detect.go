package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"vision-hud/internal/domain/entity"
	"vision-hud/internal/domain/port"
	"vision-hud/internal/infrastructure/framesource"
)

// ErrUnsupportedImage данные не удалось декодировать как изображение
var ErrUnsupportedImage = errors.New("unsupported image")

// DetectOutput результат разового прохода алгоритма
type DetectOutput struct {
	Width       int
	Height      int
	Vertices    *entity.VertexBuffer
	Highlighted []byte // PNG кадра с наложенными вершинами
}

// DetectService выполняет алгоритм синхронно, без фонового обработчика
type DetectService struct {
	algo        port.Algorithm
	newCanvas   CanvasFactory
	maxVertices int
	maxSide     int
	edgeColor   color.Color
}

// NewDetectService создаёт сервис разовой детекции
func NewDetectService(algo port.Algorithm, newCanvas CanvasFactory, maxVertices, maxSide int, edgeColor color.Color) *DetectService {
	if edgeColor == nil {
		edgeColor = color.RGBA{G: 255, A: 255}
	}
	return &DetectService{
		algo:        algo,
		newCanvas:   newCanvas,
		maxVertices: maxVertices,
		maxSide:     maxSide,
		edgeColor:   edgeColor,
	}
}

// defaultMaxPixels предел площади декодируемого изображения, если maxSide не задан
const defaultMaxPixels = 1 << 26

// maxPixels предел площади изображения до уменьшения до maxSide
func (s *DetectService) maxPixels() int {
	if s.maxSide <= 0 {
		return defaultMaxPixels
	}
	return s.maxSide * s.maxSide * 16
}

// DetectImage декодирует изображение и запускает на нём детектор.
// Размер проверяется по заголовку до декодирования пикселей.
func (s *DetectService) DetectImage(ctx context.Context, imageData []byte) (*DetectOutput, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > int64(s.maxPixels()) {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrUnsupportedImage, cfg.Width, cfg.Height, s.maxPixels())
	}

	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}
	return s.Detect(ctx, img)
}

// Detect приводит изображение к ограниченному размеру, выполняет проход
// алгоритма и рисует найденные вершины поверх кадра.
func (s *DetectService) Detect(ctx context.Context, img image.Image) (*DetectOutput, error) {
	if s.algo == nil {
		return nil, errors.New("algorithm is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if s.maxSide > 0 && (w > s.maxSide || h > s.maxSide) {
		scale := float64(s.maxSide) / float64(max(w, h))
		w = max(1, int(float64(w)*scale))
		h = max(1, int(float64(h)*scale))
	}
	frame, err := framesource.FitImage(img, w, h)
	if err != nil {
		return nil, err
	}

	out := entity.NewVertexBuffer(s.maxVertices)
	if err := s.algo.Perform(frame, out); err != nil {
		return nil, fmt.Errorf("perform: %w", err)
	}

	result := &DetectOutput{Width: w, Height: h, Vertices: out}
	if s.newCanvas == nil {
		return result, nil
	}

	canvas := s.newCanvas(w, h)
	if c, ok := canvas.(io.Closer); ok {
		defer c.Close()
	}
	canvas.DrawImage(frame.ToImage(), 0, 0)
	for _, v := range out.Vertices() {
		canvas.DrawRect(s.edgeColor, float64(v.X), float64(v.Y), 1, 1)
	}
	var buf bytes.Buffer
	if err := canvas.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode overlay: %w", err)
	}
	result.Highlighted = buf.Bytes()

	return result, nil
}
