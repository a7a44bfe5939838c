package framesource

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"vision-hud/internal/domain/entity"
	"vision-hud/internal/domain/port"
)

// ImageSource отдаёт один и тот же кадр из файла изображения
type ImageSource struct {
	frame *entity.Frame
}

// NewImageSource загружает изображение и приводит его к размеру width x height
func NewImageSource(path string, width, height int) (*ImageSource, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	frame, err := FitImage(img, width, height)
	if err != nil {
		return nil, err
	}
	return &ImageSource{frame: frame}, nil
}

// LoadImage декодирует файл изображения (png, jpeg, gif, bmp, tiff, webp)
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

// FitImage масштабирует изображение до width x height и переводит в кадр BGR
func FitImage(img image.Image, width, height int) (*entity.Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("fit image to %dx%d: %w", width, height, entity.ErrInvalidDimensions)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if img.Bounds().Dx() == width && img.Bounds().Dy() == height {
		draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	}
	return entity.FrameFromImage(dst)
}

// Next возвращает кадр изображения
func (s *ImageSource) Next(ctx context.Context) (*entity.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.frame, nil
}

// Close ничего не освобождает
func (s *ImageSource) Close() error {
	return nil
}

// Проверка реализации интерфейса
var _ port.FrameSource = (*ImageSource)(nil)
