package port

import (
	"context"

	"vision-hud/internal/domain/entity"
)

// FrameSource источник кадров фиксированного размера
type FrameSource interface {
	// Next возвращает очередной кадр. Вызывающий не должен изменять кадр.
	Next(ctx context.Context) (*entity.Frame, error)

	// Close освобождает ресурсы источника
	Close() error
}
