package port

import (
	"context"

	"vision-hud/internal/domain/entity"
)

// ViewerRepository интерфейс хранилища зрителей
type ViewerRepository interface {
	// Get возвращает зрителя по ID, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.Viewer, error)

	// Save сохраняет состояние зрителя
	Save(ctx context.Context, viewer *entity.Viewer) error

	// Watching возвращает зрителей, подписанных на периодические снимки
	Watching(ctx context.Context) ([]*entity.Viewer, error)
}
