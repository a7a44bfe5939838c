package storage

import (
	"context"
	"sort"
	"sync"

	"vision-hud/internal/domain/entity"
	"vision-hud/internal/domain/port"
)

// MemoryViewerRepository in-memory хранилище зрителей
type MemoryViewerRepository struct {
	mu      sync.RWMutex
	viewers map[int64]*entity.Viewer
}

// NewMemoryViewerRepository создаёт новое in-memory хранилище
func NewMemoryViewerRepository() *MemoryViewerRepository {
	return &MemoryViewerRepository{
		viewers: make(map[int64]*entity.Viewer),
	}
}

// Get возвращает зрителя по ID, создаёт нового если не найден
func (r *MemoryViewerRepository) Get(ctx context.Context, userID, chatID int64) (*entity.Viewer, error) {
	r.mu.RLock()
	viewer, exists := r.viewers[userID]
	r.mu.RUnlock()

	if exists {
		return viewer, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Повторная проверка: зритель мог появиться, пока лок был отпущен
	if viewer, exists := r.viewers[userID]; exists {
		return viewer, nil
	}
	viewer = entity.NewViewer(userID, chatID)
	r.viewers[userID] = viewer

	return viewer, nil
}

// Save сохраняет состояние зрителя
func (r *MemoryViewerRepository) Save(ctx context.Context, viewer *entity.Viewer) error {
	r.mu.Lock()
	r.viewers[viewer.ID] = viewer
	r.mu.Unlock()

	return nil
}

// Watching возвращает подписанных зрителей, упорядоченных по ID
func (r *MemoryViewerRepository) Watching(ctx context.Context) ([]*entity.Viewer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Viewer, 0, len(r.viewers))
	for _, v := range r.viewers {
		if v.Watching() {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

// Проверка реализации интерфейса
var _ port.ViewerRepository = (*MemoryViewerRepository)(nil)
