package app

import (
	"context"

	"vision-hud/internal/domain/entity"
	"vision-hud/internal/domain/port"
)

type ViewerService struct {
	repo port.ViewerRepository
}

func NewViewerService(repo port.ViewerRepository) *ViewerService {
	return &ViewerService{repo: repo}
}

func (s *ViewerService) Get(ctx context.Context, userID, chatID int64) (*entity.Viewer, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *ViewerService) SetState(ctx context.Context, userID, chatID int64, state entity.ViewerState) (*entity.Viewer, error) {
	viewer, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	viewer.SetState(state)
	if err := s.repo.Save(ctx, viewer); err != nil {
		return nil, err
	}

	return viewer, nil
}

func (s *ViewerService) Watch(ctx context.Context, userID, chatID int64) (*entity.Viewer, error) {
	return s.SetState(ctx, userID, chatID, entity.StateWatching)
}

func (s *ViewerService) Unwatch(ctx context.Context, userID, chatID int64) (*entity.Viewer, error) {
	return s.SetState(ctx, userID, chatID, entity.StateIdle)
}

func (s *ViewerService) Watching(ctx context.Context) ([]*entity.Viewer, error) {
	return s.repo.Watching(ctx)
}
