package port

import "vision-hud/internal/domain/entity"

// Algorithm интерфейс алгоритма машинного зрения
type Algorithm interface {
	// Perform обрабатывает один кадр и перезаписывает out результатом прохода
	Perform(frame *entity.Frame, out *entity.VertexBuffer) error
}
