package telegram

import (
	"testing"

	"github.com/stretchr/testify/require"

	app "vision-hud/internal/application"
	"vision-hud/internal/domain/entity"
	"vision-hud/internal/worker"
)

func TestFormatStatus_Disabled(t *testing.T) {
	text := formatStatus(app.HUDStatus{Ticks: 3, Errors: 1})

	require.Contains(t, text, "отключён")
	require.Contains(t, text, "Тиков: 3, ошибок: 1")
	require.NotContains(t, text, "Вершин")
}

func TestFormatStatus_WithWorker(t *testing.T) {
	text := formatStatus(app.HUDStatus{
		Enabled: true,
		Ticks:   10,
		Worker: &worker.Stats{
			StateName:      entity.WorkerRunning.String(),
			Width:          320,
			Height:         240,
			FramesReceived: 10,
			Passes:         7,
			VertexCount:    42,
		},
	})

	require.Contains(t, text, "включён")
	require.Contains(t, text, "Состояние: running")
	require.Contains(t, text, "Кадр: 320x240")
	require.Contains(t, text, "Вершин: 42")
}

func TestFormatDetect(t *testing.T) {
	buf := entity.NewVertexBuffer(4)
	buf.Push(entity.Vertex{X: 1, Y: 2})
	buf.Push(entity.Vertex{X: 3, Y: 4})

	text := formatDetect(&app.DetectOutput{Width: 64, Height: 48, Vertices: buf})
	require.Equal(t, "🔍 Найдено вершин: 2 (64x48)", text)
}
