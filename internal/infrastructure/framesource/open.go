package framesource

import (
	"fmt"
	"strconv"
	"strings"

	"vision-hud/internal/domain/port"
)

const (
	KindSynthetic = "synthetic"
	cameraPrefix  = "camera:"
)

// Open создаёт источник по строке конфигурации:
// "synthetic", "camera:<индекс>" или путь к файлу изображения
func Open(source string, width, height int) (port.FrameSource, error) {
	switch {
	case source == "" || source == KindSynthetic:
		return NewSyntheticSource(width, height)
	case strings.HasPrefix(source, cameraPrefix):
		device, err := strconv.Atoi(strings.TrimPrefix(source, cameraPrefix))
		if err != nil {
			return nil, fmt.Errorf("invalid camera index in %q: %w", source, err)
		}
		return NewCameraSource(device, width, height)
	default:
		return NewImageSource(source, width, height)
	}
}
