package entity

import "errors"

var (
	// ErrInvalidDimensions ширина или высота кадра не положительные
	ErrInvalidDimensions = errors.New("frame dimensions must be positive")

	// ErrFrameSizeMismatch размер кадра не совпадает с размером хранилища
	ErrFrameSizeMismatch = errors.New("frame size does not match frame store")

	// ErrVisionDisabled платформа не поддерживает фоновую обработку
	ErrVisionDisabled = errors.New("vision overlay is disabled on this platform")
)
