package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	FrameWidth  int
	FrameHeight int

	LeftX       float64
	TopY        float64
	FPS         int
	BorderWidth float64
	BorderColor color.RGBA

	MaxVertices  int
	LowThreshold float64
	Ratio        float64
	KernelSize   int
	EdgeColor    color.RGBA
	Warmup       time.Duration
	Yield        time.Duration
	Threaded     bool

	FrameSource   string
	HTTPAddr      string
	TelegramToken string
	WatchInterval time.Duration
	LogLevel      string
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		FrameWidth:    320,
		FrameHeight:   240,
		LeftX:         45,
		TopY:          90,
		FPS:           30,
		BorderWidth:   2,
		BorderColor:   color.RGBA{R: 255, G: 255, A: 255},
		MaxVertices:   10000,
		LowThreshold:  50,
		Ratio:         3,
		KernelSize:    3,
		EdgeColor:     color.RGBA{G: 255, A: 255},
		Warmup:        30 * time.Millisecond,
		Yield:         10 * time.Millisecond,
		Threaded:      true,
		FrameSource:   "synthetic",
		HTTPAddr:      ":8080",
		WatchInterval: 30 * time.Second,
		LogLevel:      "info",
	}
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := Default()
	var errs []error
	read := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	read(intVar("FRAME_WIDTH", &cfg.FrameWidth))
	read(intVar("FRAME_HEIGHT", &cfg.FrameHeight))
	read(floatVar("HUD_LEFT_X", &cfg.LeftX))
	read(floatVar("HUD_TOP_Y", &cfg.TopY))
	read(intVar("HUD_FPS", &cfg.FPS))
	read(floatVar("HUD_BORDER_WIDTH", &cfg.BorderWidth))
	read(colorVar("HUD_BORDER_COLOR", &cfg.BorderColor))
	read(intVar("MAX_VERTICES", &cfg.MaxVertices))
	read(floatVar("LOW_THRESHOLD", &cfg.LowThreshold))
	read(floatVar("RATIO", &cfg.Ratio))
	read(intVar("KERNEL_SIZE", &cfg.KernelSize))
	read(colorVar("EDGE_COLOR", &cfg.EdgeColor))
	read(durationVar("VISION_WARMUP", &cfg.Warmup))
	read(durationVar("VISION_YIELD", &cfg.Yield))
	read(boolVar("VISION_THREADED", &cfg.Threaded))
	read(durationVar("WATCH_INTERVAL", &cfg.WatchInterval))

	stringVar("FRAME_SOURCE", &cfg.FrameSource)
	stringVar("TELEGRAM_TOKEN", &cfg.TelegramToken)
	stringVar("LOG_LEVEL", &cfg.LogLevel)
	if v, ok := os.LookupEnv("HTTP_ADDR"); ok {
		cfg.HTTPAddr = v
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность параметров
func (c *Config) Validate() error {
	switch {
	case c.FrameWidth <= 0 || c.FrameHeight <= 0:
		return fmt.Errorf("frame size must be positive, got %dx%d", c.FrameWidth, c.FrameHeight)
	case c.FPS <= 0:
		return fmt.Errorf("HUD_FPS must be positive, got %d", c.FPS)
	case c.BorderWidth < 0:
		return fmt.Errorf("HUD_BORDER_WIDTH must be non-negative, got %v", c.BorderWidth)
	case c.MaxVertices < 0:
		return fmt.Errorf("MAX_VERTICES must be non-negative, got %d", c.MaxVertices)
	case c.LowThreshold < 0:
		return fmt.Errorf("LOW_THRESHOLD must be non-negative, got %v", c.LowThreshold)
	case c.Ratio <= 0:
		return fmt.Errorf("RATIO must be positive, got %v", c.Ratio)
	case c.KernelSize != 3 && c.KernelSize != 5 && c.KernelSize != 7:
		return fmt.Errorf("KERNEL_SIZE must be 3, 5 or 7, got %d", c.KernelSize)
	case c.Warmup < 0 || c.Yield < 0:
		return errors.New("VISION_WARMUP and VISION_YIELD must be non-negative")
	case c.WatchInterval <= 0:
		return fmt.Errorf("WATCH_INTERVAL must be positive, got %v", c.WatchInterval)
	}
	return nil
}

// TickInterval период одного тика HUD
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// CanvasSize размер поверхности HUD: кадр со смещением и рамкой
func (c *Config) CanvasSize() (width, height int) {
	margin := 2 * c.BorderWidth
	return int(c.LeftX + float64(c.FrameWidth) + margin), int(c.TopY + float64(c.FrameHeight) + margin)
}

func stringVar(key string, dst *string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func intVar(key string, dst *int) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func floatVar(key string, dst *float64) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}

func boolVar(key string, dst *bool) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

func durationVar(key string, dst *time.Duration) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func colorVar(key string, dst *color.RGBA) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	c, err := ParseHexColor(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = c
	return nil
}

// ParseHexColor разбирает цвет вида #rrggbb или #rrggbbaa
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		n = n<<8 | 0xff
	}
	return color.RGBA{
		R: uint8(n >> 24),
		G: uint8(n >> 16),
		B: uint8(n >> 8),
		A: uint8(n),
	}, nil
}
