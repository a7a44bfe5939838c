package config

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 320, cfg.FrameWidth)
	require.Equal(t, 3, cfg.KernelSize)
	require.Equal(t, 30*time.Millisecond, cfg.Warmup)
	require.Equal(t, 10*time.Millisecond, cfg.Yield)
	require.True(t, cfg.Threaded)
	require.Equal(t, "synthetic", cfg.FrameSource)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("FRAME_WIDTH", "64")
	t.Setenv("FRAME_HEIGHT", "48")
	t.Setenv("MAX_VERTICES", "5")
	t.Setenv("LOW_THRESHOLD", "20")
	t.Setenv("RATIO", "2.5")
	t.Setenv("KERNEL_SIZE", "5")
	t.Setenv("EDGE_COLOR", "#ff000080")
	t.Setenv("VISION_WARMUP", "1ms")
	t.Setenv("VISION_THREADED", "false")
	t.Setenv("HTTP_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 64, cfg.FrameWidth)
	require.Equal(t, 48, cfg.FrameHeight)
	require.Equal(t, 5, cfg.MaxVertices)
	require.Equal(t, 20.0, cfg.LowThreshold)
	require.Equal(t, 2.5, cfg.Ratio)
	require.Equal(t, 5, cfg.KernelSize)
	require.Equal(t, color.RGBA{R: 255, A: 128}, cfg.EdgeColor)
	require.Equal(t, time.Millisecond, cfg.Warmup)
	require.False(t, cfg.Threaded)
	require.Empty(t, cfg.HTTPAddr)
}

func TestLoad_RejectsMalformedValues(t *testing.T) {
	t.Setenv("FRAME_WIDTH", "wide")
	t.Setenv("EDGE_COLOR", "green")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "FRAME_WIDTH")
	require.Contains(t, err.Error(), "EDGE_COLOR")
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"zero width":     func(c *Config) { c.FrameWidth = 0 },
		"zero fps":       func(c *Config) { c.FPS = 0 },
		"negative max":   func(c *Config) { c.MaxVertices = -1 },
		"zero ratio":     func(c *Config) { c.Ratio = 0 },
		"bad kernel":     func(c *Config) { c.KernelSize = 4 },
		"negative yield": func(c *Config) { c.Yield = -time.Second },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
	require.NoError(t, Default().Validate())
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#00ff00")
	require.NoError(t, err)
	require.Equal(t, color.RGBA{G: 255, A: 255}, c)

	_, err = ParseHexColor("#0f0")
	require.Error(t, err)
}

func TestDerivedSizes(t *testing.T) {
	cfg := Default()
	require.Equal(t, time.Second/30, cfg.TickInterval())

	w, h := cfg.CanvasSize()
	require.Equal(t, 45+320+4, w)
	require.Equal(t, 90+240+4, h)
}
