package vision

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"vision-hud/internal/domain/entity"
)

func newDetector(t *testing.T) *EdgeDetector {
	t.Helper()
	d, err := NewEdgeDetector(DefaultParams())
	require.NoError(t, err)
	return d
}

func blackFrame(t *testing.T, w, h int) *entity.Frame {
	t.Helper()
	f, err := entity.NewFrame(w, h)
	require.NoError(t, err)
	return f
}

// verticalLineFrame чёрный кадр с белой вертикальной линией толщиной 1 пиксель
func verticalLineFrame(t *testing.T, w, h, x int) *entity.Frame {
	t.Helper()
	f := blackFrame(t, w, h)
	for y := 0; y < h; y++ {
		f.SetBGR(x, y, 255, 255, 255)
	}
	return f
}

// checkerFrame шахматная доска с клетками cell x cell
func checkerFrame(t *testing.T, w, h, cell int) *entity.Frame {
	t.Helper()
	f := blackFrame(t, w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/cell+y/cell)%2 == 0 {
				f.SetBGR(x, y, 255, 255, 255)
			}
		}
	}
	return f
}

func TestEdgeDetector_BlackFrameHasNoVertices(t *testing.T) {
	d := newDetector(t)
	out := entity.NewVertexBuffer(1000)

	require.NoError(t, d.Perform(blackFrame(t, 64, 64), out))
	require.Equal(t, 0, out.Count())
}

func TestEdgeDetector_UniformFrameHasNoVertices(t *testing.T) {
	d := newDetector(t)
	out := entity.NewVertexBuffer(1000)
	f := blackFrame(t, 64, 64)
	f.Fill(color.RGBA{R: 120, G: 80, B: 200, A: 255})

	require.NoError(t, d.Perform(f, out))
	require.Equal(t, 0, out.Count())
}

func TestEdgeDetector_VerticalLine(t *testing.T) {
	d := newDetector(t)
	out := entity.NewVertexBuffer(1000)

	require.NoError(t, d.Perform(verticalLineFrame(t, 64, 64, 32), out))
	require.Greater(t, out.Count(), 0)
	require.LessOrEqual(t, out.Count(), 128)

	for _, v := range out.Vertices() {
		require.InDelta(t, 32, v.X, 3)
		require.True(t, v.Y >= 0 && v.Y < 64)
	}
}

func TestEdgeDetector_RowMajorOrder(t *testing.T) {
	d := newDetector(t)
	out := entity.NewVertexBuffer(128 * 128)

	require.NoError(t, d.Perform(checkerFrame(t, 128, 128, 4), out))
	vs := out.Vertices()
	require.NotEmpty(t, vs)
	for i := 1; i < len(vs); i++ {
		prev, cur := vs[i-1], vs[i]
		require.True(t, prev.Y < cur.Y || (prev.Y == cur.Y && prev.X < cur.X),
			"vertex %d %v is not after %v", i, cur, prev)
	}
}

func TestEdgeDetector_TruncatesToCapacityInScanOrder(t *testing.T) {
	d := newDetector(t)
	frame := checkerFrame(t, 128, 128, 4)

	all := entity.NewVertexBuffer(128 * 128)
	require.NoError(t, d.Perform(frame, all))
	require.GreaterOrEqual(t, all.Count(), 1000)

	capped := entity.NewVertexBuffer(5)
	require.NoError(t, d.Perform(frame, capped))
	require.Equal(t, 5, capped.Count())
	require.Equal(t, all.Vertices()[:5], capped.Vertices())
}

func TestEdgeDetector_Idempotent(t *testing.T) {
	d := newDetector(t)
	frame := checkerFrame(t, 64, 64, 8)

	first := entity.NewVertexBuffer(2000)
	second := entity.NewVertexBuffer(2000)
	require.NoError(t, d.Perform(frame, first))
	require.NoError(t, d.Perform(frame, second))
	require.Equal(t, first.Vertices(), second.Vertices())

	// Повторный проход в тот же буфер даёт тот же результат
	require.NoError(t, d.Perform(frame, first))
	require.Equal(t, second.Vertices(), first.Vertices())
}

func TestEdgeDetector_OverwritesPreviousResult(t *testing.T) {
	d := newDetector(t)
	out := entity.NewVertexBuffer(1000)

	require.NoError(t, d.Perform(verticalLineFrame(t, 64, 64, 10), out))
	require.Greater(t, out.Count(), 0)

	require.NoError(t, d.Perform(blackFrame(t, 64, 64), out))
	require.Equal(t, 0, out.Count())
}

func TestEdgeDetector_DegenerateInput(t *testing.T) {
	d := newDetector(t)
	out := entity.NewVertexBuffer(10)
	out.Push(entity.Vertex{X: 1, Y: 1})

	require.Error(t, d.Perform(nil, out))
	require.Equal(t, 0, out.Count())

	broken := &entity.Frame{Width: 4, Height: 4, Pix: make([]uint8, 7)}
	require.Error(t, d.Perform(broken, out))
	require.Equal(t, 0, out.Count())

	require.ErrorIs(t, d.Perform(&entity.Frame{}, out), entity.ErrInvalidDimensions)
}

func TestNewEdgeDetector_Validation(t *testing.T) {
	cases := map[string]Params{
		"negative low":  {LowThreshold: -1, Ratio: 3, KernelSize: 3},
		"zero ratio":    {LowThreshold: 50, Ratio: 0, KernelSize: 3},
		"even aperture": {LowThreshold: 50, Ratio: 3, KernelSize: 4},
		"huge aperture": {LowThreshold: 50, Ratio: 3, KernelSize: 9},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewEdgeDetector(p)
			require.Error(t, err)
		})
	}

	d, err := NewEdgeDetector(Params{LowThreshold: 10, Ratio: 2.5, KernelSize: 5})
	require.NoError(t, err)
	require.Equal(t, 25.0, d.Params().HighThreshold())
}
