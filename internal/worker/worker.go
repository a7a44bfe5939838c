package worker

import (
	"fmt"
	"image/color"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"vision-hud/internal/domain/entity"
	"vision-hud/internal/domain/port"
	"vision-hud/internal/logger"
)

const (
	DefaultWarmup = 30 * time.Millisecond
	DefaultYield  = 10 * time.Millisecond
)

// Options настройки обработчика, общие для всех экземпляров слота
type Options struct {
	MaxVertices int           // ёмкость буфера вершин
	EdgeColor   color.Color   // цвет точек наложения
	Warmup      time.Duration // пауза перед первым проходом
	Yield       time.Duration // пауза между проходами
}

// DefaultOptions возвращает настройки по умолчанию
func DefaultOptions() Options {
	return Options{
		MaxVertices: 10000,
		EdgeColor:   color.RGBA{G: 255, A: 255},
		Warmup:      DefaultWarmup,
		Yield:       DefaultYield,
	}
}

// Stats снимок счётчиков обработчика
type Stats struct {
	State          entity.WorkerState `json:"-"`
	StateName      string             `json:"state"`
	Width          int                `json:"width"`
	Height         int                `json:"height"`
	FramesReceived uint64             `json:"frames_received"`
	Passes         uint64             `json:"passes"`
	Failures       uint64             `json:"failures"`
	VertexCount    int                `json:"vertex_count"`
}

// Worker выполняет алгоритм в отдельной горутине со своей частотой.
//
// Update вызывается из одной горутины потребителя (цикл отрисовки HUD):
// кадры передаются обработчику, а вершины обратно, через тройные буферы,
// поэтому ни одна сторона не ждёт другую и не видит недописанный буфер.
type Worker struct {
	width    int
	height   int
	originX  float64
	originY  float64
	surface  port.Surface
	opts     Options
	algo     port.Algorithm
	frames   *tripleBuffer[*entity.Frame]
	vertices *tripleBuffer[*entity.VertexBuffer]

	stop  atomic.Bool
	state atomic.Int32
	done  chan struct{}

	framesReceived atomic.Uint64
	passes         atomic.Uint64
	failures       atomic.Uint64
	vertexCount    atomic.Int64

	log *logrus.Entry
}

// newWorker создаёт обработчик, не запуская горутину
func newWorker(width, height int, surface port.Surface, originX, originY float64, algo port.Algorithm, opts Options) (*Worker, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("new worker %dx%d: %w", width, height, entity.ErrInvalidDimensions)
	}
	if algo == nil {
		return nil, fmt.Errorf("new worker: algorithm is not configured")
	}
	if opts.EdgeColor == nil {
		opts.EdgeColor = DefaultOptions().EdgeColor
	}

	w := &Worker{
		width:   width,
		height:  height,
		originX: originX,
		originY: originY,
		surface: surface,
		opts:    opts,
		algo:    algo,
		frames: newTripleBuffer(func() *entity.Frame {
			f, _ := entity.NewFrame(width, height)
			return f
		}),
		vertices: newTripleBuffer(func() *entity.VertexBuffer {
			return entity.NewVertexBuffer(opts.MaxVertices)
		}),
		done: make(chan struct{}),
		log: logger.WithFields(logrus.Fields{
			"component": "vision_worker",
			"width":     width,
			"height":    height,
		}),
	}
	w.state.Store(int32(entity.WorkerCreated))
	w.log.Debug("worker created")

	return w, nil
}

// start запускает горутину обработчика
func (w *Worker) start() {
	// Приоритет потока в Go не задаётся, горутину планирует рантайм
	go w.run()
}

// run основной цикл: пауза прогрева, затем проходы алгоритма до запроса остановки
func (w *Worker) run() {
	defer close(w.done)
	defer func() {
		w.state.Store(int32(entity.WorkerStopped))
		w.log.Info("worker stopped")
	}()

	time.Sleep(w.opts.Warmup)

	if w.state.CompareAndSwap(int32(entity.WorkerCreated), int32(entity.WorkerRunning)) {
		w.log.Info("worker running")
	}

	for !w.stop.Load() {
		w.step()
		time.Sleep(w.opts.Yield)
	}
}

// step выполняет один проход над последним кадром и публикует вершины
func (w *Worker) step() {
	frame := w.frames.Front()
	out := w.vertices.Back()

	if err := w.perform(frame, out); err != nil {
		out.Reset()
		w.failures.Add(1)
		w.log.WithError(err).Warn("pipeline pass failed")
	}

	w.vertexCount.Store(int64(out.Count()))
	w.passes.Add(1)
	w.vertices.Publish()
}

// perform вызывает алгоритм, превращая панику в ошибку прохода
func (w *Worker) perform(frame *entity.Frame, out *entity.VertexBuffer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pipeline panic: %v", r)
		}
	}()
	return w.algo.Perform(frame, out)
}

// Update копирует кадр в хранилище обработчика и рисует текущие вершины.
// Не ждёт обработчик: если новый проход ещё не завершён, рисуются старые вершины.
// При несовпадении размеров возвращает ошибку и не меняет хранилище.
func (w *Worker) Update(frame *entity.Frame) error {
	if err := w.frames.Back().CopyFrom(frame); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	w.frames.Publish()
	w.framesReceived.Add(1)

	w.draw()
	return nil
}

// draw рисует каждую вершину прямоугольником 1x1 со смещением HUD
func (w *Worker) draw() {
	vs := w.vertices.Front()
	if w.surface == nil {
		return
	}
	for _, v := range vs.Vertices() {
		w.surface.DrawRect(w.opts.EdgeColor, w.originX+float64(v.X), w.originY+float64(v.Y), 1, 1)
	}
}

// Stop запрашивает остановку и сразу возвращает управление
func (w *Worker) Stop() {
	if w.stop.CompareAndSwap(false, true) {
		w.state.CompareAndSwap(int32(entity.WorkerRunning), int32(entity.WorkerStopRequested))
		w.state.CompareAndSwap(int32(entity.WorkerCreated), int32(entity.WorkerStopRequested))
		w.log.Info("worker stop requested")
	}
}

// EnsureCompletion останавливает обработчик и ждёт завершения его горутины.
// Задержка не больше одного прохода и одной паузы между проходами.
func (w *Worker) EnsureCompletion() {
	w.Stop()
	<-w.done
}

// Done закрывается, когда горутина обработчика завершилась
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// State возвращает текущее состояние обработчика
func (w *Worker) State() entity.WorkerState {
	return entity.WorkerState(w.state.Load())
}

// Size возвращает размер кадров, которые принимает обработчик
func (w *Worker) Size() (width, height int) {
	return w.width, w.height
}

// Origin возвращает смещение наложения на HUD
func (w *Worker) Origin() (x, y float64) {
	return w.originX, w.originY
}

// VertexCount число вершин, найденных последним завершённым проходом
func (w *Worker) VertexCount() int {
	return int(w.vertexCount.Load())
}

// Stats возвращает снимок счётчиков; безопасен из любой горутины
func (w *Worker) Stats() Stats {
	state := w.State()
	return Stats{
		State:          state,
		StateName:      state.String(),
		Width:          w.width,
		Height:         w.height,
		FramesReceived: w.framesReceived.Load(),
		Passes:         w.passes.Load(),
		Failures:       w.failures.Load(),
		VertexCount:    w.VertexCount(),
	}
}
