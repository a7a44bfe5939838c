package entity

// WorkerState состояние фонового обработчика
type WorkerState int32

const (
	WorkerCreated       WorkerState = iota // Создан, горутина ещё не вошла в цикл
	WorkerRunning                          // Выполняет проходы алгоритма
	WorkerStopRequested                    // Получен запрос на остановку
	WorkerStopped                          // Горутина завершилась
)

func (s WorkerState) String() string {
	switch s {
	case WorkerCreated:
		return "created"
	case WorkerRunning:
		return "running"
	case WorkerStopRequested:
		return "stop_requested"
	case WorkerStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
