package entity

// ViewerState состояние зрителя в отладочном боте
type ViewerState string

const (
	StateIdle     ViewerState = "idle"     // Получает снимки только по запросу
	StateWatching ViewerState = "watching" // Получает снимки HUD периодически
)

// Viewer представляет пользователя отладочного бота
type Viewer struct {
	ID     int64       // Telegram User ID
	ChatID int64       // Telegram Chat ID
	State  ViewerState // Текущее состояние
}

// NewViewer создаёт зрителя с начальным состоянием
func NewViewer(userID, chatID int64) *Viewer {
	return &Viewer{
		ID:     userID,
		ChatID: chatID,
		State:  StateIdle,
	}
}

// SetState обновляет состояние зрителя
func (v *Viewer) SetState(state ViewerState) {
	v.State = state
}

// Watching сообщает, подписан ли зритель на периодические снимки
func (v *Viewer) Watching() bool {
	return v.State == StateWatching
}
