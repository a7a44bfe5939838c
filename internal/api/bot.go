package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "vision-hud/internal/application"
	"vision-hud/internal/container"
	"vision-hud/internal/domain/entity"
	"vision-hud/internal/logger"
)

const (
	msgStart = `👋 Привет! Я показываю, что видит обработчик границ HUD.

📋 Команды:
/status — состояние обработчика
/snapshot — снимок HUD с наложением
/watch — присылать снимки периодически
/unwatch — перестать присылать снимки
/help — справка

📸 Отправьте фото, и я подсвечу на нём найденные границы.`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ /snapshot — текущий кадр HUD с рамкой и вершинами
2️⃣ /status — счётчики обработчика
3️⃣ Фото — разовая детекция границ на вашем изображении

📋 Команды:
/watch — подписаться на снимки
/unwatch — отписаться`

	msgWatching       = "👀 Буду присылать снимки HUD каждые %s. /unwatch — отписаться."
	msgUnwatched      = "🛑 Подписка на снимки отключена."
	msgSendPhoto      = "📸 Отправьте фото или используйте /help для справки."
	msgUnknownCommand = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing     = "⏳ Обрабатываю изображение..."
	msgNoEdges        = "✅ Границы не обнаружены."
	msgDetectError    = "⚠️ Не удалось обработать изображение. Попробуйте другое фото."
	msgSnapshotError  = "⚠️ Не удалось получить снимок HUD."
	msgInternalError  = "⚠️ Внутренняя ошибка, попробуйте позже."
)

// Bot представляет Telegram-бота для удалённой отладки HUD
type Bot struct {
	api      *tgbotapi.BotAPI
	hud      *app.HUDService
	detect   *app.DetectService
	viewers  *app.ViewerService
	interval time.Duration
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container, watchInterval time.Duration) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	logger.WithField("account", api.Self.UserName).Info("telegram bot authorized")

	return &Bot{
		api:      api,
		hud:      c.HUDService,
		detect:   c.DetectService,
		viewers:  c.ViewerService,
		interval: watchInterval,
	}, nil
}

// Run обрабатывает сообщения и рассылает снимки подписчикам до отмены контекста
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	var tick <-chan time.Time
	if b.interval > 0 {
		ticker := time.NewTicker(b.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			b.broadcastSnapshot(ctx)
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		if _, err := b.viewers.SetState(ctx, msg.From.ID, msg.Chat.ID, entity.StateIdle); err != nil {
			b.fail(msg.Chat.ID, err)
			return
		}
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "status":
		b.sendMessage(msg.Chat.ID, formatStatus(b.hud.Status()))

	case "snapshot":
		b.sendSnapshot(msg.Chat.ID)

	case "watch":
		if _, err := b.viewers.Watch(ctx, msg.From.ID, msg.Chat.ID); err != nil {
			b.fail(msg.Chat.ID, err)
			return
		}
		b.sendMessage(msg.Chat.ID, fmt.Sprintf(msgWatching, b.interval))

	case "unwatch":
		if _, err := b.viewers.Unwatch(ctx, msg.From.ID, msg.Chat.ID); err != nil {
			b.fail(msg.Chat.ID, err)
			return
		}
		b.sendMessage(msg.Chat.ID, msgUnwatched)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handlePhoto запускает разовую детекцию на присланном фото
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	b.sendMessage(msg.Chat.ID, msgProcessing)

	// Файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(photo.FileID)
	if err != nil {
		logger.WithError(err).Error("download photo")
		b.sendMessage(msg.Chat.ID, msgDetectError)
		return
	}

	result, err := b.detect.DetectImage(ctx, imageData)
	if err != nil {
		logger.WithError(err).Error("detect edges")
		b.sendMessage(msg.Chat.ID, msgDetectError)
		return
	}

	if result.Vertices.Count() == 0 || len(result.Highlighted) == 0 {
		b.sendMessage(msg.Chat.ID, msgNoEdges)
		return
	}

	b.sendPhoto(msg.Chat.ID, result.Highlighted, formatDetect(result))
}

// broadcastSnapshot отправляет снимок HUD всем подписчикам
func (b *Bot) broadcastSnapshot(ctx context.Context) {
	viewers, err := b.viewers.Watching(ctx)
	if err != nil {
		logger.WithError(err).Error("list watching viewers")
		return
	}
	if len(viewers) == 0 {
		return
	}

	data, err := b.hud.SnapshotPNG()
	if err != nil {
		logger.WithError(err).Error("encode snapshot")
		return
	}

	caption := formatStatus(b.hud.Status())
	for _, v := range viewers {
		b.sendPhoto(v.ChatID, data, caption)
	}
}

func (b *Bot) sendSnapshot(chatID int64) {
	data, err := b.hud.SnapshotPNG()
	if err != nil {
		logger.WithError(err).Error("encode snapshot")
		b.sendMessage(chatID, msgSnapshotError)
		return
	}
	b.sendPhoto(chatID, data, formatStatus(b.hud.Status()))
}

func (b *Bot) fail(chatID int64, err error) {
	logger.WithError(err).Error("viewer repository")
	b.sendMessage(chatID, msgInternalError)
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		logger.WithError(err).WithField("chat_id", chatID).Error("send message")
	}
}

// sendPhoto отправляет PNG с подписью
func (b *Bot) sendPhoto(chatID int64, data []byte, caption string) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "hud.png", Bytes: data})
	photo.Caption = caption
	if _, err := b.api.Send(photo); err != nil {
		logger.WithError(err).WithField("chat_id", chatID).Error("send photo")
	}
}

// formatStatus текстовое представление состояния HUD
func formatStatus(st app.HUDStatus) string {
	var sb strings.Builder
	if st.Enabled {
		sb.WriteString("🟢 Обработчик включён\n")
	} else {
		sb.WriteString("⚪ Обработчик отключён\n")
	}
	fmt.Fprintf(&sb, "Тиков: %d, ошибок: %d", st.Ticks, st.Errors)

	if w := st.Worker; w != nil {
		fmt.Fprintf(&sb, "\nСостояние: %s\nКадр: %dx%d\nКадров: %d, проходов: %d, сбоев: %d\nВершин: %d",
			w.StateName, w.Width, w.Height, w.FramesReceived, w.Passes, w.Failures, w.VertexCount)
	}
	return sb.String()
}

// formatDetect подпись к результату разовой детекции
func formatDetect(out *app.DetectOutput) string {
	return fmt.Sprintf("🔍 Найдено вершин: %d (%dx%d)", out.Vertices.Count(), out.Width, out.Height)
}
