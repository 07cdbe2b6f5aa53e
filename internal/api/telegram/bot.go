package telegram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "label-image-tool/internal/application"
	"label-image-tool/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я определяю, что изображено на фото.

📸 Отправьте фото, и я назову самый вероятный класс.
🗂 Или классифицируйте фото, уже загруженное в запись формы.

📋 Команды:
/label <ID записи> — классифицировать фото записи
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте фото — бот ответит меткой и вероятностью
2️⃣ Или отправьте /label и ID записи — результат сохранится в запись

📋 Команды:
/label <ID записи> — классифицировать фото записи
/cancel — отменить операцию`

	msgAwaitingRecord  = "🗂 Отправьте ID записи, фото которой нужно классифицировать."
	msgCancelled       = "❌ Операция отменена."
	msgSendPhoto       = "📸 Пожалуйста, отправьте фото или команду /label."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgProcessingError = "⚠️ Не удалось классифицировать изображение. Попробуйте другое фото."
	msgNoMatch         = "⚠️ Не удалось классифицировать фото записи %s."
	msgBestMatch       = "🏷 %s (%.2f%%)"
)

// Labeler то, что нужно боту от плагина
type Labeler interface {
	Run(ctx context.Context, inv entity.Invocation) entity.ClassificationResult
	ClassifyImage(ctx context.Context, image []byte) (entity.ClassificationResult, error)
}

// Bot представляет Telegram-бота
type Bot struct {
	api      *tgbotapi.BotAPI
	sessions *app.SessionService
	labeler  Labeler
	defaults func(recordID string) entity.Properties
	logger   *slog.Logger
}

// NewBot создаёт нового бота. defaults собирает свойства запуска для записи.
func NewBot(
	token string,
	sessions *app.SessionService,
	labeler Labeler,
	defaults func(recordID string) entity.Properties,
	logger *slog.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return newBot(api, sessions, labeler, defaults, logger), nil
}

func newBot(
	api *tgbotapi.BotAPI,
	sessions *app.SessionService,
	labeler Labeler,
	defaults func(recordID string) entity.Properties,
	logger *slog.Logger,
) *Bot {
	logger = logger.With("system", "telegram")
	logger.Info("authorized", "account", api.Self.UserName)

	return &Bot{
		api:      api,
		sessions: sessions,
		labeler:  labeler,
		defaults: defaults,
		logger:   logger,
	}
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
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
	session, err := b.sessions.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		b.logger.Error("get session", "error", err)
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}

	if session.State == entity.StateAwaitingRecord {
		b.labelRecord(ctx, msg, strings.TrimSpace(msg.Text))
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.setState(ctx, userID, chatID, entity.StateMainMenu)
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "label":
		if recordID := strings.TrimSpace(msg.CommandArguments()); recordID != "" {
			b.labelRecord(ctx, msg, recordID)
			return
		}
		if _, err := b.sessions.BeginLabel(ctx, userID, chatID); err != nil {
			b.logger.Error("begin label", "error", err)
		}
		b.sendMessage(chatID, msgAwaitingRecord)

	case "cancel":
		if _, err := b.sessions.Cancel(ctx, userID, chatID); err != nil {
			b.logger.Error("cancel", "error", err)
		}
		b.sendMessage(chatID, msgCancelled)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

// labelRecord запускает плагин для записи с настройками по умолчанию
func (b *Bot) labelRecord(ctx context.Context, msg *tgbotapi.Message, recordID string) {
	userID, chatID := msg.From.ID, msg.Chat.ID
	if recordID == "" {
		b.sendMessage(chatID, msgAwaitingRecord)
		return
	}

	b.setState(ctx, userID, chatID, entity.StateProcessing)
	b.sendMessage(chatID, msgProcessing)

	result := b.labeler.Run(ctx, entity.NewInvocation(b.defaults(recordID)))
	if result.IsFallback() {
		b.sendMessage(chatID, fmt.Sprintf(msgNoMatch, recordID))
	} else {
		b.sendMessage(chatID, fmt.Sprintf(msgBestMatch, result.Label, result.Probability))
	}

	b.setState(ctx, userID, chatID, entity.StateMainMenu)
}

// handlePhoto классифицирует фото напрямую, без записи
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID
	b.setState(ctx, userID, chatID, entity.StateProcessing)
	defer b.setState(ctx, userID, chatID, entity.StateMainMenu)

	b.sendMessage(chatID, msgProcessing)

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(ctx, photo.FileID)
	if err != nil {
		b.logger.Error("download photo", "error", err)
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	result, err := b.labeler.ClassifyImage(ctx, imageData)
	if err != nil {
		b.logger.Error("classify photo", "error", err, "bytes", len(imageData))
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	b.logger.Info(result.Summary(), "chat", chatID)
	b.sendMessage(chatID, fmt.Sprintf(msgBestMatch, result.Label, result.Probability))
}

func (b *Bot) setState(ctx context.Context, userID, chatID int64, state entity.SessionState) {
	if _, err := b.sessions.SetState(ctx, userID, chatID, state); err != nil {
		b.logger.Error("set session state", "error", err, "state", state)
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}

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
		b.logger.Error("send message", "error", err)
	}
}
