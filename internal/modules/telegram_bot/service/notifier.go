package service

import (
	"context"
	"fmt"
	"time"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"pump_bot/internal/models"
	"pump_bot/pkg/logger"
)

// Notifier — узкая граница для пайплайна: текст или картинка с подписью.
// Доставку, ретраи и лимиты телеграма движок не знает.
type Notifier interface {
	Send(msg string)
	Sendf(format string, args ...any)
	SendPhoto(caption string, png []byte)
}

// Telegram — пассивный нотифайер + две команды: /ping и /status.
type Telegram struct {
	bot    *tgbot.BotAPI
	chatID int64
	status *models.ScannerStatus
}

func NewTelegram(token string, chatID int64, status *models.ScannerStatus) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{
		bot:    b,
		chatID: chatID,
		status: status,
	}, nil
}

func (t *Telegram) Send(msg string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	if _, err := t.bot.Send(tgbot.NewMessage(t.chatID, msg)); err != nil {
		logger.Error("telegram send: %v", err)
	}
}

func (t *Telegram) Sendf(format string, args ...any) { t.Send(fmt.Sprintf(format, args...)) }

// SendPhoto шлёт PNG с подписью; при ошибке откатываемся на текст.
func (t *Telegram) SendPhoto(caption string, png []byte) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	if len(png) == 0 {
		t.Send(caption)
		return
	}
	photo := tgbot.NewPhoto(t.chatID, tgbot.FileBytes{Name: "chart.png", Bytes: png})
	photo.Caption = caption
	if _, err := t.bot.Send(photo); err != nil {
		logger.Error("telegram photo: %v", err)
		t.Send(caption)
	}
}

// Start: long-polling только ради команд.
func (t *Telegram) Start(ctx context.Context) error {
	if t == nil || t.bot == nil {
		return nil
	}

	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message"}

	updates := t.bot.GetUpdatesChan(u)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case upd := <-updates:
				if upd.Message == nil || upd.Message.Chat == nil ||
					upd.Message.Chat.ID != t.chatID || !upd.Message.IsCommand() {
					continue
				}
				switch upd.Message.Command() {
				case "ping":
					t.Send("pong ✅")
				case "status":
					t.Send(t.statusText())
				}
			}
		}
	}()
	return nil
}

func (t *Telegram) Stop() {
	if t != nil && t.bot != nil {
		t.bot.StopReceivingUpdates()
	}
}

func (t *Telegram) statusText() string {
	universe, open, sent, lastTick := t.status.Snapshot()
	if lastTick.IsZero() {
		return "⏳ Сканер ещё не сделал ни одного тика"
	}
	return fmt.Sprintf(
		"📊 Статус сканера\nВселенная: %d символов\nОткрытых записей: %d\nСигналов отправлено: %d\nПоследний тик: %s",
		universe, open, sent, lastTick.Format(time.RFC3339),
	)
}
