package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/semmidev/bucketsync/internal/config"
	"github.com/semmidev/bucketsync/internal/domain"
)

// Telegram delivers notifications as plain-text messages to one chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(cfg config.TelegramConfig) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	var chatID int64
	if _, err := fmt.Sscanf(cfg.ChatID, "%d", &chatID); err != nil {
		return nil, fmt.Errorf("invalid chat_id %q: %w", cfg.ChatID, err)
	}

	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) Notify(ctx context.Context, n domain.Notification) error {
	msg := tgbotapi.NewMessage(t.chatID, formatNotification(n))
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

func formatNotification(n domain.Notification) string {
	icon := "✅"
	if n.Severity == domain.SeverityDanger {
		icon = "❌"
	}
	return fmt.Sprintf("%s %s\n\n%s", icon, n.Title, n.Message)
}
