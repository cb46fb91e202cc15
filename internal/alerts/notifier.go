package alerts

import (
	"context"
	"fmt"

	"github.com/contract-ledger/backend/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// Notifier is informed about every alert the scanner creates.
type Notifier interface {
	Notify(ctx context.Context, contract models.Contract, alert models.Alert) error
}

// LogNotifier writes alerts to the log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, contract models.Contract, alert models.Alert) error {
	log.Info().
		Uint("contract", contract.ID).
		Str("number", contract.Number).
		Str("kind", string(alert.Kind)).
		Msg(alert.Message)

	return nil
}

// TelegramNotifier sends alerts to a telegram chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier connects to the telegram bot API with the token.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	return NewTelegramNotifierWithEndpoint(token, tgbotapi.APIEndpoint, chatID)
}

// NewTelegramNotifierWithEndpoint connects to a telegram bot API at a
// custom endpoint. The endpoint is a format string taking the token and
// the method, see tgbotapi.APIEndpoint.
func NewTelegramNotifierWithEndpoint(token, endpoint string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("could not connect to telegram: %w", err)
	}

	log.Info().Str("bot", bot.Self.UserName).Int64("chat", chatID).Msg("Telegram notifier")
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *TelegramNotifier) Notify(_ context.Context, contract models.Contract, alert models.Alert) error {
	msg := tgbotapi.NewMessage(n.chatID, fmt.Sprintf("[%s] %s", contract.Number, alert.Message))

	_, err := n.bot.Send(msg)
	return err
}
