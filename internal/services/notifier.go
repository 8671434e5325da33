package services

import (
	"bytes"
	"context"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
)

// TelegramNotifier delivers lessons to a single chat. Text delivery is
// attempted with Markdown first and retried once as plain text, which
// handles the transport rejecting malformed markup without dropping the
// message. Photos are best-effort once the text is through.
type TelegramNotifier struct {
	bot       *bot.Bot
	chatID    int64
	plainOnly bool
	log       zerolog.Logger
}

func NewTelegramNotifier(b *bot.Bot, chatID int64, plainOnly bool, log zerolog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		bot:       b,
		chatID:    chatID,
		plainOnly: plainOnly,
		log:       log,
	}
}

// SendText sends a single text message, formatted as Markdown when
// requested.
func (n *TelegramNotifier) SendText(ctx context.Context, text string, formatted bool) error {
	params := &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   text,
	}
	if formatted {
		params.ParseMode = tgmodels.ParseModeMarkdown
	}
	_, err := n.bot.SendMessage(ctx, params)
	return err
}

// SendPhoto uploads image bytes to the chat.
func (n *TelegramNotifier) SendPhoto(ctx context.Context, image []byte) error {
	_, err := n.bot.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: n.chatID,
		Photo: &tgmodels.InputFileUpload{
			Filename: "diagram.png",
			Data:     bytes.NewReader(image),
		},
	})
	return err
}

// Send delivers the lesson text and, when present, the diagram image.
// It returns nil iff the text portion was delivered by either the
// formatted or the plain attempt.
func (n *TelegramNotifier) Send(ctx context.Context, text string, image []byte) error {
	if n.plainOnly {
		if err := n.SendText(ctx, text, false); err != nil {
			return err
		}
	} else if err := n.SendText(ctx, text, true); err != nil {
		n.log.Warn().
			Str("event", EventDeliveryFallback).
			Err(err).
			Msg("formatted send failed, retrying as plain text")
		if err := n.SendText(ctx, text, false); err != nil {
			return err
		}
	}

	if len(image) > 0 {
		if err := n.SendPhoto(ctx, image); err != nil {
			// Text already landed; a lost diagram does not fail the send.
			n.log.Warn().Err(err).Msg("diagram photo could not be delivered")
		}
	}
	return nil
}
