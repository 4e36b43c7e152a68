// Package telegram delivers formatted posts to the configured channel.
package telegram

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"hotnews/internal/service"
)

// Client implements service.Sender on top of the Bot API.
type Client struct {
	bot       *tgbotapi.BotAPI
	channelID int64
}

func NewClient(token string, channelID int64) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	log.Printf("[Telegram] authorized as @%s", bot.Self.UserName)
	return &Client{bot: bot, channelID: channelID}, nil
}

func (c *Client) SendMessage(ctx context.Context, text string, buttons []service.Button) (int, error) {
	msg := tgbotapi.NewMessage(c.channelID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if kb := keyboard(buttons); kb != nil {
		msg.ReplyMarkup = kb
	}

	sent, err := c.bot.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

func (c *Client) SendPhoto(ctx context.Context, photoURL, caption string, buttons []service.Button) (int, error) {
	msg := tgbotapi.NewPhoto(c.channelID, tgbotapi.FileURL(photoURL))
	msg.Caption = caption
	msg.ParseMode = tgbotapi.ModeHTML
	if kb := keyboard(buttons); kb != nil {
		msg.ReplyMarkup = kb
	}

	sent, err := c.bot.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

func (c *Client) SendDigest(ctx context.Context, text string) (int, error) {
	return c.SendMessage(ctx, text, nil)
}

// keyboard converts the declarative button list into an inline keyboard:
// one row for link buttons, one row for callback buttons.
func keyboard(buttons []service.Button) *tgbotapi.InlineKeyboardMarkup {
	if len(buttons) == 0 {
		return nil
	}

	var linkRow, actionRow []tgbotapi.InlineKeyboardButton
	for _, b := range buttons {
		if b.URL != "" {
			linkRow = append(linkRow, tgbotapi.NewInlineKeyboardButtonURL(b.Label, b.URL))
		} else {
			actionRow = append(actionRow, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Action))
		}
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	if len(linkRow) > 0 {
		rows = append(rows, linkRow)
	}
	if len(actionRow) > 0 {
		rows = append(rows, actionRow)
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}
