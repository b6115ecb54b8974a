package handler

import (
	"context"
	"strconv"
	"strings"

	"souschef/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Responder turns one inbound chat message into reply text
type Responder interface {
	Handle(ctx context.Context, msg domain.InboundMessage) string
}

// Handler adapts Telegram updates to the conversation router
type Handler struct {
	bot     *tele.Bot
	router  Responder
	logger  *zap.Logger
	botName string
}

// NewHandler creates a new handler instance
func NewHandler(bot *tele.Bot, router Responder, logger *zap.Logger) *Handler {
	h := &Handler{
		bot:    bot,
		router: router,
		logger: logger,
	}
	if bot != nil && bot.Me != nil {
		h.botName = bot.Me.Username
	}
	return h
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle(tele.OnText, h.handleText)
}

// handleStart opens a conversation with an empty utterance so the dialogue engine greets the user
func (h *Handler) handleStart(c tele.Context) error {
	h.logger.Info("User started bot",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("username", c.Sender().Username),
	)
	return h.respond(c, "")
}

// handleText forwards a lowercased text message to the router
func (h *Handler) handleText(c tele.Context) error {
	text := strings.ToLower(stripMention(cleanMessageText(c.Text()), h.botName))
	if text == "" {
		return nil
	}
	return h.respond(c, text)
}

func (h *Handler) respond(c tele.Context, text string) error {
	msg := domain.InboundMessage{
		Text:     text,
		SenderID: strconv.FormatInt(c.Sender().ID, 10),
	}
	if chat := c.Chat(); chat != nil {
		msg.ChannelID = strconv.FormatInt(chat.ID, 10)
	}

	reply := h.router.Handle(context.Background(), msg)
	if reply == "" {
		h.logger.Debug("Nothing to send", zap.String("user_id", msg.SenderID))
		return nil
	}
	return h.send(c, reply)
}

// send delivers text with Markdown formatting, falling back to plain text
// when Telegram rejects the markup
func (h *Handler) send(c tele.Context, text string) error {
	err := c.Send(text, tele.ModeMarkdown)
	if err == nil {
		return nil
	}

	h.logger.Warn("Failed to send Markdown reply, sending plain text",
		zap.Error(err),
		zap.Int64("user_id", c.Sender().ID),
	)
	if err := c.Send(text); err != nil {
		h.logger.Error("Failed to send reply", zap.Error(err), zap.Int64("user_id", c.Sender().ID))
		return err
	}
	return nil
}
