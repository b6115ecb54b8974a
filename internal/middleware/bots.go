package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// IgnoreBots drops updates that have no human sender, including messages
// written by bots and the bot's own echoes
func IgnoreBots(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				logger.Debug("Dropping update without sender")
				return nil
			}
			if sender.IsBot {
				logger.Debug("Dropping bot message", zap.Int64("sender_id", sender.ID))
				return nil
			}
			return next(c)
		}
	}
}
