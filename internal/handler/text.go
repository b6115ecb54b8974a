package handler

import (
	"strings"
	"unicode"
)

// cleanMessageText turns line breaks and tabs into spaces, drops other
// non-printable characters and trims the result
func cleanMessageText(text string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		if unicode.IsSpace(r) {
			return ' '
		}
		return -1
	}, text))
}

// stripMention removes a leading @botname addressed to this bot in group chats
func stripMention(text, botName string) string {
	if botName == "" {
		return text
	}
	mention := "@" + botName
	if len(text) < len(mention) || !strings.EqualFold(text[:len(mention)], mention) {
		return text
	}
	rest := text[len(mention):]
	if rest != "" && rest[0] != ' ' {
		return text
	}
	return strings.TrimSpace(rest)
}
