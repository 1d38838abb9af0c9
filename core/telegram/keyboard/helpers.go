package keyboard

import tele "gopkg.in/telebot.v4"

// URLBtn describes a convenience wrapper for inline URL button properties.
type URLBtn struct {
	Text string
	URL  string
}

// RemoveKeyboard returns a markup that hides the keyboard.
func RemoveKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}

// InlineURLButtons builds an inline keyboard where each provided URL button is placed on its own row.
func InlineURLButtons(buttons ...URLBtn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := make([][]tele.InlineButton, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, []tele.InlineButton{{Text: b.Text, URL: b.URL}})
	}
	markup.InlineKeyboard = rows
	return markup
}

// SingleURLMarkup creates an inline keyboard with a single URL button.
func SingleURLMarkup(text, url string) *tele.ReplyMarkup {
	return InlineURLButtons(URLBtn{Text: text, URL: url})
}
