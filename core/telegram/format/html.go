package format

import "html"

// EscapeHTML escapes user-supplied text for safe interpolation into HTML messages.
func EscapeHTML(text string) string {
	return html.EscapeString(text)
}

// Bold wraps escaped text in bold tags.
func Bold(text string) string {
	return "<b>" + EscapeHTML(text) + "</b>"
}

// Code wraps escaped text in an inline code block.
func Code(text string) string {
	return "<code>" + EscapeHTML(text) + "</code>"
}
