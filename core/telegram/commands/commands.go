package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command represents a bot command with its handler, description, and metadata.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	// SuperAdminOnly commands are gated on the caller's roster role.
	SuperAdminOnly bool
	// PrivateOnly commands are ignored outside private chats.
	PrivateOnly bool
	// GroupID restricts the command to a single group chat when non-zero.
	GroupID int64
	Hidden  bool
	Aliases []string
}
