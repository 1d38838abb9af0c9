package bot

import (
	tg "github.com/pagalworld/verifybot/core/telegram"
	"github.com/pagalworld/verifybot/core/telegram/commands"
	tghelpers "github.com/pagalworld/verifybot/core/telegram/helpers"
	"github.com/pagalworld/verifybot/core/telegram/keyboard"
	"github.com/pagalworld/verifybot/core/telegram/middleware"
	"github.com/pagalworld/verifybot/roster"

	tele "gopkg.in/telebot.v4"
)

// RegistryOptions scope the command registration.
type RegistryOptions struct {
	// VerificationGroupID restricts /verify to one group when non-zero.
	VerificationGroupID int64
}

// BuildRegistry registers every command with its chat scoping and gate
// metadata. Management commands answer in private chats only and stay
// out of the public command menu.
func BuildRegistry(h *Handlers, opts RegistryOptions) *tg.Registry {
	reg := tg.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.onStart,
		Description: "Start the bot and see your commands",
	})
	reg.RegisterCommand("/admins", commands.Command{
		Handler:     h.onAdmins,
		Description: "View all admins",
		PrivateOnly: true,
	})
	reg.RegisterCommand("/verify", commands.Command{
		Handler:     h.onVerify,
		Description: "Check a crypto address or UPI ID",
		GroupID:     opts.VerificationGroupID,
	})

	reg.RegisterCommand("/add_admin", commands.Command{
		Handler:        h.onAddAdmin,
		Description:    "Add a regular admin",
		PrivateOnly:    true,
		SuperAdminOnly: true,
	})
	reg.RegisterCommand("/remove_admin", commands.Command{
		Handler:        h.onRemoveAdmin,
		Description:    "Remove an admin",
		PrivateOnly:    true,
		SuperAdminOnly: true,
	})
	reg.RegisterCommand("/promote", commands.Command{
		Handler:        h.onPromote,
		Description:    "Promote an admin to super admin",
		PrivateOnly:    true,
		SuperAdminOnly: true,
	})
	reg.RegisterCommand("/demote", commands.Command{
		Handler:        h.onDemote,
		Description:    "Demote a super admin",
		PrivateOnly:    true,
		SuperAdminOnly: true,
	})
	reg.RegisterCommand("/setadmin_crypto", commands.Command{
		Handler:        h.onSetCrypto,
		Description:    "Set an admin's crypto address",
		PrivateOnly:    true,
		SuperAdminOnly: true,
	})
	reg.RegisterCommand("/setadmin_upi", commands.Command{
		Handler:        h.onSetUPI,
		Description:    "Set an admin's UPI ID",
		PrivateOnly:    true,
		SuperAdminOnly: true,
	})

	return reg
}

// Gate builds the super-admin gate shared by the management commands.
func (h *Handlers) Gate() middleware.GateOptions {
	return middleware.GateOptions{
		Check: h.IsSuperAdmin,
		OnReject: func(c tele.Context) error {
			return sendReply(c, Reply{Kind: ReplyAccessDenied, Text: accessDeniedText})
		},
		OnError: func(c tele.Context) error {
			return sendReply(c, Reply{Kind: ReplyFailure, Text: genericErrorText})
		},
	}
}

func (h *Handlers) onStart(c tele.Context) error {
	chat := c.Chat()
	if chat != nil && chat.Type == tele.ChatPrivate {
		user := c.Sender()
		if user == nil {
			return nil
		}
		ctx := tghelpers.BuildContext(c)
		return sendReply(c, h.StartPrivate(ctx, user.ID, user.Username))
	}
	return sendReply(c, h.StartGroup())
}

func (h *Handlers) onAdmins(c tele.Context) error {
	return sendReply(c, h.Admins(tghelpers.BuildContext(c)))
}

func (h *Handlers) onVerify(c tele.Context) error {
	return sendReply(c, h.Verify(tghelpers.BuildContext(c), c.Args()))
}

func (h *Handlers) onAddAdmin(c tele.Context) error {
	return sendReply(c, h.AddAdmin(tghelpers.BuildContext(c), c.Args()))
}

func (h *Handlers) onRemoveAdmin(c tele.Context) error {
	return sendReply(c, h.RemoveAdmin(tghelpers.BuildContext(c), c.Args()))
}

func (h *Handlers) onPromote(c tele.Context) error {
	return sendReply(c, h.Promote(tghelpers.BuildContext(c), c.Args()))
}

func (h *Handlers) onDemote(c tele.Context) error {
	return sendReply(c, h.Demote(tghelpers.BuildContext(c), c.Args()))
}

func (h *Handlers) onSetCrypto(c tele.Context) error {
	return sendReply(c, h.SetPayment(tghelpers.BuildContext(c), roster.MethodCrypto, c.Args()))
}

func (h *Handlers) onSetUPI(c tele.Context) error {
	return sendReply(c, h.SetPayment(tghelpers.BuildContext(c), roster.MethodUPI, c.Args()))
}

func sendReply(c tele.Context, reply Reply) error {
	if reply.Text == "" {
		return nil
	}
	if reply.JoinURL != "" {
		return tghelpers.SendHTML(c, reply.Text, keyboard.SingleURLMarkup(joinButtonText, reply.JoinURL))
	}
	return tghelpers.SendHTML(c, reply.Text)
}
