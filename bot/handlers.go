package bot

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pagalworld/verifybot/core/logger"
	"github.com/pagalworld/verifybot/roster"
)

// Options carry the deployment identity the handlers need.
type Options struct {
	// OwnerID is the account protected from removal and demotion.
	OwnerID int64
	// MainGroupLink is offered to unrecognized users on /start.
	MainGroupLink string
}

// Handlers hold the command logic. Every method returns a Reply that the
// adapter renders; store failures are logged here and surface as a
// generic failure reply, never as an unhandled error.
type Handlers struct {
	store roster.Store
	opts  Options
}

// NewHandlers builds the command handlers on top of a roster store.
func NewHandlers(store roster.Store, opts Options) *Handlers {
	return &Handlers{store: store, opts: opts}
}

// StartPrivate answers /start in a private chat. An unlinked roster row
// matching the caller's handle is linked first and short-circuits into
// the activation message; otherwise the caller gets the menu matching
// their role, or the public welcome.
func (h *Handlers) StartPrivate(ctx context.Context, userID int64, username string) Reply {
	if username != "" {
		unlinked, err := h.store.FindUnlinkedByUsername(ctx, username)
		if err != nil {
			return h.fail(ctx, "start.link_lookup", err, genericErrorText)
		}
		if unlinked != nil {
			if err := h.store.LinkUserID(ctx, unlinked.ID, userID); err != nil {
				return h.fail(ctx, "start.link", err, genericErrorText)
			}
			logger.LogEvent(ctx, logger.SVCRoster, slog.LevelInfo, "account.linked",
				slog.Int64("admin_id", unlinked.ID),
				slog.Int64("user_id", userID),
				slog.String("username", username),
			)
			return Reply{Kind: ReplyOK, Text: activatedText(username)}
		}
	}

	admin, err := h.store.FindByUserID(ctx, userID)
	if err != nil {
		return h.fail(ctx, "start.lookup", err, genericErrorText)
	}
	if admin != nil {
		if admin.IsSuperAdmin {
			return Reply{Kind: ReplyOK, Text: superAdminMenuText}
		}
		return Reply{Kind: ReplyOK, Text: adminMenuText}
	}
	return Reply{Kind: ReplyOK, Text: publicWelcomeText, JoinURL: h.opts.MainGroupLink}
}

// StartGroup answers /start in a group chat without touching the store.
func (h *Handlers) StartGroup() Reply {
	return Reply{Kind: ReplyOK, Text: groupStartText}
}

// Admins lists the whole roster with role, link status, and payment icons.
func (h *Handlers) Admins(ctx context.Context) Reply {
	admins, err := h.store.ListAll(ctx)
	if err != nil {
		return h.fail(ctx, "admins.list", err, "⚙️ An error occurred while fetching the admin list.")
	}
	if len(admins) == 0 {
		return Reply{Kind: ReplyOK, Text: noAdminsText}
	}
	return Reply{Kind: ReplyOK, Text: adminListText(admins)}
}

// Verify checks a payment identifier against the roster. Arguments are
// joined with single spaces before matching.
func (h *Handlers) Verify(ctx context.Context, args []string) Reply {
	if len(args) == 0 {
		return Reply{Kind: ReplyUsage, Text: verifyUsageText}
	}
	value := strings.Join(args, " ")

	admin, err := h.store.FindByPaymentID(ctx, value)
	if err != nil {
		return h.fail(ctx, "verify.lookup", err, "⚙️ An error occurred during verification. Please try again.")
	}
	if admin == nil {
		return Reply{Kind: ReplyNotFound, Text: unverifiedText(value)}
	}
	logger.LogEvent(ctx, logger.SVCRoster, slog.LevelInfo, "payment.verified",
		slog.Int64("admin_id", admin.ID),
		slog.String("username", admin.Username),
	)
	return Reply{Kind: ReplyOK, Text: verifiedText(value, admin)}
}

// AddAdmin registers a new regular admin by handle. The unique index on
// username decides conflicts, not a prior lookup.
func (h *Handlers) AddAdmin(ctx context.Context, args []string) Reply {
	if len(args) == 0 {
		return Reply{Kind: ReplyUsage, Text: usageText("/add_admin", "@username")}
	}
	username := stripHandle(args[0])

	admin, err := h.store.Create(ctx, username)
	if err != nil {
		if err == roster.ErrDuplicateUsername {
			return Reply{Kind: ReplyConflict, Text: alreadyExistsText(username)}
		}
		return h.fail(ctx, "add_admin.create", err, "⚙️ An error occurred while adding the admin.")
	}
	logger.LogEvent(ctx, logger.SVCRoster, slog.LevelInfo, "admin.added",
		slog.Int64("admin_id", admin.ID),
		slog.String("username", username),
	)
	return Reply{Kind: ReplyOK, Text: adminAddedText(username)}
}

// RemoveAdmin deletes an admin by handle. The owner's row is protected.
func (h *Handlers) RemoveAdmin(ctx context.Context, args []string) Reply {
	if len(args) == 0 {
		return Reply{Kind: ReplyUsage, Text: usageText("/remove_admin", "@username")}
	}
	username := stripHandle(args[0])

	target, err := h.store.FindByUsername(ctx, username)
	if err != nil {
		return h.fail(ctx, "remove_admin.lookup", err, "⚙️ Failed to remove admin due to an internal error.")
	}
	if target == nil {
		return Reply{Kind: ReplyNotFound, Text: adminNotFoundText(username)}
	}
	if h.isOwner(target) {
		return Reply{Kind: ReplyBlocked, Text: ownerRemoveBlockedText}
	}
	if err := h.store.Delete(ctx, target.ID); err != nil && err != roster.ErrNotFound {
		return h.fail(ctx, "remove_admin.delete", err, "⚙️ Failed to remove admin due to an internal error.")
	}
	logger.LogEvent(ctx, logger.SVCRoster, slog.LevelInfo, "admin.removed",
		slog.Int64("admin_id", target.ID),
		slog.String("username", username),
	)
	return Reply{Kind: ReplyOK, Text: adminRemovedText(username)}
}

// Promote raises an admin to super-admin. Promoting a super-admin is a
// no-change answer, not an error.
func (h *Handlers) Promote(ctx context.Context, args []string) Reply {
	if len(args) == 0 {
		return Reply{Kind: ReplyUsage, Text: usageText("/promote", "@username")}
	}
	username := stripHandle(args[0])

	target, err := h.store.FindByUsername(ctx, username)
	if err != nil {
		return h.fail(ctx, "promote.lookup", err, "⚙️ Failed to promote admin due to an internal error.")
	}
	if target == nil {
		return Reply{Kind: ReplyNotFound, Text: adminNotFoundText(username)}
	}
	if target.IsSuperAdmin {
		return Reply{Kind: ReplyNoChange, Text: alreadySuperAdminText(username)}
	}
	if err := h.store.SetRole(ctx, target.ID, true); err != nil {
		return h.fail(ctx, "promote.set_role", err, "⚙️ Failed to promote admin due to an internal error.")
	}
	logger.LogEvent(ctx, logger.SVCRoster, slog.LevelInfo, "admin.promoted",
		slog.Int64("admin_id", target.ID),
		slog.String("username", username),
	)
	return Reply{Kind: ReplyOK, Text: promotedText(username)}
}

// Demote lowers a super-admin to regular admin. The owner is protected;
// demoting a regular admin is a no-change answer.
func (h *Handlers) Demote(ctx context.Context, args []string) Reply {
	if len(args) == 0 {
		return Reply{Kind: ReplyUsage, Text: usageText("/demote", "@username")}
	}
	username := stripHandle(args[0])

	target, err := h.store.FindByUsername(ctx, username)
	if err != nil {
		return h.fail(ctx, "demote.lookup", err, "⚙️ Failed to demote admin due to an internal error.")
	}
	if target == nil {
		return Reply{Kind: ReplyNotFound, Text: adminNotFoundText(username)}
	}
	if h.isOwner(target) {
		return Reply{Kind: ReplyBlocked, Text: ownerDemoteBlockedText}
	}
	if !target.IsSuperAdmin {
		return Reply{Kind: ReplyNoChange, Text: alreadyRegularAdminText(username)}
	}
	if err := h.store.SetRole(ctx, target.ID, false); err != nil {
		return h.fail(ctx, "demote.set_role", err, "⚙️ Failed to demote admin due to an internal error.")
	}
	logger.LogEvent(ctx, logger.SVCRoster, slog.LevelInfo, "admin.demoted",
		slog.Int64("admin_id", target.ID),
		slog.String("username", username),
	)
	return Reply{Kind: ReplyOK, Text: demotedText(username)}
}

// SetPayment overwrites one payment identifier of an admin. The value is
// the remaining arguments joined with single spaces.
func (h *Handlers) SetPayment(ctx context.Context, method roster.PaymentMethod, args []string) Reply {
	if len(args) < 2 {
		return Reply{Kind: ReplyUsage, Text: usageText("/setadmin_"+method.String(), "@username VALUE")}
	}
	username := stripHandle(args[0])
	value := strings.Join(args[1:], " ")

	target, err := h.store.FindByUsername(ctx, username)
	if err != nil {
		return h.fail(ctx, "set_payment.lookup", err, paymentFailureText(method))
	}
	if target == nil {
		return Reply{Kind: ReplyNotFound, Text: adminNotFoundText(username)}
	}
	if err := h.store.SetPaymentID(ctx, target.ID, method, value); err != nil {
		return h.fail(ctx, "set_payment.update", err, paymentFailureText(method))
	}
	logger.LogEvent(ctx, logger.SVCRoster, slog.LevelInfo, "payment.updated",
		slog.Int64("admin_id", target.ID),
		slog.String("username", username),
		slog.String("method", method.String()),
	)
	return Reply{Kind: ReplyOK, Text: paymentUpdatedText(method, username, value)}
}

// IsSuperAdmin exposes the store check for the command gate.
func (h *Handlers) IsSuperAdmin(ctx context.Context, userID int64) (bool, error) {
	return h.store.IsSuperAdmin(ctx, userID)
}

func (h *Handlers) isOwner(admin *roster.Admin) bool {
	return admin.UserID.Valid && admin.UserID.Int64 == h.opts.OwnerID
}

func (h *Handlers) fail(ctx context.Context, op string, err error, text string) Reply {
	logger.LogEvent(ctx, logger.SVCRoster, slog.LevelError, "store.failed",
		slog.String("op", op),
		slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
	)
	return Reply{Kind: ReplyFailure, Text: text}
}

func stripHandle(arg string) string {
	return strings.TrimPrefix(strings.TrimSpace(arg), "@")
}
