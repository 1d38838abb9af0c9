package middleware

import (
	"context"
	"log/slog"

	"github.com/pagalworld/verifybot/core/logger"
	tghelpers "github.com/pagalworld/verifybot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// SuperAdminChecker reports whether the given Telegram user id belongs to a super-admin.
type SuperAdminChecker func(ctx context.Context, userID int64) (bool, error)

// GateOptions defines how super-admin-only checks should behave.
type GateOptions struct {
	Check SuperAdminChecker
	// OnReject is invoked for callers that are not super-admins.
	OnReject tele.HandlerFunc
	// OnError is invoked when the roster lookup itself fails.
	OnError tele.HandlerFunc
}

// SuperAdminOnlyMiddleware ensures that only super-admins can invoke downstream handlers.
func SuperAdminOnlyMiddleware(opts GateOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if opts.Check == nil {
				return next(c)
			}
			user := c.Sender()
			if user == nil {
				return nil
			}
			ctx := tghelpers.BuildContext(c)
			ok, err := opts.Check(ctx, user.ID)
			if err != nil {
				logger.Error(ctx, "tg", "gate.check_failed",
					slog.Int64("user_id", user.ID),
					slog.String("err", err.Error()),
				)
				if opts.OnError != nil {
					return opts.OnError(c)
				}
				return nil
			}
			if !ok {
				if opts.OnReject != nil {
					return opts.OnReject(c)
				}
				return nil
			}
			return next(c)
		}
	}
}

// PrivateOnlyMiddleware silently drops updates that do not originate from a private chat.
func PrivateOnlyMiddleware() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			chat := c.Chat()
			if chat == nil || chat.Type != tele.ChatPrivate {
				return nil
			}
			return next(c)
		}
	}
}

// GroupOnlyMiddleware restricts a handler to a single group chat.
// A zero groupID allows any non-private chat.
func GroupOnlyMiddleware(groupID int64) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			chat := c.Chat()
			if chat == nil || chat.Type == tele.ChatPrivate {
				return nil
			}
			if groupID != 0 && chat.ID != groupID {
				return nil
			}
			return next(c)
		}
	}
}
