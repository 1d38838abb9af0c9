package router

import (
	"time"

	"github.com/pagalworld/verifybot/core/logger"
	tg "github.com/pagalworld/verifybot/core/telegram"
	"github.com/pagalworld/verifybot/core/telegram/middleware"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	Gate middleware.GateOptions
}

// CommandRoutes prepares command handlers wrapped with shared middleware.
// Gated commands get the super-admin check; chat-scoped commands are
// silently dropped outside their declared scope.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		name := normalizeHandlerName(cmd)
		h := withSummary(name, def.Handler)
		if def.SuperAdminOnly {
			h = middleware.SuperAdminOnlyMiddleware(opts.Gate)(h)
		}
		switch {
		case def.PrivateOnly:
			h = middleware.PrivateOnlyMiddleware()(h)
		case def.GroupID != 0:
			h = middleware.GroupOnlyMiddleware(def.GroupID)(h)
		}
		h = middleware.RecoverMiddleware(middleware.LoggerMiddleware(h))
		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler:  h,
		})
	}

	logger.TWire.Info("tg.wire",
		slog.String("event", "complete"),
		slog.Int("commands", len(reg.Commands())),
	)

	return routes
}

func withSummary(name string, next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		start := time.Now()
		return handleWithSummary(c, name, start, "", "", func() error {
			return next(c)
		})
	}
}
